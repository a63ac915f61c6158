package distributor

// OrderPayload is the distributor's order intake schema. The JSON names are the
// downstream contract and must not change, including "shipAccount" which the
// consumer matches byte-for-byte.
type OrderPayload struct {
	StoreName   string        `json:"storeName"`
	Address1    string        `json:"address1"`
	Address2    string        `json:"address2"`
	City        string        `json:"city"`
	State       string        `json:"state"`
	Zip         string        `json:"zip"`
	ShipToStore string        `json:"shipToStore"`
	ShipAccount string        `json:"shipAccount"`
	ShipFFL     string        `json:"shipFFL"`
	ContactNum  string        `json:"contactNum"`
	POSFlag     string        `json:"posFlag"`
	PONumber    string        `json:"poNumber"`
	Email       string        `json:"email"`
	Items       []PayloadItem `json:"items"`
	FillOrKill  int           `json:"fillOrKill"`
}

// PayloadItem is one order line on the wire.
type PayloadItem struct {
	PartNumber string `json:"partNumber"`
	Quantity   int    `json:"quantity"`
}
