package domain

import (
	"errors"
)

// ShipToStore is the two-valued ship-to-store flag used by the distributor.
type ShipToStore string

const (
	ShipToStoreYes ShipToStore = "Y"
	ShipToStoreNo  ShipToStore = "N"
)

// FillOrKill is a boolean carried as an integer on the wire.
type FillOrKill int

const (
	AllowPartial  FillOrKill = 0
	RejectPartial FillOrKill = 1
)

// POSFlagInternet tags orders originating from the storefront.
const POSFlagInternet = "I"

var (
	ErrMissingStoreName = errors.New("store name is required")
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be at least one")
	ErrInvalidPart      = errors.New("item part number is required")
	ErrInvalidShipFlag  = errors.New("ship-to-store flag must be Y or N")
	ErrInvalidFillFlag  = errors.New("fill-or-kill flag must be 0 or 1")
)

// Address is the shipping destination of an order.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
}

// LineItem is one ordered part.
type LineItem struct {
	PartNumber string
	Quantity   int
}

// OrderRecord is the canonical order submitted to the distributor.
// Field names here are idiomatic; the distributor mapper pins the wire names.
type OrderRecord struct {
	StoreName     string
	Shipping      Address
	ShipToStore   ShipToStore
	ShipAccount   string
	ShipFFL       string
	ContactNumber string
	POSFlag       string
	PONumber      string
	Email         string
	Items         []LineItem
	FillOrKill    FillOrKill
}

// Validate enforces the record invariants.
func (o *OrderRecord) Validate() error {
	if o.StoreName == "" {
		return ErrMissingStoreName
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.PartNumber == "" {
			return ErrInvalidPart
		}
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	switch o.ShipToStore {
	case ShipToStoreYes, ShipToStoreNo:
	default:
		return ErrInvalidShipFlag
	}
	switch o.FillOrKill {
	case AllowPartial, RejectPartial:
	default:
		return ErrInvalidFillFlag
	}
	return nil
}

// ShipToStoreFromBool converts a caller flag into the wire enum.
func ShipToStoreFromBool(v bool) ShipToStore {
	if v {
		return ShipToStoreYes
	}
	return ShipToStoreNo
}
