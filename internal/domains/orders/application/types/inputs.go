package types

import "encoding/json"

// AddressInput overrides individual shipping fields. Nil fields take defaults.
type AddressInput struct {
	Address1 *string
	Address2 *string
	City     *string
	State    *string
	Zip      *string
}

// ItemInput is one requested order line.
type ItemInput struct {
	PartNumber string
	Quantity   int
}

// BuildInput configures the order builder. Every nil or empty field
// receives its documented default independently of the others.
type BuildInput struct {
	StoreName     *string
	PONumber      *string
	AccountID     *string
	FFL           *string
	ShipToStore   *bool
	ContactNumber *string
	Email         *string
	FillOrKill    *bool
	Shipping      *AddressInput
	Items         []ItemInput
}

// DemoInput parameterizes the demo submission.
type DemoInput struct {
	AccountID string
	PONumber  string
}

// SubmissionResult is what the gateway reports for a successful submission.
type SubmissionResult struct {
	Sent   json.RawMessage `json:"sent"`
	Result json.RawMessage `json:"result"`
	// Replayed is set when the result was served from the idempotency store.
	Replayed bool `json:"-"`
}
