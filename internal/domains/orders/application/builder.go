package application

import (
	"strconv"
	"strings"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// Literal fallbacks applied when neither the caller nor configuration supplies a value.
const (
	DefaultStoreName     = "TheGunFirm"
	DefaultContactNumber = "0000000000"
	DefaultEmail         = "orders@thegunfirm.com"
	DefaultAccountID     = "99901"
	DefaultFFL           = "1-59-000-00-0A-00000"
	DefaultPartNumber    = "AAC17-22G3"
)

// DefaultShipping is the sample destination used when no address is supplied.
var DefaultShipping = domain.Address{
	Address1: "100 Main St",
	Address2: "",
	City:     "Austin",
	State:    "TX",
	Zip:      "78701",
}

// BuilderDefaults holds the process-wide values the builder falls back to.
type BuilderDefaults struct {
	StoreName   string
	FFLFallback string
	AccountID   string
}

// Builder assembles fully populated order records.
type Builder struct {
	defaults BuilderDefaults
	now      func() time.Time
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the clock used for generated PO numbers.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a builder over the configured defaults.
func NewBuilder(defaults BuilderDefaults, opts ...BuilderOption) *Builder {
	b := &Builder{defaults: defaults, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build produces an order record from input. It never fails: every omitted
// field receives its default and provided fields are used verbatim.
func (b *Builder) Build(in types.BuildInput) domain.OrderRecord {
	accountID := firstNonEmpty(deref(in.AccountID), b.defaults.AccountID, DefaultAccountID)
	poNumber := deref(in.PONumber)
	if poNumber == "" {
		poNumber = GeneratePONumber(accountID, b.now())
	}

	shipToStore := domain.ShipToStoreNo
	if in.ShipToStore != nil {
		shipToStore = domain.ShipToStoreFromBool(*in.ShipToStore)
	}
	fillOrKill := domain.RejectPartial
	if in.FillOrKill != nil && !*in.FillOrKill {
		fillOrKill = domain.AllowPartial
	}

	return domain.OrderRecord{
		StoreName:     firstNonEmpty(deref(in.StoreName), b.defaults.StoreName, DefaultStoreName),
		Shipping:      buildShipping(in.Shipping),
		ShipToStore:   shipToStore,
		ShipAccount:   "",
		ShipFFL:       firstNonEmpty(deref(in.FFL), b.defaults.FFLFallback, DefaultFFL),
		ContactNumber: firstNonEmpty(deref(in.ContactNumber), DefaultContactNumber),
		POSFlag:       domain.POSFlagInternet,
		PONumber:      poNumber,
		Email:         firstNonEmpty(deref(in.Email), DefaultEmail),
		Items:         buildItems(in.Items),
		FillOrKill:    fillOrKill,
	}
}

// GeneratePONumber formats PO-<accountID>-<epochMillis>.
func GeneratePONumber(accountID string, at time.Time) string {
	return "PO-" + accountID + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}

func buildShipping(in *types.AddressInput) domain.Address {
	addr := DefaultShipping
	if in == nil {
		return addr
	}
	if in.Address1 != nil {
		addr.Address1 = *in.Address1
	}
	if in.Address2 != nil {
		addr.Address2 = *in.Address2
	}
	if in.City != nil {
		addr.City = *in.City
	}
	if in.State != nil {
		addr.State = *in.State
	}
	if in.Zip != nil {
		addr.Zip = *in.Zip
	}
	return addr
}

func buildItems(in []types.ItemInput) []domain.LineItem {
	if len(in) == 0 {
		return []domain.LineItem{{PartNumber: DefaultPartNumber, Quantity: 1}}
	}
	items := make([]domain.LineItem, 0, len(in))
	for _, item := range in {
		items = append(items, domain.LineItem{PartNumber: item.PartNumber, Quantity: item.Quantity})
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// AccountID returns the account id used when callers do not supply one.
func (b *Builder) AccountID() string {
	return firstNonEmpty(b.defaults.AccountID, DefaultAccountID)
}

// NextPONumber generates a PO number for accountID from the builder clock.
func (b *Builder) NextPONumber(accountID string) string {
	return GeneratePONumber(accountID, b.now())
}
