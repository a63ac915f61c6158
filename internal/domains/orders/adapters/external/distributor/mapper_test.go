package distributor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

func TestToPayload_PinsWireNames(t *testing.T) {
	rec := &domain.OrderRecord{
		StoreName:     "TheGunFirm",
		Shipping:      domain.Address{Address1: "1 A St", Address2: "Unit 2", City: "Austin", State: "TX", Zip: "78701"},
		ShipToStore:   domain.ShipToStoreYes,
		ShipFFL:       "1-59-000-00-0A-00000",
		ContactNumber: "0000000000",
		POSFlag:       domain.POSFlagInternet,
		PONumber:      "PO-1",
		Email:         "orders@thegunfirm.com",
		Items:         []domain.LineItem{{PartNumber: "AAC17-22G3", Quantity: 2}},
		FillOrKill:    domain.RejectPartial,
	}

	raw, err := json.Marshal(ToPayload(rec))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"storeName": "TheGunFirm",
		"address1": "1 A St",
		"address2": "Unit 2",
		"city": "Austin",
		"state": "TX",
		"zip": "78701",
		"shipToStore": "Y",
		"shipAccount": "",
		"shipFFL": "1-59-000-00-0A-00000",
		"contactNum": "0000000000",
		"posFlag": "I",
		"poNumber": "PO-1",
		"email": "orders@thegunfirm.com",
		"items": [{"partNumber": "AAC17-22G3", "quantity": 2}],
		"fillOrKill": 1
	}`, string(raw))
}
