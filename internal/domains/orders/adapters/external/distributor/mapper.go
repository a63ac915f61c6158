package distributor

import (
	distributorclient "github.com/thegunfirm/Mag-Lock-sub017/internal/clients/http/distributor"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// ToPayload converts the domain order record into the distributor wire shape.
func ToPayload(o *domain.OrderRecord) distributorclient.OrderPayload {
	items := make([]distributorclient.PayloadItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, distributorclient.PayloadItem{
			PartNumber: item.PartNumber,
			Quantity:   item.Quantity,
		})
	}
	return distributorclient.OrderPayload{
		StoreName:   o.StoreName,
		Address1:    o.Shipping.Address1,
		Address2:    o.Shipping.Address2,
		City:        o.Shipping.City,
		State:       o.Shipping.State,
		Zip:         o.Shipping.Zip,
		ShipToStore: string(o.ShipToStore),
		ShipAccount: o.ShipAccount,
		ShipFFL:     o.ShipFFL,
		ContactNum:  o.ContactNumber,
		POSFlag:     o.POSFlag,
		PONumber:    o.PONumber,
		Email:       o.Email,
		Items:       items,
		FillOrKill:  int(o.FillOrKill),
	}
}
