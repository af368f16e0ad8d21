package orders

import "github.com/imrishuroy/go-orders-appointments-api/internal/ddb"

// FromRecord copies the public fields of a stored record. Keys and index projections are dropped.
func FromRecord(r Record) Order {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return Order{
		ID:                r.ID,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		Items:             items,
		Total:             r.Total,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		EstimatedDelivery: r.EstimatedDelivery,
		TrackingNumber:    r.TrackingNumber,
	}
}

// NewRecord builds the storage record for o, deriving keys and projections from its fields.
func NewRecord(o Order) Record {
	key := ddb.EntityKey(ddb.EntityOrder, o.ID)
	return Record{
		PK:                key.PK,
		SK:                key.SK,
		GSI1PK:            o.CustomerEmail,
		GSI1SK:            o.Status + "#" + o.CreatedAt,
		ID:                o.ID,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		Items:             o.Items,
		Total:             o.Total,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    o.TrackingNumber,
	}
}
