package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrInvalidData = errors.New("invalid order data")
)

// Order is the local projection of an order owned by the remote order store.
// Only Status and BoardColumn are mutated here; Payload is carried as-is.
type Order struct {
	OrderUID    string          `json:"order_uid"`
	Number      int             `json:"number"`
	Status      Status          `json:"status"`
	BoardColumn BoardColumn     `json:"board_column,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate checks the order invariants: a uid, a status from the closed set
// and, when present, a well-formed board column.
func (o *Order) Validate() error {
	if o.OrderUID == "" {
		return errors.Join(ErrInvalidData, errors.New("order_uid is required"))
	}
	if !o.Status.Valid() {
		return errors.Join(ErrInvalidData, errors.New("unknown status "+string(o.Status)))
	}
	if o.BoardColumn != "" {
		if _, ok := o.BoardColumn.Index(); !ok {
			return errors.Join(ErrInvalidData, errors.New("malformed board column "+string(o.BoardColumn)))
		}
	}
	return nil
}

// Clone returns a copy that shares nothing mutable with o.
func (o Order) Clone() Order {
	if o.Payload != nil {
		p := make(json.RawMessage, len(o.Payload))
		copy(p, o.Payload)
		o.Payload = p
	}
	return o
}

// Confirmation is the order store's authoritative view of an order.
type Confirmation struct {
	OrderUID    string       `json:"order_uid"`
	Status      Status       `json:"status"`
	BoardColumn *BoardColumn `json:"board_column,omitempty"`
	ConfirmedAt time.Time    `json:"confirmed_at"`
}
