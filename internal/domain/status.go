package domain

// Status is the workflow stage of an order.
type Status string

const (
	StatusNovo        Status = "novo"
	StatusConfirmado  Status = "confirmado"
	StatusPreparando  Status = "preparando"
	StatusSaiuEntrega Status = "saiu_entrega"
	StatusEntregue    Status = "entregue"
	StatusCancelado   Status = "cancelado"
)

var statuses = []Status{
	StatusNovo,
	StatusConfirmado,
	StatusPreparando,
	StatusSaiuEntrega,
	StatusEntregue,
	StatusCancelado,
}

// Statuses returns the closed status set in workflow order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusEntregue || s == StatusCancelado
}

func (s Status) String() string { return string(s) }
