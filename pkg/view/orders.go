package view

type OrderRow struct {
	ID          string
	ShortID     string
	Customer    string
	Email       string
	Status      string
	StatusClass string
	Total       string
	Placed      string
}

type OrdersPage struct {
	Base
	Rows         []OrderRow
	StatusFilter string
	Statuses     []string
}

type OrderItemRow struct {
	Name     string
	Variant  string
	Unit     string
	Quantity int
	Line     string
}

type OrderDetailPage struct {
	Base
	ID              string
	ShortID         string
	Customer        string
	Email           string
	Status          string
	StatusClass     string
	Total           string
	Placed          string
	ShippingMethod  string
	ShippingAddress []string
	Items           []OrderItemRow
	// NextStatuses drives the transition select; empty means the order
	// reached a terminal state.
	NextStatuses []string
}
