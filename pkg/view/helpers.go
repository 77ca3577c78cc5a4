package view

import (
	"fmt"
	"time"
)

// Money renders a price the way the storefront stores it: USD with two
// decimals.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ShortID shortens backend record ids for table cells. Full ids stay
// in links and form actions.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// StatusClass maps an order status to its badge CSS class.
func StatusClass(status string) string {
	switch status {
	case "pending":
		return "badge badge-pending"
	case "processing":
		return "badge badge-processing"
	case "shipped":
		return "badge badge-shipped"
	case "delivered":
		return "badge badge-delivered"
	case "cancelled":
		return "badge badge-cancelled"
	default:
		return "badge"
	}
}
