package api

import "time"

// Wire models mirror the storefront API records (spec'd by the
// backend; the console keeps only a transient copy per page render).

// Languages the storefront is localized in. Translation maps are keyed
// by these codes.
var Languages = []string{"en", "ru", "ar"}

const RoleAdmin = "admin"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Translation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Variants groups the selectable product options. Each list arrives as
// plain strings on current records; see StringList for the legacy
// object shape.
type Variants struct {
	Colors   StringList `json:"colors"`
	Storage  StringList `json:"storage"`
	Versions StringList `json:"versions"`
}

type Product struct {
	ID           string                 `json:"id,omitempty"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	Price        float64                `json:"price"`
	CategoryID   string                 `json:"categoryId"`
	Images       []string               `json:"images"`
	Stock        int                    `json:"stock"`
	Featured     bool                   `json:"featured"`
	Badge        string                 `json:"badge,omitempty"`
	Specs        map[string]string      `json:"specs"`
	Variants     Variants               `json:"variants"`
	Translations map[string]Translation `json:"translations"`
}

type Category struct {
	ID           string                 `json:"id,omitempty"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	ImageURL     string                 `json:"imageUrl"`
	Translations map[string]Translation `json:"translations"`
}

type OrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Variant   string  `json:"variant,omitempty"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
	ZIP      string `json:"zip"`
}

type Order struct {
	ID              string           `json:"id"`
	User            OrderUser        `json:"user"`
	Status          string           `json:"status"`
	Total           float64          `json:"total"`
	Items           []OrderItem      `json:"items,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	ShippingMethod  string           `json:"shippingMethod,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// HeroSettings is the storefront's singleton hero banner record.
type HeroSettings struct {
	ImagePath string `json:"imagePath"`
}

type FAQTranslation struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type FAQItem struct {
	ID           string                    `json:"id,omitempty"`
	Category     string                    `json:"category"`
	Order        int                       `json:"order"`
	Translations map[string]FAQTranslation `json:"translations"`
}

// AboutSection holds an open per-language field set under an immutable
// key ("mission", "team", ...). Field names are free-form.
type AboutSection struct {
	ID           string                       `json:"id,omitempty"`
	Key          string                       `json:"key"`
	Translations map[string]map[string]string `json:"translations"`
}

type DashboardStats struct {
	TotalProducts   int            `json:"totalProducts"`
	TotalCategories int            `json:"totalCategories"`
	TotalOrders     int            `json:"totalOrders"`
	TotalRevenue    float64        `json:"totalRevenue"`
	OrdersByStatus  map[string]int `json:"ordersByStatus"`
	RecentOrders    []Order        `json:"recentOrders"`
}
