package view

type ProductRow struct {
	ID       string
	Name     string
	Price    string
	Category string
	Stock    int
	Featured bool
	Badge    string
	Image    string
}

type ProductsPage struct {
	Base
	Rows []ProductRow
}

type CategoryOption struct {
	ID   string
	Name string
}

// TranslationFields is one language row on product and category forms.
type TranslationFields struct {
	Lang        string
	Name        string
	Description string
}

type SpecRow struct {
	Key   string
	Value string
}

// ProductForm mirrors the product edit form field for field. Values
// stay strings so a rejected submit re-renders exactly what was typed.
type ProductForm struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	Price        string
	CategoryID   string
	Stock        string
	Featured     bool
	Badge        string
	Images       string // one URL per line
	Colors       string // comma separated
	Storage      string
	Versions     string
	Specs        []SpecRow
	Translations []TranslationFields
}

type ProductFormPage struct {
	Base
	IsNew      bool
	Form       ProductForm
	Categories []CategoryOption
	Errors     map[string]string
}
