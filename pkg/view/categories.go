package view

type CategoryRow struct {
	ID    string
	Name  string
	Slug  string
	Image string
}

type CategoriesPage struct {
	Base
	Rows []CategoryRow
}

type CategoryForm struct {
	ID           string
	Name         string
	Slug         string
	Description  string
	ImageURL     string
	Translations []TranslationFields
}

type CategoryFormPage struct {
	Base
	IsNew  bool
	Form   CategoryForm
	Errors map[string]string
}
