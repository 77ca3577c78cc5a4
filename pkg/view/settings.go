package view

type HeroPage struct {
	Base
	ImagePath string
	ImageURL  string // resolved against the API base for display
}

type FAQRow struct {
	ID       string
	Order    int
	Category string
	Question string
}

type FAQPage struct {
	Base
	Rows []FAQRow
}

type FAQTranslationFields struct {
	Lang     string
	Question string
	Answer   string
	Category string
}

type FAQForm struct {
	ID           string
	Category     string
	Order        string
	Translations []FAQTranslationFields
}

type FAQFormPage struct {
	Base
	IsNew  bool
	Form   FAQForm
	Errors map[string]string
}

type FieldRow struct {
	Label string
	Value string
}

// AboutLang is one language column on the about editor: an open list
// of label/value rows.
type AboutLang struct {
	Lang   string
	Fields []FieldRow
}

type AboutRow struct {
	ID      string
	Key     string
	Summary string
}

type AboutPage struct {
	Base
	Rows []AboutRow
}

type AboutForm struct {
	ID    string
	Key   string
	Langs []AboutLang
}

type AboutFormPage struct {
	Base
	IsNew  bool
	Form   AboutForm
	Errors map[string]string
}
