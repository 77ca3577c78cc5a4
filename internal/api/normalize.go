package api

import "encoding/json"

// StringList decodes a variant option list. Current records store
// plain strings; records written by early backend versions store
// objects like {"name":"Black","value":"#000"} or {"label":"256GB"}.
// Both shapes decode to the display strings, so the rest of the
// console only ever sees []string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var plain []string
	if err := json.Unmarshal(b, &plain); err == nil {
		*l = plain
		return nil
	}

	var objs []map[string]any
	if err := json.Unmarshal(b, &objs); err != nil {
		return err
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		if s := firstString(o, "name", "label", "value", "color"); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// NormalizeProduct fills the gaps older records carry so edit forms
// can bind every field without nil checks. The "en" translation is
// seeded from the top-level name and description when absent, every
// supported language gets an entry, and nil collections become empty
// ones. Normalization happens once, right after decode; nothing is
// written back unless the admin saves.
func NormalizeProduct(p *Product) {
	if p == nil {
		return
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	if p.Variants.Colors == nil {
		p.Variants.Colors = StringList{}
	}
	if p.Variants.Storage == nil {
		p.Variants.Storage = StringList{}
	}
	if p.Variants.Versions == nil {
		p.Variants.Versions = StringList{}
	}
	if p.Translations == nil {
		p.Translations = map[string]Translation{}
	}
	if _, ok := p.Translations["en"]; !ok {
		p.Translations["en"] = Translation{Name: p.Name, Description: p.Description}
	}
	for _, lang := range Languages {
		if _, ok := p.Translations[lang]; !ok {
			p.Translations[lang] = Translation{}
		}
	}
}

// NormalizeCategory mirrors NormalizeProduct for category records.
func NormalizeCategory(c *Category) {
	if c == nil {
		return
	}
	if c.Translations == nil {
		c.Translations = map[string]Translation{}
	}
	if _, ok := c.Translations["en"]; !ok {
		c.Translations["en"] = Translation{Name: c.Name, Description: c.Description}
	}
	for _, lang := range Languages {
		if _, ok := c.Translations[lang]; !ok {
			c.Translations[lang] = Translation{}
		}
	}
}

// NormalizeFAQ guarantees a translation entry per language so the
// editor renders a stable grid of question/answer fields.
func NormalizeFAQ(f *FAQItem) {
	if f == nil {
		return
	}
	if f.Translations == nil {
		f.Translations = map[string]FAQTranslation{}
	}
	for _, lang := range Languages {
		if _, ok := f.Translations[lang]; !ok {
			f.Translations[lang] = FAQTranslation{}
		}
	}
}

// NormalizeAboutSection guarantees a field map per language. Field
// names inside each language stay exactly as stored; only missing
// language maps are created.
func NormalizeAboutSection(s *AboutSection) {
	if s == nil {
		return
	}
	if s.Translations == nil {
		s.Translations = map[string]map[string]string{}
	}
	for _, lang := range Languages {
		if s.Translations[lang] == nil {
			s.Translations[lang] = map[string]string{}
		}
	}
}
