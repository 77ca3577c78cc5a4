package handlers

import (
	"reflect"
	"testing"

	"github.com/Marat1506/apple-admin/internal/api"
	"github.com/Marat1506/apple-admin/pkg/view"
)

// Editing a record without touching any field must save back exactly
// what was loaded.
func TestProductFormRoundTrip(t *testing.T) {
	src := &api.Product{
		ID:          "p1",
		Name:        "iPhone 15 Pro",
		Slug:        "iphone-15-pro",
		Description: "The latest one.",
		Price:       999.99,
		CategoryID:  "c1",
		Images:      []string{"https://cdn.example/a.jpg", "/uploads/b.jpg"},
		Stock:       7,
		Featured:    true,
		Badge:       "New",
		Specs:       map[string]string{"Display": "6.1 inch", "Chip": "A17"},
		Variants: api.Variants{
			Colors:  api.StringList{"Black", "Deep Blue"},
			Storage: api.StringList{"128GB", "256GB"},
		},
		Translations: map[string]api.Translation{
			"ru": {Name: "Айфон 15 Про", Description: "Новый."},
		},
	}
	api.NormalizeProduct(src)

	got := productFromForm(formFromProduct(src))
	if !reflect.DeepEqual(src, got) {
		t.Fatalf("round trip changed the product:\n src=%+v\n got=%+v", src, got)
	}

	// and a second pass is a fixed point
	again := productFromForm(formFromProduct(got))
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("second round trip diverged:\n got=%+v\n again=%+v", got, again)
	}
}

func TestCategoryFormRoundTrip(t *testing.T) {
	src := &api.Category{
		ID:          "c1",
		Name:        "Phones & Tablets",
		Slug:        "phones-tablets",
		Description: "Handhelds.",
		ImageURL:    "https://cdn.example/cat.jpg",
		Translations: map[string]api.Translation{
			"ar": {Name: "هواتف"},
		},
	}
	api.NormalizeCategory(src)

	got := categoryFromForm(formFromCategory(src))
	if !reflect.DeepEqual(src, got) {
		t.Fatalf("round trip changed the category:\n src=%+v\n got=%+v", src, got)
	}
}

func TestFAQFormRoundTrip(t *testing.T) {
	src := &api.FAQItem{
		ID:       "f1",
		Category: "shipping",
		Order:    3,
		Translations: map[string]api.FAQTranslation{
			"en": {Question: "How fast?", Answer: "Fast.", Category: "Shipping"},
			"ru": {Question: "Как быстро?", Answer: "Быстро.", Category: "Доставка"},
		},
	}
	api.NormalizeFAQ(src)

	got := faqFromForm(formFromFAQ(src))
	if !reflect.DeepEqual(src, got) {
		t.Fatalf("round trip changed the entry:\n src=%+v\n got=%+v", src, got)
	}
}

func TestAboutFormRoundTrip(t *testing.T) {
	src := &api.AboutSection{
		ID:  "a1",
		Key: "mission",
		Translations: map[string]map[string]string{
			"en": {"title": "Our mission", "body": "We sell phones."},
			"ru": {"title": "Наша миссия"},
		},
	}
	api.NormalizeAboutSection(src)

	got := aboutFromForm(formFromAboutSection(src))
	if !reflect.DeepEqual(src, got) {
		t.Fatalf("round trip changed the section:\n src=%+v\n got=%+v", src, got)
	}
}

func TestNormalizeReturnTo(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/orders", "/orders"},
		{"/orders?status=pending", "/orders?status=pending"},
		{"orders", ""},
		{"//evil.example", ""},
		{"https://evil.example/x", ""},
		{"/redirect?to=https://evil.example", ""},
	}
	for _, tc := range cases {
		if got := normalizeReturnTo(tc.in); got != tc.want {
			t.Errorf("normalizeReturnTo(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAssetURL(t *testing.T) {
	cases := []struct {
		base string
		path string
		want string
	}{
		{"http://127.0.0.1:4000/api", "/uploads/x.jpg", "http://127.0.0.1:4000/uploads/x.jpg"},
		{"http://127.0.0.1:4000/api", "uploads/x.jpg", "http://127.0.0.1:4000/uploads/x.jpg"},
		{"http://127.0.0.1:4000/api", "https://cdn.example/x.jpg", "https://cdn.example/x.jpg"},
		{"http://127.0.0.1:4000/api", "", ""},
	}
	for _, tc := range cases {
		if got := assetURL(tc.base, tc.path); got != tc.want {
			t.Errorf("assetURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestSplitHelpers(t *testing.T) {
	if got := splitCSV(" Black , Deep Blue ,, "); !reflect.DeepEqual(got, []string{"Black", "Deep Blue"}) {
		t.Errorf("splitCSV = %v", got)
	}
	if got := splitCSV(""); got != nil {
		t.Errorf("splitCSV(\"\") = %v, want nil", got)
	}
	if got := splitLines("a\r\n\r\n b \nc"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("splitLines = %v", got)
	}
}

func TestPadSpecsAlwaysLeavesBlankRows(t *testing.T) {
	if got := padSpecs(nil); len(got) != 4 {
		t.Errorf("padSpecs(nil) len = %d, want 4", len(got))
	}
	rows := []view.SpecRow{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"}}
	if got := padSpecs(rows); len(got) != 5 || got[4].Key != "" {
		t.Errorf("padSpecs(3 rows) = %v", got)
	}
}
