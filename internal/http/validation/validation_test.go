package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Note     string `form:"note,omitempty" validate:"max=10"`
}

func TestFromBindError_MapsToFormTags(t *testing.T) {
	v := validator.New()
	f := &loginForm{Email: "not-an-email", Password: "x"}

	err := v.Struct(f)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FromBindError(err, f)
	if fields["email"] != "Enter a valid email address." {
		t.Errorf("unexpected email message %q", fields["email"])
	}
	if fields["password"] != "Must be at least 6 characters." {
		t.Errorf("unexpected password message %q", fields["password"])
	}
}

func TestFromBindError_StripsTagOptions(t *testing.T) {
	v := validator.New()
	f := &loginForm{Email: "a@b.co", Password: "longenough", Note: "way too long note"}

	err := v.Struct(f)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	fields := FromBindError(err, f)
	if _, ok := fields["note"]; !ok {
		t.Errorf("expected key 'note', got %v", fields)
	}
}

func TestFromBindError_NonValidationError(t *testing.T) {
	fields := FromBindError(errors.New("strconv.Atoi: parsing"), &loginForm{})
	if fields["_"] == "" {
		t.Errorf("expected generic message under _, got %v", fields)
	}
}
