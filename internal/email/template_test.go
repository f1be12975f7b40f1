package email

import (
	"testing"

	"MailBurst/internal/models"
)

func TestRenderSubstitutesAllPlaceholders(t *testing.T) {
	r := models.Recipient{
		CompanyName: "Acme",
		ContactName: "Ana",
		Email:       "a@x.com",
	}

	got := Render("Hi {{contactName}} at {{companyName}} ({{email}})", r)
	want := "Hi Ana at Acme (a@x.com)"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	r := models.Recipient{ContactName: "Ana"}

	got := Render("Hi {{contactName}}, code {{discountCode}}", r)
	want := "Hi Ana, code {{discountCode}}"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderEmptyFieldsSubstituteAsEmpty(t *testing.T) {
	got := Render("Hello {{contactName}}{{companyName}}!", models.Recipient{})

	if got != "Hello !" {
		t.Errorf("expected empty substitutions, got %q", got)
	}
}

func TestRenderIdempotentWithoutPlaceholders(t *testing.T) {
	r := models.Recipient{CompanyName: "Acme", ContactName: "Ana", Email: "a@x.com"}

	s := "Plain newsletter text, nothing to substitute."
	once := Render(s, r)
	twice := Render(once, r)

	if once != s {
		t.Errorf("render changed placeholder-free input: %q", once)
	}
	if twice != once {
		t.Errorf("render is not idempotent: %q vs %q", once, twice)
	}
}
