package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type signupForm struct {
	Name     string `form:"name" validate:"required,max=80"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,password"`
	Website  string `form:"website" validate:"omitempty,url"`
}

func TestValidateMapsTagsToKeys(t *testing.T) {
	t.Parallel()

	errs := Validate(signupForm{Email: "nope", Password: "short", Website: "not a url"})
	want := Errors{
		"name":     "core.validation.required",
		"email":    "core.validation.email",
		"password": PasswordPolicyKey,
		"website":  "core.validation.url",
	}
	if len(errs) != len(want) {
		t.Fatalf("Validate() = %v, want %v", errs, want)
	}
	for field, key := range want {
		if errs[field] != key {
			t.Fatalf("errs[%q] = %q, want %q", field, errs[field], key)
		}
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	t.Parallel()

	if errs := Validate(signupForm{Name: "Ana", Email: "ana@example.com", Password: "Secret#123"}); errs != nil {
		t.Fatalf("Validate() = %v, want nil", errs)
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Secret#123", true},
		{"Secret_123", true},
		{"Sécret 12", true},
		{"secret#123", false},
		{"SECRET#123", false},
		{"Secret#abc", false},
		{"Secret123", false},
		{"Se#1", false},
		{"", false},
		{"Ab1😀😀😀", true},
		{"Ab1😀#", false},
		{"Secret#123\n", false},
	}
	for _, tc := range tests {
		if got := ValidPassword(tc.password); got != tc.want {
			t.Fatalf("ValidPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestValueTrimsButSecretDoesNot(t *testing.T) {
	t.Parallel()

	form := url.Values{"email": {"  ana@example.com "}, "password": {" Pa55#word "}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if got := Value(req, "email"); got != "ana@example.com" {
		t.Fatalf("Value(email) = %q", got)
	}
	if got := Secret(req, "password"); got != " Pa55#word " {
		t.Fatalf("Secret(password) = %q", got)
	}
	if got := Value(nil, "email"); got != "" {
		t.Fatalf("Value(nil) = %q", got)
	}
}
