package identity

import "testing"

func TestValidateRegistrationReportsEveryFailure(t *testing.T) {
	errs := validateRegistration(RegisterInput{
		Name:     "al",
		Email:    "not-an-email",
		Phone:    "123",
		Password: "pw",
	})

	for _, field := range []string{"name", "email", "phone", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
}

func TestValidateRegistrationAcceptsValidInput(t *testing.T) {
	errs := validateRegistration(RegisterInput{
		Name:     "Alice",
		Email:    "a@x.com",
		Phone:    "1234567890",
		Password: "secret",
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@x.com", true},
		{"first.last@example.co.uk", true},
		{"", false},
		{"plainstring", false},
		{"@missing-local.com", false},
		{"Alice <a@x.com>", false},
	}
	for _, tc := range cases {
		if got := validEmail(tc.email); got != tc.want {
			t.Errorf("validEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"1234567890", true},
		{"123456789", false},
		{"12345678901", false},
		{"12345678ab", false},
		{"+234567890", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := validPhone(tc.phone); got != tc.want {
			t.Errorf("validPhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}
