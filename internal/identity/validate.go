package identity

import "net/mail"

// Field-level messages kept stable; clients key off the field names.
const (
	msgInvalidEmail  = "Enter a valid email"
	msgShortName     = "Name must be at least 3 characters"
	msgShortPassword = "Password must be at least 5 characters"
	msgBadPhone      = "Phone number must be 10 digits"
	msgEmailTaken    = "A user already exists with this e-mail address"
	msgPhoneTaken    = "A user already exists with this phone number"
)

const (
	minNameLen     = 3
	minPasswordLen = 5
	phoneLen       = 10
)

// validateRegistration runs every structural check and returns the merged
// field->message map. It never stops at the first failure.
func validateRegistration(in RegisterInput) map[string]string {
	errs := make(map[string]string)
	if !validEmail(in.Email) {
		errs["email"] = msgInvalidEmail
	}
	if len(in.Name) < minNameLen {
		errs["name"] = msgShortName
	}
	if len(in.Password) < minPasswordLen {
		errs["password"] = msgShortPassword
	}
	if !validPhone(in.Phone) {
		errs["phone"] = msgBadPhone
	}
	return errs
}

func validateLogin(email, password string) map[string]string {
	errs := make(map[string]string)
	if !validEmail(email) {
		errs["email"] = msgInvalidEmail
	}
	if len(password) < minPasswordLen {
		errs["password"] = msgShortPassword
	}
	return errs
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// Reject display-name forms like `Alice <a@x.com>`; the address must
	// stand alone.
	return err == nil && addr.Address == email
}

func validPhone(phone string) bool {
	if len(phone) != phoneLen {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
