package domain

import "strings"

// MinPasswordLen is the minimum password length accepted at registration.
const MinPasswordLen = 6

// User is the authenticated identity. Passwords are never stored; this is a
// demo shop with mock authentication.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidateLogin checks the login form rules: both fields present. Any
// non-empty pair is accepted; there is no credential verification.
func ValidateLogin(email, password string) error {
	if email == "" {
		return NewInvalidCredentialsError("email", "cannot be empty")
	}
	if password == "" {
		return NewInvalidCredentialsError("password", "cannot be empty")
	}
	return nil
}

// ValidateRegistration checks the registration form rules: all fields
// present, password at least MinPasswordLen characters.
func ValidateRegistration(name, email, password string) error {
	if name == "" {
		return NewInvalidCredentialsError("name", "cannot be empty")
	}
	if email == "" {
		return NewInvalidCredentialsError("email", "cannot be empty")
	}
	if password == "" {
		return NewInvalidCredentialsError("password", "cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return NewInvalidCredentialsError("password", "must be at least 6 characters")
	}
	return nil
}

// NameFromEmail derives a display name from the email local part, the rule
// the login form uses when no explicit name is given.
func NameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
