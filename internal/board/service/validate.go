package service

import (
	"html"
	"net/mail"
	"strings"
	"unicode"
)

// Validation messages shown to users. Kept in one place so handlers and
// tests agree on the exact wording.
const (
	MsgFieldEmpty      = "Field must not be empty."
	MsgFieldTooLong    = "Field is too long. Maximum 255 characters allowed."
	MsgInvalidEmail    = "Invalid e-mail."
	MsgEmailInUse      = "E-mail provided is already in use."
	MsgWeakPassword    = "Invalid password. A valid password must be at least 8 characters long and contain at least 1 lower case character, 1 upper case character and 1 number."
	MsgPasswordTooLong = "Password is too long. Maximum 72 characters allowed."
	MsgPasswordConfirm = "The password and password confirmation fields must be identical."
	MsgTitleRequired   = "Title required."
	MsgTitleTooLong    = "Title must be less than 256 characters."
)

const maxFieldLength = 255

// bcrypt only reads the first 72 bytes of its input and the Go
// implementation rejects anything longer outright.
const maxPasswordLength = 72

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string
	Message string
}

// Violations aggregates every failure from one submission. All validators
// run to completion; nothing short-circuits on the first bad field.
type Violations []Violation

func (v Violations) Error() string {
	msgs := v.Messages()
	return "validation failed: " + strings.Join(msgs, " ")
}

// Messages returns the user-facing message list, in field order.
func (v Violations) Messages() []string {
	out := make([]string, 0, len(v))
	for _, violation := range v {
		out = append(out, violation.Message)
	}
	return out
}

func (v *Violations) add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

func trimmed(s string) string { return strings.TrimSpace(s) }

// requireText trims value and records violations for empty or over-long
// input. The trimmed value is returned either way so later checks and the
// eventual store call see the same normalization.
func requireText(v *Violations, field, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.add(field, MsgFieldEmpty)
	} else if len(value) > maxFieldLength {
		v.add(field, MsgFieldTooLong)
	}
	return value
}

// ValidateSignIn applies the sign-in form rules before any credential check:
// both fields present and within the field cap, the email well-formed. The
// trimmed email is returned so the caller authenticates the same value the
// sign-up flow stored.
func ValidateSignIn(v *Violations, email, password string) string {
	email = requireText(v, "email", email)
	if email != "" && !validEmailAddress(email) {
		v.add("email", MsgInvalidEmail)
	}

	if password == "" {
		v.add("password", MsgFieldEmpty)
	} else if len(password) > maxFieldLength {
		v.add("password", MsgFieldTooLong)
	}
	return email
}

// validEmailAddress reports whether s is a plain syntactically valid address
// (no display name, no angle brackets).
func validEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// strongPassword enforces the sign-up password policy: at least 8
// characters with one lowercase, one uppercase and one digit.
func strongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// escapeHTML neutralizes markup in free-text fields before storage so
// server-rendered output cannot be injected into.
func escapeHTML(s string) string {
	return html.EscapeString(s)
}
