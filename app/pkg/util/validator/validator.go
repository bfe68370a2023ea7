package validator

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

var (
	phoneRegex    = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]{3,20}$`)
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 32
)

// IsValidPhoneNumber reports whether s is an 11-digit Chinese mobile number.
func IsValidPhoneNumber(s string) bool {
	return phoneRegex.MatchString(s)
}

func IsValidEmailAddress(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidUsername reports whether s is 3 to 20 letters, digits, underscores
// or hyphens.
func IsValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// PasswordStrength is the result of scoring a candidate password.
type PasswordStrength struct {
	Valid       bool
	Score       int
	Suggestions []string
}

// CheckPasswordStrength scores a password starting at 1 with one extra point
// per present character class. Passwords shorter than 6 or longer than 32
// characters are rejected outright; otherwise a score of at least 3 is valid.
func CheckPasswordStrength(password string) PasswordStrength {
	if len(password) < PasswordMinLength {
		return PasswordStrength{
			Valid:       false,
			Score:       0,
			Suggestions: []string{fmt.Sprintf("password must be at least %d characters", PasswordMinLength)},
		}
	}
	if len(password) > PasswordMaxLength {
		return PasswordStrength{
			Valid:       false,
			Score:       0,
			Suggestions: []string{fmt.Sprintf("password must be at most %d characters", PasswordMaxLength)},
		}
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	score := 1
	var suggestions []string
	if hasLower {
		score++
	} else {
		suggestions = append(suggestions, "add lowercase letters")
	}
	if hasUpper {
		score++
	} else {
		suggestions = append(suggestions, "add uppercase letters")
	}
	if hasDigit {
		score++
	} else {
		suggestions = append(suggestions, "add digits")
	}
	if hasSpecial {
		score++
	} else {
		suggestions = append(suggestions, "add special characters")
	}

	return PasswordStrength{
		Valid:       score >= 3,
		Score:       score,
		Suggestions: suggestions,
	}
}

func ValidatePhoneNumber(s string) error {
	if !IsValidPhoneNumber(s) {
		return ValidationError{Field: "phone_number", Message: "must be a valid 11-digit mobile number"}
	}
	return nil
}

func ValidateEmailAddress(s string) error {
	if !IsValidEmailAddress(s) {
		return ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

func ValidateUsername(s string) error {
	if !IsValidUsername(s) {
		return ValidationError{Field: "username", Message: "must be 3-20 letters, digits, underscores or hyphens"}
	}
	return nil
}

func ValidatePassword(s string) error {
	strength := CheckPasswordStrength(s)
	if !strength.Valid {
		return ValidationError{Field: "password", Message: strings.Join(strength.Suggestions, "; ")}
	}
	return nil
}

// MaskPhoneNumber hides the middle four digits, e.g. "13800138000" becomes
// "138****8000". Strings that are not valid phone numbers are returned as is.
func MaskPhoneNumber(s string) string {
	if !IsValidPhoneNumber(s) {
		return s
	}
	return s[:3] + "****" + s[7:]
}

// MaskEmailAddress hides the interior of the local part, e.g.
// "test@example.com" becomes "t**t@example.com". Local parts of one or two
// characters are fully masked.
func MaskEmailAddress(s string) string {
	at := strings.Index(s, "@")
	if at <= 0 {
		return s
	}
	local, domain := s[:at], s[at:]
	if len(local) <= 2 {
		return strings.Repeat("*", len(local)) + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + domain
}

// GravatarURL builds a deterministic avatar URL seeded by the username.
func GravatarURL(username string, size int) string {
	if size <= 0 {
		size = 80
	}
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(username))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=identicon", hex.EncodeToString(hash[:]), size)
}
