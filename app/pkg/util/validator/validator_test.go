package validator_test

import (
	"testing"

	"backend/identity-platform/app/pkg/util/validator"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "valid mobile number", phone: "13800138000", valid: true},
		{name: "valid with prefix 19", phone: "19912345678", valid: true},
		{name: "second digit out of range", phone: "12345678901", valid: false},
		{name: "does not start with 1", phone: "23800138000", valid: false},
		{name: "too short", phone: "1380013800", valid: false},
		{name: "too long", phone: "138001380001", valid: false},
		{name: "contains letters", phone: "1380013800a", valid: false},
		{name: "empty", phone: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestIsValidEmailAddress(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "simple address", email: "test@example.com", valid: true},
		{name: "dotted local part", email: "first.last@example.co.uk", valid: true},
		{name: "plus tag", email: "user+tag@example.com", valid: true},
		{name: "missing at", email: "example.com", valid: false},
		{name: "missing domain dot", email: "user@example", valid: false},
		{name: "empty", email: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.IsValidEmailAddress(tt.email))
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{name: "letters and digits", username: "user123", valid: true},
		{name: "underscore and hyphen", username: "user_name-1", valid: true},
		{name: "minimum length", username: "abc", valid: true},
		{name: "maximum length", username: "a1234567890123456789", valid: true},
		{name: "too short", username: "ab", valid: false},
		{name: "too long", username: "a12345678901234567890", valid: false},
		{name: "illegal character", username: "user name", valid: false},
		{name: "cjk characters", username: "用户名abc", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, validator.IsValidUsername(tt.username))
		})
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	t.Run("all character classes", func(t *testing.T) {
		strength := validator.CheckPasswordStrength("Abc123!@#")
		assert.True(t, strength.Valid)
		assert.Equal(t, 5, strength.Score)
		assert.Empty(t, strength.Suggestions)
	})

	t.Run("too short", func(t *testing.T) {
		strength := validator.CheckPasswordStrength("abc")
		assert.False(t, strength.Valid)
		assert.Equal(t, 0, strength.Score)
		assert.Contains(t, strength.Suggestions[0], "at least")
	})

	t.Run("too long", func(t *testing.T) {
		strength := validator.CheckPasswordStrength("Abc123!@#Abc123!@#Abc123!@#Abc123!@#")
		assert.False(t, strength.Valid)
		assert.Contains(t, strength.Suggestions[0], "at most")
	})

	t.Run("single class is rejected", func(t *testing.T) {
		strength := validator.CheckPasswordStrength("abcdef")
		assert.False(t, strength.Valid)
		assert.Equal(t, 2, strength.Score)
		assert.Len(t, strength.Suggestions, 3)
	})

	t.Run("two classes pass", func(t *testing.T) {
		strength := validator.CheckPasswordStrength("abcdef1")
		assert.True(t, strength.Valid)
		assert.Equal(t, 3, strength.Score)
		assert.Len(t, strength.Suggestions, 2)
	})
}

func TestMaskPhoneNumber(t *testing.T) {
	assert.Equal(t, "138****8000", validator.MaskPhoneNumber("13800138000"))
	// Invalid numbers are passed through untouched
	assert.Equal(t, "12345", validator.MaskPhoneNumber("12345"))
	assert.Equal(t, "", validator.MaskPhoneNumber(""))
}

func TestMaskEmailAddress(t *testing.T) {
	assert.Equal(t, "t**t@example.com", validator.MaskEmailAddress("test@example.com"))
	assert.Equal(t, "**@example.com", validator.MaskEmailAddress("ab@example.com"))
	assert.Equal(t, "*@example.com", validator.MaskEmailAddress("a@example.com"))
	assert.Equal(t, "a********e@example.com", validator.MaskEmailAddress("alice.rowe@example.com"))
	// Not an email, returned as is
	assert.Equal(t, "not-an-email", validator.MaskEmailAddress("not-an-email"))
}
