package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// allowedVibes is the closed set of profile vibes the clients render with
// dedicated styling. An empty vibe means "not set" and is always valid.
var allowedVibes = map[string]struct{}{
	"chatty": {},
	"chill":  {},
	"open":   {},
	"busy":   {},
}

// ValidateVibe checks that vibe is one of the known profile vibes.
func ValidateVibe(vibe string) error {
	if vibe == "" {
		return nil
	}
	if _, ok := allowedVibes[strings.ToLower(vibe)]; !ok {
		return fmt.Errorf("unknown vibe %q", vibe)
	}
	return nil
}

// ValidateBio bounds profile bios.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > 500 {
		return fmt.Errorf("bio must not exceed 500 characters")
	}
	return nil
}

// ValidateAge bounds the optional profile age.
func ValidateAge(age int) error {
	if age == 0 {
		return nil
	}
	if age < 16 || age > 120 {
		return fmt.Errorf("age must be between 16 and 120")
	}
	return nil
}
