package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{12}$`)

	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

// ValidateCardNumber validates a fare-card number: exactly twelve digits.
func ValidateCardNumber(number string) error {
	if number == "" {
		return errors.New("card number cannot be empty")
	}
	if !cardNumberPattern.MatchString(number) {
		return errors.New("card number must be exactly 12 digits")
	}
	return nil
}

// ValidateName validates station, route, and account names supplied by
// clients.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if dangerousPattern.MatchString(name) {
		return errors.New("name contains invalid characters")
	}
	return nil
}

// ParseIntParam retrieves an int value from the provided URL query
// parameters. If the key is not present it returns the fallback; if the value
// is invalid it records the problem in the fieldErrors map.
func ParseIntParam(params url.Values, key string, fallback int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return fallback, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return fallback, fieldErrors
	}
	return n, fieldErrors
}

// ParseTimeParam parses a time query parameter. It supports epoch timestamps
// in milliseconds and RFC 3339 strings. An empty parameter returns the
// fallback.
func ParseTimeParam(params url.Values, key string, fallback time.Time, fieldErrors map[string][]string) (time.Time, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return fallback, fieldErrors
	}

	if epochMillis, err := strconv.ParseInt(val, 10, 64); err == nil {
		return time.UnixMilli(epochMillis), fieldErrors
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return fallback, fieldErrors
	}
	return t, fieldErrors
}
