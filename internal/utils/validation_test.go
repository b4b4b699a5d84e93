package utils

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCardNumber(t *testing.T) {
	assert.NoError(t, ValidateCardNumber("123456789012"))

	assert.Error(t, ValidateCardNumber(""))
	assert.Error(t, ValidateCardNumber("12345"))
	assert.Error(t, ValidateCardNumber("1234567890123"))
	assert.Error(t, ValidateCardNumber("12345678901a"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("StationA"))
	assert.NoError(t, ValidateName("Main St & 4th Ave"))

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("<script>alert(1)</script>"))
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}
	assert.Error(t, ValidateName(string(longName)))
}

func TestParseIntParam(t *testing.T) {
	params := url.Values{"n": {"5"}}

	n, fieldErrors := ParseIntParam(params, "n", 3, nil)
	assert.Equal(t, 5, n)
	assert.Empty(t, fieldErrors)

	n, fieldErrors = ParseIntParam(url.Values{}, "n", 3, nil)
	assert.Equal(t, 3, n)
	assert.Empty(t, fieldErrors)

	n, fieldErrors = ParseIntParam(url.Values{"n": {"abc"}}, "n", 3, nil)
	assert.Equal(t, 3, n)
	assert.Contains(t, fieldErrors, "n")
}

func TestParseTimeParam(t *testing.T) {
	fallback := time.Date(2019, 3, 18, 0, 0, 0, 0, time.UTC)

	got, fieldErrors := ParseTimeParam(url.Values{"start": {"2019-03-18T08:00:00Z"}}, "start", fallback, nil)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, time.Date(2019, 3, 18, 8, 0, 0, 0, time.UTC), got.UTC())

	got, fieldErrors = ParseTimeParam(url.Values{"start": {"1552896000000"}}, "start", fallback, nil)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, time.UnixMilli(1552896000000), got)

	got, fieldErrors = ParseTimeParam(url.Values{}, "start", fallback, nil)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, fallback, got)

	_, fieldErrors = ParseTimeParam(url.Values{"start": {"not-a-time"}}, "start", fallback, nil)
	assert.Contains(t, fieldErrors, "start")
}
