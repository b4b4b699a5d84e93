package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func requestWithParam(name, value string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	params := httprouter.Params{{Key: name, Value: value}}
	ctx := context.WithValue(r.Context(), httprouter.ParamsKey, params)
	return r.WithContext(ctx)
}

func TestExtractParam(t *testing.T) {
	r := requestWithParam("number", "123456789012")
	assert.Equal(t, "123456789012", ExtractParam(r, "number"))
}

func TestExtractParamStripsJSONSuffix(t *testing.T) {
	r := requestWithParam("number", "123456789012.json")
	assert.Equal(t, "123456789012", ExtractParam(r, "number"))
}

func TestExtractParamMissing(t *testing.T) {
	r := requestWithParam("other", "x")
	assert.Equal(t, "", ExtractParam(r, "number"))
}
