package utils

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractParam retrieves a path parameter from the request context and
// removes file extensions like ".json".
func ExtractParam(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	rawValue := params.ByName(paramName)
	return strings.Split(rawValue, ".json")[0]
}
