package app

import "net/http"

// RequestHasInvalidAPIKey reports whether the request lacks a key that
// unlocks the admin endpoints (fare schedule edits, route edits, payment
// resolution).
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
