package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tapBody(cardNumber, station, route, direction string) map[string]interface{} {
	return map[string]interface{}{
		"cardNumber": cardNumber,
		"station":    station,
		"route":      route,
		"direction":  direction,
	}
}

func TestTapSubwayTripEndToEnd(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	resp, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationA", "Red", "in"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry := entryOf(t, model)
	assert.Equal(t, "entered", entry["outcome"])
	assert.Equal(t, 0.0, entry["charged"])

	// Three hops at 0.50 each.
	resp, model = postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationD", "Red", "out"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entry = entryOf(t, model)
	assert.Equal(t, "exited", entry["outcome"])
	assert.Equal(t, 1.5, entry["charged"])
	assert.Equal(t, 17.5, entry["balance"])
}

func TestTapBusChargesFlatFareAtEntry(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	_, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "Stop1", "B12", "in"))
	entry := entryOf(t, model)
	assert.Equal(t, "entered", entry["outcome"])
	assert.Equal(t, 2.0, entry["charged"])

	_, model = postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "Stop3", "B12", "out"))
	entry = entryOf(t, model)
	assert.Equal(t, "exited", entry["outcome"])
	assert.Equal(t, 0.0, entry["charged"])
}

func TestTapWrongRouteExitIsFined(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "Stop5", "B12", "in"))
	_, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "Stop5", "B9", "out"))
	entry := entryOf(t, model)
	assert.Equal(t, "wrongRouteExit", entry["outcome"])
	assert.Equal(t, 6.0, entry["charged"])
}

func TestTapUnmatchedExitIsFined(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	_, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationB", "Red", "out"))
	entry := entryOf(t, model)
	assert.Equal(t, "unmatchedExit", entry["outcome"])
	assert.Equal(t, 6.0, entry["charged"])
	assert.Equal(t, 13.0, entry["balance"])
}

func TestTapUnknownCardReturns404(t *testing.T) {
	api := createTestApi(t)
	server := serveApi(t, api)

	resp, model := postJSON(t, server, "/api/fare/tap", tapBody("999999999999", "StationA", "Red", "in"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestTapSuspendedCardIsRefused(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	card.SetActivated(false)
	server := serveApi(t, api)

	resp, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationA", "Red", "in"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "card is suspended", model.Text)
}

func TestTapUnknownRouteIsRefused(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	resp, model := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationA", "Teleporter", "in"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown route", model.Text)
}

func TestTapValidationErrors(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	resp, _ := postJSON(t, server, "/api/fare/tap", tapBody(card.Number(), "StationA", "Red", "sideways"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, server, "/api/fare/tap", tapBody("short", "StationA", "Red", "in"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTapAcceptsExplicitTime(t *testing.T) {
	api := createTestApi(t)
	card := issueTestCard(api, "rider-1", 19.0)
	server := serveApi(t, api)

	body := tapBody(card.Number(), "StationA", "Red", "in")
	body["time"] = "2019-03-18T08:00:00Z"
	resp, model := postJSON(t, server, "/api/fare/tap", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "entered", entryOf(t, model)["outcome"])

	body = tapBody(card.Number(), "StationD", "Red", "out")
	body["time"] = "2019-03-18T08:30:00Z"
	_, model = postJSON(t, server, "/api/fare/tap", body)
	assert.Equal(t, "exited", entryOf(t, model)["outcome"])
}
