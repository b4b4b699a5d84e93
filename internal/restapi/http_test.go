package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"farecard.opentransit.org/internal/app"
	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/fares"
	"farecard.opentransit.org/internal/logging"
	"farecard.opentransit.org/internal/metrics"
	"farecard.opentransit.org/internal/models"
	"farecard.opentransit.org/internal/payments"
	"farecard.opentransit.org/internal/transit"
)

// testRouteTables is the fixture network: two interlined subway lines and
// two bus routes sharing a stop.
func testRouteTables() (bus, subway transit.RouteMap) {
	bus = transit.RouteMap{
		"B12": {"Stop1", "Stop2", "Stop3", "Stop4", "Stop5"},
		"B9":  {"Stop9", "Stop5"},
	}
	subway = transit.RouteMap{
		"Red":  {"StationA", "StationB", "StationC", "StationD"},
		"Blue": {"StationD", "StationE", "StationF"},
	}
	return bus, subway
}

// createTestApi creates a RestAPI instance backed by the fixture network and
// an empty card store.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)
	schedule := fares.NewSchedule()
	store := cards.NewStore()
	bus, subway := testRouteTables()

	application := &app.Application{
		Config: app.Config{
			Env:       "test",
			ApiKeys:   []string{"TEST"},
			RateLimit: -1, // disabled
		},
		Logger:   logger,
		Schedule: schedule,
		Network:  transit.NewNetwork(bus, subway),
		Cards:    store,
		Payments: payments.NewWorkflow(store, schedule, logger),
		Metrics:  metrics.NewCollector(),
	}

	return NewRestAPI(application)
}

// issueTestCard puts a card on the given account with the given balance.
func issueTestCard(api *RestAPI, accountID string, balance float64) *cards.Card {
	return api.Cards.IssueCard(accountID, balance)
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, server *httptest.Server, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	return resp, decodeResponse(t, resp)
}

func postJSON(t *testing.T, server *httptest.Server, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()
	return sendJSON(t, server, http.MethodPost, endpoint, body)
}

func putJSON(t *testing.T, server *httptest.Server, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()
	return sendJSON(t, server, http.MethodPut, endpoint, body)
}

func sendJSON(t *testing.T, server *httptest.Server, method, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, server.URL+endpoint, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp, decodeResponse(t, resp)
}

func decodeResponse(t *testing.T, resp *http.Response) models.ResponseModel {
	t.Helper()
	defer resp.Body.Close() // nolint:errcheck

	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return response
}

// entryOf digs the "entry" object out of a response envelope.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "response data should hold an entry")
	return entry
}

// listOf digs the "list" array out of a response envelope.
func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "response data should hold a list")
	return list
}
