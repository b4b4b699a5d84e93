package restapi

import (
	"net/http"
	"time"

	"farecard.opentransit.org/internal/models"
)

// currentTimeHandler writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeModel(time.Now())
	api.sendResponse(w, r, models.NewEntryResponse(timeData))
}
