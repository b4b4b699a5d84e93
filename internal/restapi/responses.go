package restapi

import (
	"encoding/json"
	"net/http"

	"farecard.opentransit.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	if response.Code != http.StatusOK {
		w.WriteHeader(response.Code)
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}
