package handlers

import (
	"net/http"

	h "mergingtonactivities/internal/delivery/http/helpers"
)

// HealthResponse is the body of GET /healthz.
// swagger:model HealthResponse
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
