package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Toda mutação responde exatamente um ack {success, message}; falha
// carrega a mensagem do erro sem retocar.

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), ackResponse{
		Success: false,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case entity.IsValidationError(err):
		return http.StatusBadRequest
	case entity.IsAuthRequiredError(err):
		return http.StatusUnauthorized
	case entity.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
