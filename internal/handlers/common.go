package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pawprint-labs/petscribe/internal/describe"
	"github.com/pawprint-labs/petscribe/internal/params"
)

type Handler struct {
	describer  *describe.Service
	paramsPath string
}

func New(paramsPath string) *Handler {
	if paramsPath == "" {
		paramsPath = params.DefaultFilePath
	}
	return &Handler{
		describer:  describe.NewService(paramsPath),
		paramsPath: paramsPath,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	h.writeJSON(w, code, map[string]any{"success": false, "error": message})
}
