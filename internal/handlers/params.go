package handlers

import (
	"net/http"

	"github.com/pawprint-labs/petscribe/internal/params"
)

// HandleParams returns the effective defaults (built-ins merged with the
// options file) so the web form can prefill its fields.
func (h *Handler) HandleParams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	effective := params.Merge(params.Defaults(), params.Load(h.paramsPath))
	h.writeJSON(w, http.StatusOK, effective)
}
