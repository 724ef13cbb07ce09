package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pawprint-labs/petscribe/internal/images"
	"github.com/pawprint-labs/petscribe/internal/params"
)

// maxUploadBytes caps the multipart request body at 16 MiB.
const maxUploadBytes = 16 << 20

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// HandleDescribe accepts a multipart pet photo upload plus option fields
// and returns the model's description as JSON. Validation-level and
// backend-level failures come back as a 200 with success=false; malformed
// requests get a 400.
func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.writeError(w, "No file selected", http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		h.writeError(w, "Invalid file type. Allowed: png, jpg, jpeg, gif, webp", http.StatusBadRequest)
		return
	}

	fileData, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Validate the actual content, not just the filename.
	mime, ok := images.Sniff(fileData)
	if !ok {
		h.writeError(w, "Invalid image file: unsupported content type "+mime, http.StatusBadRequest)
		return
	}
	img, err := images.Decode(fileData)
	if err != nil {
		h.writeError(w, "Invalid image file: "+err.Error(), http.StatusBadRequest)
		return
	}

	overrides, err := overridesFromForm(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	slog.Info("Describe request received",
		"request_id", requestID,
		"filename", header.Filename,
		"mime", mime,
		"engine", overrides.Engine,
		"language", overrides.Language)

	result := h.describer.Describe(r.Context(), images.DecodedSource{Image: img}, overrides)
	if !result.Success {
		slog.Warn("Describe request failed", "request_id", requestID, "kind", result.ErrorKind, "err", result.Error)
	}

	h.writeJSON(w, http.StatusOK, result)
}

func overridesFromForm(r *http.Request) (params.Overrides, error) {
	o := params.Overrides{
		Engine:   r.FormValue("llm_engine"),
		Language: r.FormValue("language"),
		BaseURL:  r.FormValue("ollama_base_url"),
	}

	// The web form always targets an engine; keep its llava default when
	// the field is omitted.
	if o.Engine == "" {
		o.Engine = string(params.EngineLlava)
	}

	if v := r.FormValue("temperature"); v != "" {
		temperature, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params.Overrides{}, fmt.Errorf("invalid temperature: %s", v)
		}
		o.Temperature = &temperature
	}
	if v := r.FormValue("max_tokens"); v != "" {
		maxTokens, err := strconv.Atoi(v)
		if err != nil {
			return params.Overrides{}, fmt.Errorf("invalid max_tokens: %s", v)
		}
		o.MaxTokens = &maxTokens
	}
	if prompt := strings.TrimSpace(r.FormValue("prompt")); prompt != "" {
		o.Prompt = prompt
	}

	return o, nil
}
