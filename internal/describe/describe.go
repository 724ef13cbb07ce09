// Package describe runs a pet photo through the configured
// vision-language model and maps every outcome, success or failure, into
// a single Result record.
package describe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pawprint-labs/petscribe/internal/images"
	"github.com/pawprint-labs/petscribe/internal/ollama"
	"github.com/pawprint-labs/petscribe/internal/params"
)

// Kind tags a failed Result with the stage that rejected the request.
type Kind string

const (
	KindInvalidLanguage Kind = "invalid_language"
	KindMissingEngine   Kind = "missing_engine"
	KindInvalidEngine   Kind = "invalid_engine"
	KindImageLoad       Kind = "image_load_error"
	KindBackend         Kind = "backend_error"
	KindUnexpected      Kind = "unexpected_error"
)

// Result is the outcome of one description request. Exactly one of the
// success and failure shapes is populated per call.
type Result struct {
	Success      bool            `json:"success"`
	Description  string          `json:"description,omitempty"`
	ModelUsed    string          `json:"model_used,omitempty"`
	LanguageUsed string          `json:"language_used,omitempty"`
	Error        string          `json:"error,omitempty"`
	ErrorKind    Kind            `json:"error_kind,omitempty"`
	FullResponse json.RawMessage `json:"full_response,omitempty"`
}

// Service resolves request options and relays images to the backend. It
// holds no per-request state; the options file is re-read on every call.
type Service struct {
	paramsPath string
}

// NewService returns a Service reading its options file from paramsPath.
func NewService(paramsPath string) *Service {
	if paramsPath == "" {
		paramsPath = params.DefaultFilePath
	}
	return &Service{paramsPath: paramsPath}
}

func failure(kind Kind, message, model string) Result {
	return Result{
		Success:   false,
		Error:     message,
		ErrorKind: kind,
		ModelUsed: model,
	}
}

func validationKind(k params.Kind) Kind {
	switch k {
	case params.KindMissingEngine:
		return KindMissingEngine
	case params.KindInvalidEngine:
		return KindInvalidEngine
	default:
		return KindInvalidLanguage
	}
}

// Describe runs one request end to end: resolve options, normalize the
// image, call the backend, and map the outcome. Validation failures are
// detected before any network call is attempted. No retries.
func (s *Service) Describe(ctx context.Context, src images.Source, caller params.Overrides) (result Result) {
	cfg, verr := params.Resolve(params.Load(s.paramsPath), caller)
	if verr != nil {
		return failure(validationKind(verr.Kind), verr.Message, "")
	}

	// A fault past this point must still come back as a Result.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Describe panicked", "panic", r)
			result = failure(KindUnexpected, fmt.Sprintf("Unexpected error: %v", r), cfg.Model)
		}
	}()

	data, err := images.Normalize(src)
	if err != nil {
		return failure(KindImageLoad, fmt.Sprintf("Failed to load image: %v", err), "")
	}

	client := ollama.New(cfg.BaseURL)
	resp, err := client.Generate(ctx, ollama.GenerateRequest{
		Model:  cfg.Model,
		Prompt: cfg.Prompt,
		Images: []string{base64.StdEncoding.EncodeToString(data)},
		Stream: false,
		Options: ollama.Options{
			Temperature: cfg.Temperature,
			NumPredict:  cfg.MaxTokens,
		},
	})
	if err != nil {
		slog.Error("Ollama generate failed", "model", cfg.Model, "err", err)
		return failure(KindBackend, fmt.Sprintf("Ollama API error: %v", err), cfg.Model)
	}

	slog.Info("Description generated", "model", cfg.Model, "language", cfg.Language, "length", len(resp.Response))
	return Result{
		Success:      true,
		Description:  resp.Response,
		ModelUsed:    cfg.Model,
		LanguageUsed: string(cfg.Language),
		FullResponse: resp.Raw,
	}
}
