// Package params resolves the effective configuration for a description
// request by merging built-in defaults, an optional options file, and
// caller-supplied overrides, then validating the result.
package params

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFilePath is the well-known location of the options file.
const DefaultFilePath = "params.json"

// Language selects which built-in prompt template is used when the caller
// does not supply a prompt.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHebrew  Language = "hebrew"
)

// Engine is the caller-facing identifier for the underlying model.
type Engine string

const (
	EngineLlava  Engine = "llava"
	EngineQwenVL Engine = "qwen-vl"
)

// modelByEngine maps engines to the Ollama model names they run as.
var modelByEngine = map[Engine]string{
	EngineLlava:  "llava",
	EngineQwenVL: "qwen3-vl",
}

var promptByLanguage = map[Language]string{
	LanguageEnglish: "Describe this pet in detail. Include information about the type of animal, breed (if identifiable), colors, size, pose, and any distinctive features.",
	LanguageHebrew:  "תאר את חיית המחמד הזו בפירוט. כלול מידע על סוג החיה, גזע (אם ניתן לזיהוי), צבעים, גודל, תנוחה, וכל מאפיינים ייחודיים.",
}

// Overrides is a partial set of options. Pointer fields distinguish an
// absent value from an explicit zero so merge precedence stays exact.
type Overrides struct {
	Engine      string   `json:"llm_engine,omitempty" yaml:"llm_engine"`
	Language    string   `json:"language,omitempty" yaml:"language"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature"`
	MaxTokens   *int     `json:"max_tokens,omitempty" yaml:"max_tokens"`
	BaseURL     string   `json:"ollama_base_url,omitempty" yaml:"ollama_base_url"`
	Prompt      string   `json:"prompt,omitempty" yaml:"prompt"`
}

// Config is the fully merged and validated configuration for one request.
// It is constructed fresh per request and never mutated afterwards.
type Config struct {
	Engine      Engine
	Model       string
	Language    Language
	Temperature float64
	MaxTokens   int
	BaseURL     string
	Prompt      string
}

// Kind identifies which validation rule a resolution failure violated.
type Kind string

const (
	KindInvalidLanguage Kind = "invalid_language"
	KindMissingEngine   Kind = "missing_engine"
	KindInvalidEngine   Kind = "invalid_engine"
)

// Error is a validation failure produced by Resolve.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Defaults returns the built-in option values.
func Defaults() Overrides {
	temperature := 0.7
	maxTokens := 512
	return Overrides{
		Language:    string(LanguageEnglish),
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		BaseURL:     "http://localhost:11434",
	}
}

// Merge overlays over onto base field by field. A field present in over
// always wins; absent fields keep the base value.
func Merge(base, over Overrides) Overrides {
	out := base
	if over.Engine != "" {
		out.Engine = over.Engine
	}
	if over.Language != "" {
		out.Language = over.Language
	}
	if over.Temperature != nil {
		out.Temperature = over.Temperature
	}
	if over.MaxTokens != nil {
		out.MaxTokens = over.MaxTokens
	}
	if over.BaseURL != "" {
		out.BaseURL = over.BaseURL
	}
	if over.Prompt != "" {
		out.Prompt = over.Prompt
	}
	return out
}

// Load reads the options file at path. An absent file is treated as an
// empty option set. A malformed file is also treated as empty, with a
// warning, so a broken params file never hard-fails a request.
func Load(path string) Overrides {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Could not read params file", "path", path, "err", err)
		}
		return Overrides{}
	}

	var o Overrides
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &o)
	default:
		err = json.Unmarshal(data, &o)
	}
	if err != nil {
		slog.Warn("Could not parse params file", "path", path, "err", err)
		return Overrides{}
	}
	return o
}

// Resolve merges built-in defaults, the options file contents, and caller
// overrides (in that precedence order) and validates the result.
//
// Temperature and max tokens are deliberately passed through unchecked;
// the backend applies its own interpretation.
func Resolve(file, caller Overrides) (Config, *Error) {
	merged := Merge(Merge(Defaults(), file), caller)

	language := Language(strings.ToLower(merged.Language))
	if _, ok := promptByLanguage[language]; !ok {
		return Config{}, &Error{
			Kind:    KindInvalidLanguage,
			Message: fmt.Sprintf("Invalid language: %s. Must be one of: english, hebrew", merged.Language),
		}
	}

	prompt := strings.TrimSpace(merged.Prompt)
	if prompt == "" {
		prompt = promptByLanguage[language]
	}

	if merged.Engine == "" {
		return Config{}, &Error{
			Kind:    KindMissingEngine,
			Message: "llm_engine parameter is required. Options: llava, qwen-vl",
		}
	}

	engine := Engine(strings.ToLower(merged.Engine))
	model, ok := modelByEngine[engine]
	if !ok {
		return Config{}, &Error{
			Kind:    KindInvalidEngine,
			Message: fmt.Sprintf("Invalid llm_engine: %s. Must be one of: llava, qwen-vl", merged.Engine),
		}
	}

	return Config{
		Engine:      engine,
		Model:       model,
		Language:    language,
		Temperature: *merged.Temperature,
		MaxTokens:   *merged.MaxTokens,
		BaseURL:     merged.BaseURL,
		Prompt:      prompt,
	}, nil
}

// PromptForLanguage returns the built-in prompt template for a language.
func PromptForLanguage(language Language) string {
	if prompt, ok := promptByLanguage[language]; ok {
		return prompt
	}
	return promptByLanguage[LanguageEnglish]
}
