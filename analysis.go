package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

// Analyzer describes a project from its name and textual context.
// Implementations may fail; the scanner turns failures into error shaped
// analyses so that they are retried on the next scan
type Analyzer interface {
	Analyze(ctx context.Context, name, projectContext string) (Analysis, error)
}

const (
	// analysisErrorPrefix starts the description of a failed analysis
	analysisErrorPrefix = "Analysis failed: "

	// unknownCategory marks an analysis that must be redone
	unknownCategory = "unknown"
)

// errEmptyAnalysis is returned when a provider answers without a description
var errEmptyAnalysis = errors.New("empty analysis")

// failedAnalysis returns the error shaped analysis for err
func failedAnalysis(err error) Analysis {
	return Analysis{
		Description:  analysisErrorPrefix + truncateRunes(err.Error(), 50),
		Technologies: []string{},
		Category:     unknownCategory,
	}
}

// isValid reports whether a is a usable analysis rather than a missing or
// failed one
func (a *Analysis) isValid() bool {
	if a == nil {
		return false
	}
	if a.Description == "" && a.Category == "" && len(a.Technologies) == 0 {
		return false
	}
	return a.Category != unknownCategory && !strings.HasPrefix(a.Description, analysisErrorPrefix)
}

// analysisPrompt asks for the JSON shape decoded by parseAnalysis
func analysisPrompt(name, projectContext string) string {
	return fmt.Sprintf(`Analyze this software project and give a concise description.

Project name: %s

%s

Answer in JSON with exactly this format:
{
    "description": "What the project does, in 1-2 sentences",
    "technologies": ["main", "technologies", "used"],
    "category": "One of: web-app, mobile-app, cli-tool, library, api, automation, game, other"
}

Answer ONLY with the JSON, nothing else.`, name, projectContext)
}

var codeFenceRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// parseAnalysis decodes a provider response, tolerating a surrounding
// markdown code fence
func parseAnalysis(text string) (Analysis, error) {
	text = strings.TrimSpace(text)
	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var a Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Analysis{}, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if strings.TrimSpace(a.Description) == "" {
		return Analysis{}, errEmptyAnalysis
	}
	if a.Technologies == nil {
		a.Technologies = []string{}
	}
	if a.Category == "" {
		a.Category = "other"
	}
	return a, nil
}

// newAnalyzer returns the analyzer selected by cfg, or nil when analysis
// is disabled or no credentials are available
func newAnalyzer(ctx context.Context, cfg *Config) (Analyzer, error) {
	switch cfg.Provider {
	case providerNone:
		return nil, nil
	case providerGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		g, err := newGeminiAnalyzer(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		}, cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case providerAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return newAnthropicAnalyzer(cfg.Model, option.WithAPIKey(cfg.AnthropicAPIKey)), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
