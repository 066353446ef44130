package main

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiAnalyzer describes projects with the Gemini API
type geminiAnalyzer struct {
	cli   *genai.Client
	model string
}

func newGeminiAnalyzer(ctx context.Context, cc *genai.ClientConfig, model string) (*geminiAnalyzer, error) {
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiAnalyzer{cli: cli, model: model}, nil
}

func (g *geminiAnalyzer) Analyze(ctx context.Context, name, projectContext string) (Analysis, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: analysisPrompt(name, projectContext)}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return Analysis{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Analysis{}, errors.New("gemini returned no candidates")
	}
	return parseAnalysis(resp.Candidates[0].Content.Parts[0].Text)
}
