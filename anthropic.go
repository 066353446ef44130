package main

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

// anthropicAnalyzer describes projects with the Anthropic Messages API
type anthropicAnalyzer struct {
	client anthropic.Client
	model  string
}

func newAnthropicAnalyzer(model string, opts ...option.RequestOption) *anthropicAnalyzer {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicAnalyzer{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *anthropicAnalyzer) Analyze(ctx context.Context, name, projectContext string) (Analysis, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(analysisPrompt(name, projectContext))),
		},
	})
	if err != nil {
		return Analysis{}, err
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return parseAnalysis(text)
}
