// Package insights produces an optional LLM-written narrative over the
// research history. It sits entirely outside the research pipeline; the
// agent never depends on it.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/NoobProgrammer008/ai-agent-scraper/agent"
)

const systemPrompt = "You are a research assistant. Given a log of " +
	"research runs (task, query, outcome, findings), write a short " +
	"narrative summary of what was researched and what was found. Note " +
	"failures briefly. Keep it under 200 words."

// Summarizer turns a research history into a narrative summary.
type Summarizer interface {
	Summarize(ctx context.Context, results []agent.ResearchResult) (string, error)
}

// Config holds the OpenAI connection settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAISummarizer implements Summarizer with the OpenAI chat API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a summarizer, or an error if no API key is set.
func NewOpenAI(cfg Config) (*OpenAISummarizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Summarize renders the history into a prompt and asks the model for a
// narrative.
func (s *OpenAISummarizer) Summarize(ctx context.Context, results []agent.ResearchResult) (string, error) {
	if len(results) == 0 {
		return "", errors.New("no research history to summarize")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: renderHistory(results)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func renderHistory(results []agent.ResearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Run %d:\n", i+1)
		if r.Task != "" {
			fmt.Fprintf(&b, "  task: %s\n", r.Task)
		}
		if r.Query != "" {
			fmt.Fprintf(&b, "  query: %s\n", r.Query)
		}
		if r.Success {
			fmt.Fprintf(&b, "  outcome: success\n  findings: %s\n", truncate(r.Analysis, 600))
		} else {
			fmt.Fprintf(&b, "  outcome: failed (%s)\n", r.Error)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
