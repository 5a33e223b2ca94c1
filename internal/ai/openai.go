package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ghost-archiver/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer defines the AI summary interface used by the digest builder.
type Summarizer interface {
	// SummarizePost creates a concise 1-2 sentence description of a single
	// archived post in the given language.
	SummarizePost(ctx context.Context, title, text, language string) (string, error)
	// SummarizeDigest creates a short overview of a set of archived posts in
	// the given language.
	SummarizeDigest(ctx context.Context, entries []model.IndexEntry, language string) (string, error)
}

// OpenAIClient implements Summarizer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) SummarizePost(ctx context.Context, title, text, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	text = strings.TrimSpace(text)
	if text == "" {
		text = title
	}
	// Trim input to keep tokens reasonable.
	if len([]rune(text)) > 1500 {
		text = string([]rune(text)[:1500])
	}
	lang := language
	if strings.TrimSpace(lang) == "" {
		lang = "English"
	}
	prompt := fmt.Sprintf(
		"Summarize this blog post in 1-2 plain sentences in %s. No markdown, no preamble.\n\nTitle: %s\n\n%s",
		lang, title, text,
	)
	return o.complete(ctx, prompt)
}

func (o *OpenAIClient) SummarizeDigest(ctx context.Context, entries []model.IndexEntry, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()
	lang := language
	if strings.TrimSpace(lang) == "" {
		lang = "English"
	}
	var b strings.Builder
	for i, e := range entries {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&b, "- %s", e.Title)
		if strings.TrimSpace(e.Excerpt) != "" {
			fmt.Fprintf(&b, ": %s", e.Excerpt)
		}
		b.WriteString("\n")
	}
	prompt := fmt.Sprintf(
		"These are recently archived blog posts. Write a 2-3 sentence overview of the themes in %s. No markdown, no preamble.\n\n%s",
		lang, b.String(),
	)
	return o.complete(ctx, prompt)
}

func (o *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	slog.Debug("ai: summary generated", "model", o.model, "duration", time.Since(start))
	return out, nil
}
