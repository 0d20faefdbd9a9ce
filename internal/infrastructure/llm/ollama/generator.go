package ollama

import (
	"context"
	"fmt"
	"strings"
)

// Generator renders the final answer with a local Ollama model. The whole
// contract is the orchestrated context block plus the original query.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Generate(ctx context.Context, contextBlock, query string) (string, error) {
	prompt := buildPrompt(contextBlock, query)

	reqBody := map[string]any{
		"model":  g.client.genModel,
		"prompt": prompt,
		"stream": false,
	}
	var response struct {
		Response string `json:"response"`
	}
	if err := g.client.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}

	answer := strings.TrimSpace(response.Response)
	if answer == "" {
		return "", fmt.Errorf("empty generation result")
	}
	return answer, nil
}

func buildPrompt(contextBlock, query string) string {
	var b strings.Builder
	b.WriteString("You are a concise assistant answering questions about a local business.\n\n")
	b.WriteString(contextBlock)
	if !strings.Contains(contextBlock, query) {
		fmt.Fprintf(&b, "\nQuestion: %s\n", query)
	}
	b.WriteString("\nAnswer:")
	return b.String()
}
