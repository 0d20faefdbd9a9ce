package ollama

import (
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	genModel   string
	httpClient *http.Client
}

func New(baseURL, genModel string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}
