// Package advisor generates short natural-language reviews of a
// recommended transfer route, using the Gemini generateContent API.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smartransfer/routes/engine"
)

var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrEmptyResponse = errors.New("empty model response")
)

const (
	defaultURL   = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel = "gemini-2.5-flash"
)

// ReviewInput is the evaluated route the advisor reviews
type ReviewInput struct {
	Quote          *engine.Quote
	OriginCurrency string
	DestCurrency   string
	Amount         float64
}

// generateRequest is the request body for the generateContent API
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the response from the generateContent API
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Advisor is the Gemini-backed route review client
type Advisor struct {
	client *http.Client
	url    string
	model  string
	apiKey string
}

type Option func(a *Advisor)

// WithBaseURL overrides the generateContent API base URL
func WithBaseURL(url string) Option {
	return func(a *Advisor) {
		a.url = url
	}
}

// WithModel overrides the model used for reviews
func WithModel(model string) Option {
	return func(a *Advisor) {
		a.model = model
	}
}

// New creates a new Advisor instance
func New(apiKey string, timeout time.Duration, opts ...Option) *Advisor {
	a := &Advisor{
		client: &http.Client{
			Timeout: timeout,
		},
		url:    defaultURL,
		model:  defaultModel,
		apiKey: apiKey,
	}

	// Apply the options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Review generates a short expert review of the recommended route
func (a *Advisor) Review(ctx context.Context, input *ReviewInput) (string, error) {
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := generateRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: buildPrompt(input)},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("unable to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", a.url, a.model, a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("unable to create POST request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to execute POST request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("unable to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			return "", fmt.Errorf("model API error: %s", apiResp.Error.Message)
		}

		return "", fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := apiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// buildPrompt constructs the review prompt for the recommended route
func buildPrompt(input *ReviewInput) string {
	return fmt.Sprintf(
		`You are a financial routing expert.

A user wants to send %.2f %s
to %s.

The recommended option is %q
with a total fee of %.2f
(%.2f%% of the transfer),
and an estimated settlement time of %g hours.

In 4 concise sentences:

1. Explain why this option is optimal.
2. Mention any important risk or caveat.
3. Briefly explain how the user would execute this transfer step-by-step.
4. Give one practical tip to reduce cost or delay.

If the method is crypto, explain the on-ramp, wallet transfer, and off-ramp process.
If the method is a traditional provider, explain account linking and transfer steps.

Be clear and professional. Keep under 120 words.`,
		input.Amount,
		input.OriginCurrency,
		input.DestCurrency,
		input.Quote.Provider.Name,
		input.Quote.TotalFeeUSD,
		input.Quote.CostPct,
		input.Quote.SettlementHours,
	)
}
