package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/milecraft/award-search-service/internal/pkg/modelprovider"
)

const (
	ProviderName   = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

type Provider struct {
	Name           string
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	ThinkingBudget int
	RateLimitRPS   int
	Limiter        *redis_rate.Limiter
	Client         *http.Client
}

func NewProvider(config modelprovider.ModelProviderConfig) *Provider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Provider{
		Name:           ProviderName,
		APIKey:         config.APIKey,
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Model:          config.Model,
		Timeout:        config.Timeout,
		ThinkingBudget: config.ThinkingBudget,
		RateLimitRPS:   config.RateLimitRPS,
		Limiter:        config.Limiter,
		Client:         &http.Client{},
	}
}

// Generate performs one generateContent call with the web-search tool
// enabled and a bounded thinking budget. Transport and service errors are
// propagated unchanged; there is no retry at this layer.
func (p *Provider) Generate(ctx context.Context, prompt string) (modelprovider.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	if p.Limiter != nil && p.RateLimitRPS > 0 {
		res, err := p.Limiter.Allow(ctx, fmt.Sprintf("limit:%s", p.Name),
			redis_rate.PerSecond(p.RateLimitRPS))
		if err != nil {
			return modelprovider.Response{}, fmt.Errorf("failed to rate limit: %w", err)
		}

		if res.Allowed == 0 {
			return modelprovider.Response{}, modelprovider.ErrProviderRateLimitExceeded
		}
	}

	payload := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		Tools: []tool{
			{GoogleSearch: &googleSearch{}},
		},
		GenerationConfig: &generationConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: p.ThinkingBudget},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return modelprovider.Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.BaseURL, p.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return modelprovider.Response{}, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return modelprovider.Response{}, fmt.Errorf("failed to call generateContent: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return modelprovider.Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return modelprovider.Response{}, fmt.Errorf("gemini: unexpected status %d: %s",
			resp.StatusCode, respBody)
	}

	var out generateContentResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return modelprovider.Response{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return p.toResponse(out), nil
}

func (p *Provider) toResponse(out generateContentResponse) modelprovider.Response {
	if len(out.Candidates) == 0 {
		return modelprovider.Response{}
	}

	cand := out.Candidates[0]

	var text strings.Builder
	for _, prt := range cand.Content.Parts {
		text.WriteString(prt.Text)
	}

	result := modelprovider.Response{Text: text.String()}

	if cand.GroundingMetadata == nil {
		return result
	}

	for _, chunk := range cand.GroundingMetadata.GroundingChunks {
		converted := modelprovider.GroundingChunk{}
		if chunk.Web != nil {
			converted.Web = &modelprovider.WebSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			}
		}

		result.GroundingChunks = append(result.GroundingChunks, converted)
	}

	return result
}
