package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/milecraft/award-search-service/internal/pkg/modelprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(baseURL string) *Provider {
	return NewProvider(modelprovider.ModelProviderConfig{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		Timeout:        5 * time.Second,
		ThinkingBudget: 4096,
	})
}

func TestProvider_Generate(t *testing.T) {
	var gotRequest map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "Here is "}, {"text": "the report."}]},
				"groundingMetadata": {
					"groundingChunks": [
						{"web": {"title": "award chart", "uri": "https://example.com/chart"}},
						{}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	got, err := provider.Generate(context.Background(), "find award seats")
	require.NoError(t, err)

	// multi-part text is concatenated
	assert.Equal(t, "Here is the report.", got.Text)

	require.Len(t, got.GroundingChunks, 2)
	require.NotNil(t, got.GroundingChunks[0].Web)
	assert.Equal(t, "award chart", got.GroundingChunks[0].Web.Title)
	assert.Equal(t, "https://example.com/chart", got.GroundingChunks[0].Web.URI)
	assert.Nil(t, got.GroundingChunks[1].Web)

	// the call must enable the search tool and bound the thinking budget
	tools, ok := gotRequest["tools"].([]any)
	require.True(t, ok, "tools missing from request")
	require.Len(t, tools, 1)
	_, ok = tools[0].(map[string]any)["google_search"]
	assert.True(t, ok, "google_search tool not enabled")

	generationConfig, ok := gotRequest["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from request")
	thinking, ok := generationConfig["thinkingConfig"].(map[string]any)
	require.True(t, ok, "thinkingConfig missing from request")
	assert.Equal(t, float64(4096), thinking["thinkingBudget"])

	contents, ok := gotRequest["contents"].([]any)
	require.True(t, ok, "contents missing from request")
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "find award seats", parts[0].(map[string]any)["text"])
}

func TestProvider_Generate_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		//nolint:errcheck
		w.Write([]byte(`{"error": {"message": "overloaded"}}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.Generate(context.Background(), "find award seats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 503")
}

func TestProvider_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	got, err := provider.Generate(context.Background(), "find award seats")
	require.NoError(t, err)
	assert.Equal(t, modelprovider.Response{}, got)
}

func TestProvider_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels r.Context(); otherwise server.Close deadlocks.
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)
	provider.Timeout = 50 * time.Millisecond

	_, err := provider.Generate(context.Background(), "find award seats")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
