package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/llm"
	"github.com/alexanderramin/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

// TestRecommend_WithHTTPTestServer exercises the full path from the Ollama
// HTTP reply through the client to the parsed suggestion.
func TestRecommend_WithHTTPTestServer(t *testing.T) {
	var gotFormat string
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotFormat, _ = body["format"].(string)

		content := `{"message":"El plan S cubre la tienda.","items":[` +
			`{"id":"plan-s","type":"plan","reason":"presupuesto ajustado"},` +
			`{"id":"shop","type":"plan-service","reason":"venta online"}]}`
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.2",
			"message": map[string]string{"role": "assistant", "content": content},
		})
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	svc := NewRecommendService(llm.NewOllamaClient(cfg, llm.NoopObserver{}), testutil.NewTestStore(t), cfg)

	s := svc.Recommend(context.Background(), RecommendRequest{
		Mode:  domain.ModeMensual,
		Brief: "Una tienda pequeña con cuota mensual",
	})

	require.NoError(t, s.Err)
	assert.Equal(t, "json", gotFormat)
	assert.Equal(t, SourceLLM, s.Source)
	require.Len(t, s.Items, 2)
	assert.Equal(t, domain.ItemPlan, s.Items[0].Type)
	assert.Equal(t, domain.ItemPlanService, s.Items[1].Type)
}

func TestRecommend_WithHTTPTestServer_ServerError(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0
	svc := NewRecommendService(llm.NewOllamaClient(cfg, llm.NoopObserver{}), testutil.NewTestStore(t), cfg)

	s := svc.Recommend(context.Background(), RecommendRequest{Mode: domain.ModePuntual, Brief: "blog"})

	require.Error(t, s.Err)
	assert.Equal(t, SourceDeterministic, s.Source)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "blog", s.Items[0].ID)
}
