package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/pages"
	"github.com/agenthands/discourse/internal/ui"
)

func table(t *testing.T, columns []string, rows ...[]string) *data.Table {
	t.Helper()
	tbl, err := data.NewTable(columns, rows)
	require.NoError(t, err)
	return tbl
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	counts := table(t, []string{"top_keywords", "top_occurrences"}, []string{"vote", "10"}, []string{"fraud", "4"})
	edges, err := data.NewKeywordMap([]string{"vote"}, map[string]*data.Table{
		"vote": table(t, []string{"agreement", "edge_bet"}, []string{"1", "0.1"}, []string{"-1", "0.4"}),
	})
	require.NoError(t, err)
	communities, err := data.NewKeywordMap([]string{"vote"}, map[string]*data.Table{
		"vote": table(t, []string{"SourceModularity", "TargetModularity", "agreement", "edge_bet", "originalUsernamePost"},
			[]string{"1", "2", "1", "0.5", "alice"}),
	})
	require.NoError(t, err)

	reg := pages.NewRegistry()
	require.NoError(t, reg.Register(pages.Home()))
	require.NoError(t, reg.Register(pages.Polarization(counts, edges, charts.DefaultPercentileOptions())))
	require.NoError(t, reg.Register(pages.Relationships(communities, charts.DefaultNetworkOptions())))

	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	return NewServer(reg, renderer, t.TempDir()).SetupRouter()
}

func do(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(setupRouter(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestListPages(t *testing.T) {
	w := do(setupRouter(t), http.MethodGet, "/api/pages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pages []PageSummary `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Pages, 3)
	assert.Equal(t, "home", body.Pages[0].Slug)
	assert.Equal(t, "/relationships", body.Pages[2].Path)
}

func TestPageLayout(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/pages/relationships/layout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body LayoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "vote", body.Defaults["keyword-dropdown"])
	assert.Equal(t, "network-graph.figure", body.Bindings[0].Output)

	w = do(r, http.MethodGet, "/api/pages/nope/layout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallback(t *testing.T) {
	r := setupRouter(t)

	body := []byte(`{"output":"faq_collapse.is_open","inputs":{"faq_toggle":1},"state":{"faq_collapse":false}}`)
	w := do(r, http.MethodPost, "/api/pages/polarization/callbacks", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"output":"faq_collapse.is_open","property":"is_open","value":true}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/pages/relationships/callbacks", []byte(`{"output":"network-graph","inputs":{"keyword-dropdown":"vote"}}`))
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Property string       `json:"property"`
		Value    model.Figure `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "figure", res.Property)
	assert.Len(t, res.Value.Data, 2)
}

func TestCallback_Errors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"bad json", "/api/pages/polarization/callbacks", `{"output":`, http.StatusBadRequest, "Invalid request"},
		{"missing output", "/api/pages/polarization/callbacks", `{"inputs":{}}`, http.StatusBadRequest, "Invalid request"},
		{"unknown page", "/api/pages/nope/callbacks", `{"output":"x"}`, http.StatusNotFound, "unknown page"},
		{"unknown output", "/api/pages/polarization/callbacks", `{"output":"network-graph"}`, http.StatusNotFound, "unknown callback output"},
		{"unknown keyword", "/api/pages/relationships/callbacks",
			`{"output":"network-graph","inputs":{"keyword-dropdown":"elections"}}`, http.StatusNotFound, `\"elections\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, []byte(tt.body))
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func TestFigure(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/api/pages/polarization/figures/keywords_barplot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fig model.Figure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fig))
	assert.Equal(t, "bar", fig.Data[0].Type)

	w = do(r, http.MethodGet, "/api/pages/polarization/figures/keywords_barplot?format=png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = do(r, http.MethodGet, "/api/pages/relationships/figures/network-graph?keyword-dropdown=vote&format=png", nil)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = do(r, http.MethodGet, "/api/pages/relationships/figures/network-graph?keyword-dropdown=elections", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/pages/polarization/figures/faq_collapse", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageHTML(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/polarization", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Unveiling Polarization")
	assert.Contains(t, w.Body.String(), `<a class="nav-link active" href="/polarization">Polarization</a>`)
	assert.Contains(t, w.Body.String(), "/api/pages/polarization/callbacks")

	w = do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
