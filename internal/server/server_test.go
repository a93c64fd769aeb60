package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/service"
	"compass/internal/store"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewMemory(), logger)
	return New(svc, logger).SetupRouter()
}

func do(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCreateOutcome_SetsETag(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"Grow activation"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	tok := w.Header().Get("ETag")
	assert.True(t, strings.HasPrefix(tok, `W/"`), "weak validator, got %q", tok)

	body := decodeBody(t, w)
	id := body["id"].(string)

	got := do(t, r, http.MethodGet, "/api/v1/outcomes/"+id, "", nil)
	assert.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, tok, got.Header().Get("ETag"))
}

func TestUpdateOutcome_StaleIfMatch412(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"v1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)
	tok := w.Header().Get("ETag")

	// First update with the fresh token succeeds and rotates it.
	ok := do(t, r, http.MethodPatch, "/api/v1/outcomes/"+id, `{"name":"v2"}`, map[string]string{"If-Match": tok})
	require.Equal(t, http.StatusOK, ok.Code)
	require.NotEqual(t, tok, ok.Header().Get("ETag"))

	// Replaying the old one fails.
	stale := do(t, r, http.MethodPatch, "/api/v1/outcomes/"+id, `{"name":"v3"}`, map[string]string{"If-Match": tok})
	assert.Equal(t, http.StatusPreconditionFailed, stale.Code)

	final := do(t, r, http.MethodGet, "/api/v1/outcomes/"+id, "", nil)
	assert.Equal(t, "v2", decodeBody(t, final)["name"])
}

func TestCreateOutcome_UnknownField422(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"x","surprise":true}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	errObj := body["error"].(map[string]any)
	issues := errObj["issues"].([]any)
	require.Len(t, issues, 1)
	assert.Equal(t, "surprise", issues[0].(map[string]any)["path"])
}

func TestGetOutcome_NotFound(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/api/v1/outcomes/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchEdges_ConflictBodyListsPairs(t *testing.T) {
	r := newTestRouter()

	opp := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/opportunities", `{"description":"op"}`, nil))["id"].(string)
	sol := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/solutions", `{"title":"s"}`, nil))["id"].(string)

	first := do(t, r, http.MethodPost, "/api/v1/edges/opportunity-solution",
		fmt.Sprintf(`{"opportunityId":%q,"solutionId":%q}`, opp, sol), nil)
	require.Equal(t, http.StatusCreated, first.Code)

	batch := do(t, r, http.MethodPost, "/api/v1/edges/opportunity-solution/batch",
		fmt.Sprintf(`{"items":[{"opportunityId":%q,"solutionId":%q}]}`, opp, sol), nil)
	require.Equal(t, http.StatusConflict, batch.Code)

	errObj := decodeBody(t, batch)["error"].(map[string]any)
	conflicts := errObj["conflicts"].([]any)
	require.Len(t, conflicts, 1)
	pair := conflicts[0].(map[string]any)
	assert.Equal(t, opp, pair["opportunityId"])
	assert.Equal(t, sol, pair["solutionId"])
}

func TestHypothesis_FlatTargetWireFormat(t *testing.T) {
	r := newTestRouter()

	out := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"o"}`, nil))["id"].(string)

	w := do(t, r, http.MethodPost, "/api/v1/hypotheses",
		fmt.Sprintf(`{"statement":"s","targetType":"NODE","outcomeId":%q}`, out), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "NODE", body["targetType"])
	assert.Equal(t, out, body["outcomeId"])
	assert.Nil(t, body["solutionId"], "unused target fields stay null")
	_, hasUnion := body["target"]
	assert.False(t, hasUnion, "internal representation never leaks")
}

func TestHypothesis_MisalignedTarget422(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/v1/hypotheses",
		`{"statement":"s","targetType":"OUTCOME_OPPORTUNITY","solutionId":"x"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTreeEndpoint(t *testing.T) {
	r := newTestRouter()

	out := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"o"}`, nil))["id"].(string)
	opp := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/opportunities", `{"description":"op"}`, nil))["id"].(string)
	edge := do(t, r, http.MethodPost, "/api/v1/edges/outcome-opportunity",
		fmt.Sprintf(`{"outcomeId":%q,"opportunityId":%q,"confidence":0.4}`, out, opp), nil)
	require.Equal(t, http.StatusCreated, edge.Code)

	w := do(t, r, http.MethodGet, "/api/v1/trees/ost", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	totals := body["meta"].(map[string]any)["totals"].(map[string]any)
	assert.Equal(t, float64(1), totals["outcomes"])
	assert.Equal(t, float64(1), totals["opportunities"])

	data := body["data"].([]any)
	branch := data[0].(map[string]any)["opportunities"].([]any)[0].(map[string]any)
	assert.Equal(t, 0.4, branch["confidence"])
}

func TestListOutcomes_TakeOutOfRange422(t *testing.T) {
	r := newTestRouter()
	w := do(t, r, http.MethodGet, "/api/v1/outcomes?take=500", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteOutcome_Deprecates(t *testing.T) {
	r := newTestRouter()

	id := decodeBody(t, do(t, r, http.MethodPost, "/api/v1/outcomes", `{"name":"o"}`, nil))["id"].(string)

	w := do(t, r, http.MethodDelete, "/api/v1/outcomes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deprecated", decodeBody(t, w)["status"])

	// Gone from the default listing, still fetchable by id.
	list := decodeBody(t, do(t, r, http.MethodGet, "/api/v1/outcomes", "", nil))
	assert.Equal(t, float64(0), list["meta"].(map[string]any)["count"])
	got := do(t, r, http.MethodGet, "/api/v1/outcomes/"+id, "", nil)
	assert.Equal(t, http.StatusOK, got.Code)
}
