package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/monitor"
	"DailyWrapped/pkg/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	repo     *repository.Repository
	handlers *Handlers
	server   *Server
	mon      *monitor.Monitor
}

func newTestEnv(t *testing.T, ready ReadyFunc) *testEnv {
	t.Helper()
	repo := repository.NewRepository()
	cache, err := NewRenderCache(100)
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	mon := monitor.NewMonitor(nil)
	h := NewHandlers(repo, repo, mon, cache, ready)
	s := NewServer("0", time.Second, time.Second)
	s.SetupRoutes(h)
	return &testEnv{repo: repo, handlers: h, server: s, mon: mon}
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func sampleRecord(userID string) *model.WrappedRecord {
	return &model.WrappedRecord{
		UserID:      userID,
		Date:        "2024-03-15",
		DesignIndex: 5,
		Stats: model.WrappedStats{
			TotalTokens:      125000,
			PromptTokens:     80000,
			CompletionTokens: 45000,
			TotalMessages:    42,
			Cost:             4.56,
			TopModels:        []model.ModelUsage{{Model: "claude-sonnet-4", Tokens: 125000}},
		},
		CreatedAt: time.Now(),
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	env := newTestEnv(t, nil)
	env.mon.UpdateStatus(monitor.ComponentImagen, monitor.StatusDegraded, "timeout")

	w := env.get("/ready")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status     string                 `json:"status"`
		Overall    string                 `json:"overall"`
		Components []monitor.HealthStatus `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, monitor.StatusDegraded, body.Overall)
	require.Len(t, body.Components, 1)

	notReady := newTestEnv(t, func(ctx context.Context) error { return ErrNotReady })
	assert.Equal(t, http.StatusServiceUnavailable, notReady.get("/ready").Code)
}

func TestGetLatestWrapped(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get("/api/v1/users/nobody/wrapped")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())

	rec := sampleRecord("u1")
	require.NoError(t, env.repo.CreateWrappedRecord(context.Background(), rec))

	w = env.get("/api/v1/users/u1/wrapped")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.WrappedRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, rec.ID, body.Data.ID)
	assert.Equal(t, 5, body.Data.DesignIndex)
	assert.Equal(t, int64(125000), body.Data.Stats.TotalTokens)
}

func TestViewWrappedNoRecord(t *testing.T) {
	env := newTestEnv(t, nil)
	w := env.get("/api/v1/users/nobody/wrapped/view")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestViewWrappedFallbackHTML(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.repo.CreateWrappedRecord(context.Background(), sampleRecord("u1")))

	w := env.get("/api/v1/users/u1/wrapped/view")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `data-design="5"`)
	assert.Contains(t, body, "125.0K")
	assert.Contains(t, body, "$4.56")
}

func TestViewWrappedImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	id, err := env.repo.Store(ctx, []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	rec := sampleRecord("u1")
	rec.ImageStorageID = &id
	require.NoError(t, env.repo.CreateWrappedRecord(ctx, rec))

	w := env.get("/api/v1/users/u1/wrapped/view")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
}

func TestViewWrappedMissingBlobFallsBack(t *testing.T) {
	env := newTestEnv(t, nil)
	missing := "00000000-0000-0000-0000-000000000000"
	rec := sampleRecord("u1")
	rec.ImageStorageID = &missing
	require.NoError(t, env.repo.CreateWrappedRecord(context.Background(), rec))

	w := env.get("/api/v1/users/u1/wrapped/view")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestGetImage(t *testing.T) {
	env := newTestEnv(t, nil)
	id, err := env.repo.Store(context.Background(), []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	w := env.get("/api/v1/wrapped/images/" + id)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, env.get("/api/v1/wrapped/images/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/api/v1/wrapped/images/00000000-0000-0000-0000-000000000000").Code)
}

func TestPreviewTemplate(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.get("/api/v1/wrapped/templates/13?date=2024-03-15")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-design="3"`)
	assert.True(t, strings.Contains(body, "2024"))

	assert.Equal(t, http.StatusBadRequest, env.get("/api/v1/wrapped/templates/abc").Code)
}

func TestPrewarm(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	rec := sampleRecord("u1")
	require.NoError(t, env.repo.CreateWrappedRecord(ctx, rec))

	event := model.NewWrappedEvent(rec)
	require.NoError(t, env.handlers.Prewarm(ctx, event))
	assert.True(t, env.handlers.Cached(rec.ID))

	// 过时事件不渲染
	stale := event
	stale.RecordID = "other"
	require.NoError(t, env.handlers.Prewarm(ctx, stale))
	assert.False(t, env.handlers.Cached("other"))

	// 有图片的记录不需要预热
	withImage := event
	withImage.RecordID = "img-record"
	withImage.HasImage = true
	require.NoError(t, env.handlers.Prewarm(ctx, withImage))
	assert.False(t, env.handlers.Cached("img-record"))
}

type failingRecords struct{}

func (failingRecords) GetLatestWrapped(ctx context.Context, userID string) (*model.WrappedRecord, error) {
	return nil, errors.New("db down")
}

func TestStoreErrors(t *testing.T) {
	h := NewHandlers(failingRecords{}, repository.NewRepository(), nil, nil, nil)
	s := NewServer("0", time.Second, time.Second)
	s.SetupRoutes(h)

	for _, path := range []string{"/api/v1/users/u1/wrapped", "/api/v1/users/u1/wrapped/view"} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}

	assert.Error(t, h.Prewarm(context.Background(), model.WrappedEvent{RecordID: "r", UserID: "u1"}))
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s := NewServer("0", time.Second, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
