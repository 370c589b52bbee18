package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"DailyWrapped/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlobs struct {
	mu    sync.Mutex
	items map[string][]byte
	err   error
}

func (m *memBlobs) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.items == nil {
		m.items = make(map[string][]byte)
	}
	id := "blob-" + string(rune('a'+len(m.items)))
	m.items[id] = data
	return id, nil
}

type statusRecorder struct {
	mu       sync.Mutex
	statuses []string
}

func (s *statusRecorder) UpdateStatus(component, status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, component+":"+status)
}

func sampleStats() model.WrappedStats {
	return model.WrappedStats{
		TotalTokens:      125000,
		PromptTokens:     80000,
		CompletionTokens: 45000,
		TotalMessages:    340,
		Cost:             4.56,
		TopModels:        []model.ModelUsage{{Model: "gpt-4o", Tokens: 90000}},
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *ImagenClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewImagenClient(srv.URL, "test-key", "imagen-3.0-generate-002", 5*time.Second, 0)
}

func TestGenerateSuccessStoresImage(t *testing.T) {
	png := []byte("\x89PNG fake image")

	var got PredictRequest
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/imagen-3.0-generate-002:predict", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"predictions": []map[string]string{
				{"bytesBase64Encoded": base64.StdEncoding.EncodeToString(png), "mimeType": "image/png"},
			},
		})
	})

	blobs := &memBlobs{}
	health := &statusRecorder{}
	gen := NewGenerator(client, blobs, health)

	result := gen.GenerateWrappedImage(context.Background(), 5, sampleStats(), "2024-03-15")
	id, ok := result.StorageID()
	require.True(t, ok)
	assert.Equal(t, png, blobs.items[id])

	require.Len(t, got.Instances, 1)
	assert.Equal(t, 1, got.Parameters.SampleCount)
	assert.Equal(t, "9:16", got.Parameters.AspectRatio)
	assert.Equal(t, "dont_allow", got.Parameters.PersonGeneration)
	assert.Equal(t, "block_few", got.Parameters.SafetySetting)
	assert.Contains(t, got.Instances[0].Prompt, "vinyl record")
	assert.Contains(t, got.Instances[0].Prompt, "Total Tokens: 125,000")

	assert.Equal(t, []string{"imagen:healthy"}, health.statuses)
}

func TestGenerateFailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "empty predictions",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"predictions":[]}`))
			},
		},
		{
			name: "missing payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"predictions":[{"mimeType":"image/png"}]}`))
			},
		},
		{
			name: "bad base64",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"%%%"}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := &memBlobs{}
			health := &statusRecorder{}
			gen := NewGenerator(newTestServer(t, tt.handler), blobs, health)

			result := gen.GenerateWrappedImage(context.Background(), 0, sampleStats(), "2024-03-15")
			_, ok := result.StorageID()
			assert.False(t, ok)
			assert.Empty(t, blobs.items)
			assert.Equal(t, []string{"imagen:degraded"}, health.statuses)
		})
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewImagenClient(srv.URL, "", "imagen", time.Second, 0)
	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)

	gen := NewGenerator(client, &memBlobs{}, nil)
	_, ok := gen.GenerateWrappedImage(context.Background(), 1, sampleStats(), "2024-03-15").StorageID()
	assert.False(t, ok)

	_, ok = NewGenerator(nil, &memBlobs{}, nil).GenerateWrappedImage(context.Background(), 1, sampleStats(), "2024-03-15").StorageID()
	assert.False(t, ok)
}

func TestGenerateNetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gen := NewGenerator(NewImagenClient(url, "k", "imagen", time.Second, 0), &memBlobs{}, nil)
	_, ok := gen.GenerateWrappedImage(context.Background(), 2, sampleStats(), "2024-03-15").StorageID()
	assert.False(t, ok)
}

func TestGenerateBlobFailureIsUnavailable(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"aGVsbG8="}]}`))
	})

	gen := NewGenerator(client, &memBlobs{err: errors.New("disk full")}, nil)
	_, ok := gen.GenerateWrappedImage(context.Background(), 2, sampleStats(), "2024-03-15").StorageID()
	assert.False(t, ok)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(13, sampleStats(), "2024-03-13")

	assert.True(t, strings.HasPrefix(prompt, designPrompts[3]))
	assert.Contains(t, prompt, "- Total Tokens: 125,000")
	assert.Contains(t, prompt, "- Prompt Tokens: 80,000")
	assert.Contains(t, prompt, "- Completion Tokens: 45,000")
	assert.Contains(t, prompt, "- Messages: 340")
	assert.Contains(t, prompt, "- Cost: $4.56")
	assert.Contains(t, prompt, "- Date: 2024-03-13")
	assert.Contains(t, prompt, "- Top Model: gpt-4o")
	assert.Contains(t, prompt, `Include "OpenSync" branding at bottom.`)

	empty := BuildPrompt(0, model.WrappedStats{TotalMessages: 1}, "2024-03-10")
	assert.Contains(t, empty, "- Top Model: N/A")
}

func TestResult(t *testing.T) {
	id, ok := Available("abc").StorageID()
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = Unavailable().StorageID()
	assert.False(t, ok)
}
