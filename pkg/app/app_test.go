package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"DailyWrapped/pkg/config"
	"DailyWrapped/pkg/model"
	"DailyWrapped/pkg/monitor"
	"DailyWrapped/pkg/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database.Driver = "memory"
	cfg.Blob.Driver = "memory"
	cfg.Imagen.APIKey = ""
	cfg.NATS.Enabled = false
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewMemory(t *testing.T) {
	a, err := New(memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NoError(t, a.Ready(context.Background()))
	assert.Nil(t, a.NATS)
	assert.Len(t, a.Monitor.GetAllStatus(), 3)
}

func TestServiceWithoutAPIKeyFallsBack(t *testing.T) {
	ctx := context.Background()
	a, err := New(memoryConfig(t))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Usage.SaveUsage(ctx, &model.UsageMessage{
		UserID: "u1", Model: "gpt-4o", Provider: "openai", PromptTokens: 100, CompletionTokens: 50,
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	report, err := a.Service().GenerateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Generated)

	rec, err := a.Records.GetLatestWrapped(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.HasImage())
	assert.Equal(t, monitor.StatusUnhealthy, a.Monitor.GetStatus(monitor.ComponentImagen).Status)
}

func TestNewSQLiteBlobs(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Blob.Driver = "sqlite"
	cfg.Blob.SQLitePath = filepath.Join(t.TempDir(), "images.db")

	a, err := New(cfg)
	require.NoError(t, err)

	_, ok := a.Images.(*sqlite.BlobStore)
	assert.True(t, ok)

	id, err := a.Images.Store(context.Background(), []byte("x"), "image/png")
	require.NoError(t, err)
	img, err := a.Images.GetImage(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, img)

	a.Close()
	_, err = a.Images.Store(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, sqlite.ErrStorageClosed)
}

func TestReadyWhenNATSMissing(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.NATS.Enabled = true
	cfg.NATS.URL = "nats://127.0.0.1:1"

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.NATS)
	assert.Error(t, a.Ready(context.Background()))
}
