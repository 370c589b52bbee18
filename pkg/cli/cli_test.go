package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func useMemoryStores(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("BLOB_DRIVER", "memory")
}

func TestRenderToStdout(t *testing.T) {
	out, err := run(t, "render", "--design", "15", "--tokens", "125000", "--messages", "42",
		"--cost", "4.56", "--model", "claude-sonnet-4", "--date", "2024-03-15")
	require.NoError(t, err)

	assert.Contains(t, out, `data-design="5"`)
	assert.Contains(t, out, "125.0K")
	assert.Contains(t, out, "$4.56")
	assert.Contains(t, out, "claude-sonnet-4")
}

func TestRenderWithoutModelShowsPlaceholder(t *testing.T) {
	out, err := run(t, "render", "--design", "0", "--tokens", "10", "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "N/A")
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrapped.html")
	_, err := run(t, "render", "--design=-7", "--date", "2024-03-15", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `data-design="3"`)
}

func TestGenerateRequiresUser(t *testing.T) {
	_, err := run(t, "generate")
	assert.Error(t, err)
}

func TestGenerateWithMemoryStores(t *testing.T) {
	useMemoryStores(t)

	out, err := run(t, "generate", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "u1: no_activity")
}

func TestGenerateAllAndCleanup(t *testing.T) {
	useMemoryStores(t)

	out, err := run(t, "generate-all")
	require.NoError(t, err)
	assert.Contains(t, out, "用户: 0")

	out, err = run(t, "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "已删除 0 条记录")
}
