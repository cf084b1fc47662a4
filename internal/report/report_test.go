package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fs-api/internal/check"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStateResult() check.Result {
	return check.Result{Matches: []check.Match{
		{Code: "NI", Name: "Niedersachsen", Coverage: 0.8},
		{Code: "HB", Name: "Bremen", Coverage: 0.2},
	}}
}

func TestRenderShell(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, twoStateResult(), true)
	assert.Equal(t, "FEDERAL_STATE=Niedersachsen,Bremen\nFS=NI,HB\n", buf.String())
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, twoStateResult(), false)
	assert.Equal(t, "FEDERAL_STATE: Niedersachsen,Bremen\nFS: NI,HB\n", buf.String())
}

func TestRenderSentinel(t *testing.T) {
	for _, shell := range []bool{false, true} {
		var buf bytes.Buffer
		Render(&buf, check.Result{}, shell)
		assert.Equal(t, "Not in Germany\n", buf.String())
	}
}

func TestWriteFileWithMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	assert.True(t, WriteFile(path, twoStateResult()))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FEDERAL_STATE=Niedersachsen,Bremen\nFS=NI,HB\n", string(b))
}

func TestWriteFileSkippedWithoutMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	assert.False(t, WriteFile(path, check.Result{}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileSkippedWithoutParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	assert.False(t, WriteFile(path, twoStateResult()))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileSkippedOnUnwritableTarget(t *testing.T) {
	// a directory at the target path makes the write itself fail
	path := filepath.Join(t.TempDir(), "isadir")
	require.NoError(t, os.Mkdir(path, 0o755))
	assert.False(t, WriteFile(path, twoStateResult()))
}

func TestWriteFileEmptyPath(t *testing.T) {
	assert.False(t, WriteFile("", twoStateResult()))
}
