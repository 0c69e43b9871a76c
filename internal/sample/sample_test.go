package sample

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, opts Options) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, opts))

	var lines []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestGenerateSortedAndInRange(t *testing.T) {
	opts := Options{
		Start:   time.Date(2024, 12, 1, 15, 30, 0, 0, time.UTC),
		Days:    3,
		Entries: 500,
		Seed:    7,
	}
	lines := generate(t, opts)
	require.Len(t, lines, 500)

	for i := 1; i < len(lines); i++ {
		assert.LessOrEqual(t, lines[i-1][:19], lines[i][:19], "line %d out of order", i)
	}
	for _, l := range lines {
		date := l[:10]
		assert.Contains(t, []string{"2024-12-01", "2024-12-02", "2024-12-03"}, date)
		assert.Contains(t, l, "request_id=")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Days: 10, Entries: 50, Seed: 3}
	assert.Equal(t, generate(t, opts), generate(t, opts))

	opts2 := opts
	opts2.Seed = 4
	assert.NotEqual(t, generate(t, opts), generate(t, opts2))
}

func TestGenerateValidation(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Generate(&buf, Options{Days: 0, Entries: 10}))
	assert.Error(t, Generate(&buf, Options{Days: 1, Entries: -1}))
	assert.NoError(t, Generate(&buf, Options{Days: 1, Entries: 0}))
	assert.Empty(t, buf.String())
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, GenerateFile(path, Options{Start: time.Now(), Days: 2, Entries: 20, Seed: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(data), "\n"))
}
