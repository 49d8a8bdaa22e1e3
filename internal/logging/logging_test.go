package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileAndUIFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "boxing.log")
	l := New(DefaultOptions(path))

	l.Logger.Printf("Sequencer: Workout started")
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Sequencer: Workout started")

	require.NotNil(t, l.Lines)
	select {
	case line := <-l.Lines:
		assert.Contains(t, line, "Sequencer: Workout started")
	default:
		t.Fatal("expected a UI log line")
	}
}

func TestNew_Disabled(t *testing.T) {
	l := New(Options{})
	assert.Nil(t, l.Lines)
	assert.NotPanics(t, func() { l.Logger.Printf("nothing to see") })
	assert.NoError(t, l.Close())
}

func TestLineWriter_SplitsAndDropsWhenFull(t *testing.T) {
	lines := make(chan string, 2)
	w := &lineWriter{lines: lines}

	n, err := w.Write([]byte("one\ntwo\nthree\n"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	assert.Equal(t, "one", <-lines)
	assert.Equal(t, "two", <-lines)
	assert.Empty(t, lines, "third line dropped while full")
}
