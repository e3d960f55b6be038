package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	restore := SetOutput(&stdout, &stderr)
	t.Cleanup(func() {
		restore()
		color.NoColor = prev
	})
	return &stdout, &stderr
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "This is a test error", nil)
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "This is a test error")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		_, stderr := capture(t)
		err := Error("Test Error", "Explanation", []string{"First option", "Second option"})
		require.Equal(t, "Test Error", err.Error())
		assert.Contains(t, stderr.String(), "  2. Second option")
	})
}

func TestFieldsAreSorted(t *testing.T) {
	stdout, _ := capture(t)
	Fields(map[string]any{"b": 2, "a": 1})
	out := stdout.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("a ")), bytes.Index([]byte(out), []byte("b ")))
	assert.Contains(t, out, " 1\n")
}

func TestSuccess(t *testing.T) {
	stdout, _ := capture(t)
	Success("done %d\n", 3)
	assert.Equal(t, "✓ done 3\n", stdout.String())
}
