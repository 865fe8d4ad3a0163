package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Invalid arguments", func(t *testing.T) {
		_, err := New("", "", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyPrefix)

		_, err = New("APP", "", nil)
		assert.ErrorIs(t, err, ErrNilWriter)
	})

	t.Run("Levels", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("SOLVER", "", &buf)
		require.NoError(t, err)

		l.Info("solved")
		l.Warning("slow")
		l.Error("failed")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], "[SOLVER] [INFO] solved"))
		assert.True(t, strings.HasSuffix(lines[1], "[SOLVER] [WARNING] slow"))
		assert.True(t, strings.HasSuffix(lines[2], "[SOLVER] [ERROR] failed"))
	})

	t.Run("Colored prefix", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "\033[32m", &buf)
		require.NoError(t, err)

		l.Info("up")
		assert.Contains(t, buf.String(), "\033[32m[APP]\033[0m [INFO] up")
	})
}
