package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warning", "error", ""} {
		_, err := logger.ParseLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := logger.ParseLevel("verbose")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, "info")
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.With("resolver").Info().Str("feature", "FEATURE_KEY_SWAP").Msg("resolved")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "resolved", line["message"])
	assert.Equal(t, "resolver", line["component"])
	assert.Equal(t, "FEATURE_KEY_SWAP", line["feature"])
}

func TestErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(&buf, "error")
	require.NoError(t, err)

	log.ErrorWithCode(errors.New().New(errors.ErrPermissionDenied)).Send()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "permission_denied", line["error_code"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Warn().Msg("discarded")
	})
}
