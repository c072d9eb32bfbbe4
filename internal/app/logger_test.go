package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/lifegrid/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("json format at debug level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(config.Log{Level: "debug", Format: "json"}, buf)
		logger.Debug("hello")

		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	})

	t.Run("level filters lower records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(config.Log{Level: "warn", Format: "text"}, buf)
		logger.Info("quiet")

		assert.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger(config.Log{Level: "chatty", Format: "text"}, buf)
		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
