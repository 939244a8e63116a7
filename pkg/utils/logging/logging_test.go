package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
)

func TestFrom(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns the logger stored in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
		ctx := logging.With(context.Background(), logger)
		gt.Value(t, logging.From(ctx)).Equal(logger)
	})
}

func TestNew_JSONRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON, false)

	type credential struct {
		Path  string
		Token string `masq:"secret"`
	}
	logger.Info("configured",
		"secret_token", "s3cr3t",
		"cred", credential{Path: "/etc/key.json", Token: "t0ken"},
	)

	gt.S(t, buf.String()).NotContains("s3cr3t")
	gt.S(t, buf.String()).NotContains("t0ken")
	gt.S(t, buf.String()).Contains("/etc/key.json")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record)).Required()
	gt.Value(t, record["msg"]).Equal("configured")
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatConsole, false)

	logger.Info("hidden")
	gt.Number(t, buf.Len()).Equal(0)

	logger.Warn("shown")
	gt.S(t, buf.String()).Contains("shown")
}
