package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tailorkit/pkg/utils/errutil"
	"github.com/secmon-lab/tailorkit/pkg/utils/logging"
)

func newLoggedContext(buf *bytes.Buffer) context.Context {
	logger := logging.New(buf, slog.LevelDebug, logging.FormatJSON, false)
	return logging.With(context.Background(), logger)
}

func TestHandle(t *testing.T) {
	t.Run("nil error is ignored", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, errutil.Handle(newLoggedContext(&buf), nil, "unused"))
		gt.Number(t, buf.Len()).Equal(0)
	})

	t.Run("goerr values are logged", func(t *testing.T) {
		var buf bytes.Buffer
		src := goerr.New("storage unavailable", goerr.V("key", "option_sets"))

		err := errutil.Handle(newLoggedContext(&buf), src, "failed to run app")
		gt.Bool(t, errors.Is(err, src)).True()
		gt.S(t, buf.String()).Contains("failed to run app")
		gt.S(t, buf.String()).Contains("option_sets")
	})

	t.Run("plain error is logged", func(t *testing.T) {
		var buf bytes.Buffer
		src := errors.New("flag provided but not defined")

		err := errutil.Handle(newLoggedContext(&buf), src, "failed to run app")
		gt.Value(t, err).Equal(src)
		gt.S(t, buf.String()).Contains("flag provided but not defined")
	})
}

func TestHandleHTTP(t *testing.T) {
	var buf bytes.Buffer
	w := httptest.NewRecorder()

	errutil.HandleHTTP(newLoggedContext(&buf), w, goerr.New("option set not found"), http.StatusNotFound)
	gt.Number(t, w.Code).Equal(http.StatusNotFound)
	gt.S(t, w.Body.String()).Contains("option set not found")
	gt.S(t, buf.String()).Contains(`"level":"WARN"`)
}
