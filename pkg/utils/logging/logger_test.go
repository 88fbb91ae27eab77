package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mkino/larder/pkg/utils/logging"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("warn", &buf)

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	gt.False(t, strings.Contains(out, "should be dropped"))
	gt.True(t, strings.Contains(out, "should be kept"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("debug", &buf)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Debug("via context")

	gt.True(t, strings.Contains(buf.String(), "via context"))
}

func TestFromContextFallback(t *testing.T) {
	logger := logging.From(context.Background())
	gt.V(t, logger).NotNil()
}
