package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_None(t *testing.T) {
	tracer, shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_StdoutWritesSpansOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	tracer, shutdown, err := Setup(context.Background(), Config{Exporter: ExporterStdout, Writer: &buf})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "Sound.start")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, buf.String(), "Sound.start")
	require.Contains(t, buf.String(), ServiceName)
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, _, err := Setup(context.Background(), Config{Exporter: "zipkin"})
	require.ErrorContains(t, err, "zipkin")
}
