package tracing

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/vgrid/internal/grid"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNewProvider_RejectsUnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
}

func TestFileExporter_WritesJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traces", "out.jsonl")

	p, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    path,
		SampleRate:  1.0,
		ServiceName: "vgrid-test",
	})
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "test.span",
		trace.WithAttributes(attribute.Int64("grid.pass", 7)))
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var record SpanRecord
	require.NoError(t, json.Unmarshal(firstLine(data), &record))
	require.Equal(t, "test.span", record.Name)
	require.EqualValues(t, 7, record.Attributes["grid.pass"])
	require.NotEmpty(t, record.TraceID)
}

func TestRenderObserver_RecordsRenderEndSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	p, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    path,
		SampleRate:  1.0,
		ServiceName: "vgrid-test",
	})
	require.NoError(t, err)

	g, err := grid.New(grid.Options{RowCount: 10, ColCount: 2, RowHeight: 1, ColWidth: 4})
	require.NoError(t, err)
	require.NoError(t, g.Init(20, 5))
	defer g.Destroy()

	stop := RenderObserver(context.Background(), p, g)
	defer stop()

	require.NoError(t, g.Render())

	// The observer consumes broker events on its own goroutine; poll
	// until the completed pass has been exported.
	require.Eventually(t, func() bool {
		_ = p.ForceFlush(context.Background())
		data, err := os.ReadFile(path)
		return err == nil && bytes.Contains(data, []byte(SpanRenderPass))
	}, 2*time.Second, 25*time.Millisecond)

	require.NoError(t, p.Shutdown(context.Background()))
}

func firstLine(data []byte) []byte {
	for i, b := range data {
		if b == '\n' {
			return data[:i]
		}
	}
	return data
}
