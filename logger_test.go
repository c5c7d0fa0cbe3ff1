package vecdb

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		log  func(l *Logger)
		want []string
	}{
		{
			name: "InsertOK",
			log:  func(l *Logger) { l.LogInsert(ctx, "a", 3, nil) },
			want: []string{"level=DEBUG", `msg="insert completed"`, "id=a", "dimension=3"},
		},
		{
			name: "InsertFailed",
			log:  func(l *Logger) { l.LogInsert(ctx, "a", 3, errors.New("boom")) },
			want: []string{"level=ERROR", `msg="insert failed"`, "error=boom"},
		},
		{
			name: "SearchOK",
			log:  func(l *Logger) { l.LogSearch(ctx, 5, 2, nil) },
			want: []string{"level=DEBUG", "k=5", "results=2"},
		},
		{
			name: "GetMissed",
			log:  func(l *Logger) { l.LogGet(ctx, "x", newNotFound("x")) },
			want: []string{"level=DEBUG", `msg="get missed"`, "id=x"},
		},
		{
			name: "DeleteFailed",
			log:  func(l *Logger) { l.LogDelete(ctx, "x", &ErrDatabase{Op: "delete"}) },
			want: []string{"level=ERROR", `msg="delete failed"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newBufferLogger(&buf))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestLoggerWithDimension(t *testing.T) {
	var buf bytes.Buffer
	newBufferLogger(&buf).WithDimension(768).Info("ready")
	assert.Contains(t, buf.String(), "dimension=768")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
