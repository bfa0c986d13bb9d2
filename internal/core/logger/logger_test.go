package logger

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToWriterTrimsNewline(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := ToWriter(zap.New(core), zapcore.WarnLevel)

	if _, err := w.Write([]byte("slow sql 250ms\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "slow sql 250ms" || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestToWriterRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ToWriter(zap.New(core), zapcore.DebugLevel)
	_, _ = w.Write([]byte("noise"))
	if logs.Len() != 0 {
		t.Fatalf("debug line should be dropped")
	}
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	undo := RedirectStdLog(zap.New(core), zapcore.InfoLevel)
	log.Print("[db] final mysql dsn = root:****@tcp(db:3306)/news")
	undo()

	if logs.Len() != 1 || !strings.Contains(logs.All()[0].Message, "final mysql dsn") {
		t.Fatalf("std log not redirected: %+v", logs.All())
	}
}

func TestNewWithRotateWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup := NewWithRotate("info", true, FileRotate{Filename: file, MaxSizeMB: 1})
	l.Info("fallback served", zap.String("resource", "news"))
	cleanup()

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"resource":"news"`) {
		t.Fatalf("unexpected log content %s", b)
	}
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	if got := FromContext(context.Background(), base); got != base {
		t.Fatalf("expected default logger without ctx value")
	}
	ctx := WithContext(context.Background(), base.With(zap.String("rid", "r-1")))
	FromContext(ctx, zap.NewNop()).Info("news created")

	entries := logs.FilterMessage("news created").All()
	if len(entries) != 1 || entries[0].ContextMap()["rid"] != "r-1" {
		t.Fatalf("rid not carried: %+v", entries)
	}
}
