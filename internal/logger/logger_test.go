package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"loud", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriters("warn", &buf, FileConfig{})
	log.Info("quiet")
	log.Warn("loud", zap.String("part", "arm"))
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "arm") {
		t.Errorf("warning missing: %q", out)
	}
}

func TestFileCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banana.log")
	log := NewWithWriters("debug", nil, DefaultFileConfig(path))
	log.Named("banana").Debug("frame", zap.Int("parts", 5))
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "banana") || !strings.Contains(out, "frame") {
		t.Errorf("file log = %q", out)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("x.log")
	if cfg.Path != "x.log" || cfg.MaxSizeMB <= 0 || cfg.MaxBackups <= 0 || !cfg.Compress {
		t.Errorf("DefaultFileConfig = %+v", cfg)
	}
}
