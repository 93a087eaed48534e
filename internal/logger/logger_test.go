package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log %s failed: %v", path, err)
	}
	return string(content)
}

func TestOptionsDefaults(t *testing.T) {
	got := Options{Dir: "  ", MaxBackups: 2}.withDefaults()
	if got.Dir != "logs" || got.Filename != "gemdesk.log" {
		t.Fatalf("unexpected default path: %s/%s", got.Dir, got.Filename)
	}
	if got.MaxSizeMB != 100 || got.MaxBackups != 2 || got.MaxAgeDays != 30 {
		t.Fatalf("unexpected rotation defaults: %+v", got)
	}
}

func TestReleaseWritesJSONToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	log := New("release", Options{Dir: dir, Filename: "api.log"})
	log.Info("vendor_approved")
	_ = log.Sync()

	content := readLog(t, filepath.Join(dir, "api.log"))
	if !strings.Contains(content, `"message":"vendor_approved"`) {
		t.Fatalf("expected json entry, got=%s", content)
	}
}

func TestDebugSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	log.Info("debug_only")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}

func TestReleaseHonorsLevel(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Level: "warn", Dir: dir, Filename: "level.log"})
	log.Info("dropped_entry")
	log.Warn("kept_entry")
	_ = log.Sync()

	content := readLog(t, filepath.Join(dir, "level.log"))
	if strings.Contains(content, "dropped_entry") || !strings.Contains(content, "kept_entry") {
		t.Fatalf("level filter not applied, got=%s", content)
	}
}

func TestResolveLevel(t *testing.T) {
	cases := []struct {
		raw   string
		debug bool
		want  zapcore.Level
	}{
		{"", true, zapcore.DebugLevel},
		{"", false, zapcore.InfoLevel},
		{"nonsense", false, zapcore.InfoLevel},
		{"ERROR", false, zapcore.ErrorLevel},
		{" warn ", true, zapcore.WarnLevel},
	}
	for _, tc := range cases {
		if got := resolveLevel(tc.raw, tc.debug); got != tc.want {
			t.Fatalf("resolveLevel(%q, %v) want %s got %s", tc.raw, tc.debug, tc.want, got)
		}
	}
}

func TestZFallsBackBeforeInit(t *testing.T) {
	if Z() == nil || S() == nil {
		t.Fatalf("fallback logger should never be nil")
	}
	if SW("request_id", "r1") == nil {
		t.Fatalf("SW should return a logger")
	}
}
