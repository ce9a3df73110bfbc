package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("rendered", "format", "svg") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache miss", "format", "svg") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache miss", "format", "svg") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("cache write failed") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered gauge")

	out := buf.String()
	if !strings.Contains(out, "Rendered gauge (") || !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	c := &CLI{Logger: logger}
	if got := c.contextLogger(nil); got != logger {
		t.Error("contextLogger(nil) should return the CLI logger")
	}
}

func TestLoadConfigLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		verbose bool
		want    log.Level
	}{
		{"built-in", "", "", false, log.InfoLevel},
		{"file warn", "log_level = \"warn\"\n", "", false, log.WarnLevel},
		{"file debug", "log_level = \"debug\"\n", "", false, log.DebugLevel},
		{"env over file", "log_level = \"warn\"\n", "ERROR", false, log.ErrorLevel},
		{"verbose over file", "log_level = \"error\"\n", "", true, log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv("LOG_LEVEL", tt.env)

			c := New(io.Discard, log.InfoLevel)
			c.verbose = tt.verbose
			if tt.file != "" {
				c.configPath = filepath.Join(dir, "config.toml")
				if err := os.WriteFile(c.configPath, []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if err := c.loadConfig(); err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}
			if got := c.Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerboseFlagWinsOverConfig(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(dir, "quiet.toml")
	if err := os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, args := range [][]string{
		{"--config", path, "config", "path"},
		{"--config", path, "-v", "config", "path"},
	} {
		c := New(io.Discard, log.InfoLevel)
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}

		want := log.ErrorLevel
		if args[2] == "-v" {
			want = log.DebugLevel
		}
		if got := c.Logger.GetLevel(); got != want {
			t.Errorf("%v: level = %v, want %v", args, got, want)
		}
	}
}
