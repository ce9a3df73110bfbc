package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringgauge/pkg/cache"
)

func TestCacheDirFollowsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if dir, _ = cacheDir(); dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestArtifactCacheDir(t *testing.T) {
	tests := []struct {
		name string
		file string // config file body; %s is replaced with the temp dir
		env  string
		want string // relative to the temp dir
	}{
		{"xdg default", "", "", "cache/" + appName},
		{"config file", "[cache]\ndir = \"%s/from-file\"\n", "", "from-file"},
		{"env over file", "[cache]\ndir = \"%s/from-file\"\n", "from-env", "from-env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			env := ""
			if tt.env != "" {
				env = filepath.Join(dir, tt.env)
			}
			t.Setenv("CACHE_DIR", env)

			c := New(io.Discard, log.InfoLevel)
			if tt.file != "" {
				c.configPath = filepath.Join(dir, "config.toml")
				body := strings.ReplaceAll(tt.file, "%s", filepath.ToSlash(dir))
				if err := os.WriteFile(c.configPath, []byte(body), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if err := c.loadConfig(); err != nil {
				t.Fatalf("loadConfig() error: %v", err)
			}

			got, err := c.artifactCacheDir()
			if err != nil {
				t.Fatalf("artifactCacheDir() error: %v", err)
			}
			if want := filepath.Join(dir, filepath.FromSlash(tt.want)); got != want {
				t.Errorf("artifactCacheDir() = %q, want %q", got, want)
			}
		})
	}
}

func TestNewCacheSelection(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CACHE_DIR", "")
	c := New(io.Discard, log.InfoLevel)
	if err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}

	backend, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if cache.IsNull(backend) {
		t.Fatal("file cache expected by default")
	}
	if err := backend.Set(context.Background(), "artifact:svg", []byte("<svg/>"), 0); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(filepath.Join(dir, "cache", appName)); len(entries) == 0 {
		t.Error("file cache should write under the XDG cache dir")
	}

	if backend, _ := c.newCache(true); !cache.IsNull(backend) {
		t.Error("--no-cache should select the null cache")
	}
	c.Config.Cache.Disabled = true
	if backend, _ := c.newCache(false); !cache.IsNull(backend) {
		t.Error("cache.disabled should select the null cache")
	}
}
