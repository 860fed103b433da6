package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tabtidy/internal/config"
	"tabtidy/internal/tidy"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "tabtidy.toml", "style = \"PIPE\"\nseparator_width = 2\njobs = 3\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.Default()
	want.Style = "pipe"
	want.SeparatorWidth = 2
	want.Jobs = 3
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	opts, err := cfg.TidyOptions()
	if err != nil {
		t.Fatalf("TidyOptions: %v", err)
	}
	if opts.Style != tidy.StylePipe || opts.SeparatorWidth != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, ".tabtidy.yml", "short_test_name_length: 10\ncache: false\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ShortTestNameLength != 10 || cfg.Cache || cfg.Style != "space" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(write(t, dir, ".tabtidy.yaml", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"tabtidy.toml", ".tabtidy.yaml"} {
		content := "bogus = 1\n"
		if filepath.Ext(name) == ".yaml" {
			content = "bogus: 1\n"
		}
		_, err := config.Load(write(t, dir, name, content))
		if !errors.Is(err, config.ErrUnknownKey) {
			t.Errorf("%s: expected ErrUnknownKey, got %v", name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.Config)
		want error
	}{
		{"bad style", func(c *config.Config) { c.Style = "tabs" }, config.ErrBadStyle},
		{"zero width", func(c *config.Config) { c.SeparatorWidth = 0 }, config.ErrBadValue},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, config.ErrBadValue},
		{"defaults", func(*config.Config) {}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.edit(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := write(t, root, ".tabtidy.toml", "jobs = 1\n")

	got, ok, err := config.Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}

	cfg, path, err := config.Discover(nested)
	if err != nil || path != want || cfg.Jobs != 1 {
		t.Fatalf("Discover = %+v, %q, %v", cfg, path, err)
	}
}

func TestEffectiveJobs(t *testing.T) {
	cfg := config.Default()
	if cfg.EffectiveJobs() < 1 {
		t.Fatalf("default jobs must resolve to at least one")
	}
	cfg.Jobs = 2
	if cfg.EffectiveJobs() != 2 {
		t.Fatalf("explicit jobs must win")
	}
}
