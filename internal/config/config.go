// Package config loads the tidy configuration file.
//
// Файл ищется вверх от стартового каталога: tabtidy.toml, .tabtidy.toml,
// .tabtidy.yaml, .tabtidy.yml. Флаги CLI перекрывают значения из файла.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"tabtidy/internal/tidy"
)

var (
	// ErrBadStyle reports a style other than "space" or "pipe".
	ErrBadStyle = errors.New("config: bad style")
	// ErrUnknownKey reports keys the configuration does not define.
	ErrUnknownKey = errors.New("config: unknown key")
	// ErrBadValue reports an out-of-range number.
	ErrBadValue = errors.New("config: bad value")
)

// FileNames lists the recognised configuration files in lookup order.
var FileNames = []string{"tabtidy.toml", ".tabtidy.toml", ".tabtidy.yaml", ".tabtidy.yml"}

type Config struct {
	Style               string `toml:"style" yaml:"style"`
	SeparatorWidth      int    `toml:"separator_width" yaml:"separator_width"`
	ShortTestNameLength int    `toml:"short_test_name_length" yaml:"short_test_name_length"`
	SettingNameWidth    int    `toml:"setting_name_width" yaml:"setting_name_width"`
	// Jobs limits parallel files; 0 means GOMAXPROCS.
	Jobs  int  `toml:"jobs" yaml:"jobs"`
	Cache bool `toml:"cache" yaml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := tidy.DefaultOptions()
	return Config{
		Style:               opts.Style.String(),
		SeparatorWidth:      opts.SeparatorWidth,
		ShortTestNameLength: opts.ShortTestNameLength,
		SettingNameWidth:    opts.SettingNameWidth,
		Cache:               true,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := tidy.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("%w %q: want space or pipe", ErrBadStyle, c.Style)
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"separator_width", c.SeparatorWidth},
		{"short_test_name_length", c.ShortTestNameLength},
		{"setting_name_width", c.SettingNameWidth},
	} {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrBadValue, f.name, f.v)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrBadValue, c.Jobs)
	}
	return nil
}

// TidyOptions converts the configuration into pipeline options.
func (c Config) TidyOptions() (tidy.Options, error) {
	if err := c.Validate(); err != nil {
		return tidy.Options{}, err
	}
	style, err := tidy.ParseStyle(c.Style)
	if err != nil {
		return tidy.Options{}, err
	}
	return tidy.Options{
		Style:               style,
		SeparatorWidth:      c.SeparatorWidth,
		ShortTestNameLength: c.ShortTestNameLength,
		SettingNameWidth:    c.SettingNameWidth,
	}, nil
}

// EffectiveJobs resolves Jobs == 0 to GOMAXPROCS.
func (c Config) EffectiveJobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func normalizeStyle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
