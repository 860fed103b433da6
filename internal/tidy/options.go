package tidy

import (
	"errors"
	"fmt"
	"strings"
)

// Style selects how cells are separated.
type Style uint8

const (
	// StyleSpace separates cells with runs of spaces.
	StyleSpace Style = iota
	// StylePipe renders "| a | b |" rows.
	StylePipe
)

// ErrUnknownStyle is returned for a Style outside the closed set.
var ErrUnknownStyle = errors.New("tidy: unknown style")

func (s Style) String() string {
	switch s {
	case StyleSpace:
		return "space"
	case StylePipe:
		return "pipe"
	default:
		return fmt.Sprintf("Style(%d)", uint8(s))
	}
}

// ParseStyle accepts "space" and "pipe" in any case.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "space", "":
		return StyleSpace, nil
	case "pipe":
		return StylePipe, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownStyle, s)
	}
}

type Options struct {
	Style Style
	// SeparatorWidth is the number of spaces between cells in space style.
	SeparatorWidth int
	// ShortTestNameLength: shorter names keep the first row on the name line.
	ShortTestNameLength int
	// SettingNameWidth is the minimum width of setting and variable names.
	SettingNameWidth int
}

// DefaultOptions returns the built-in layout.
func DefaultOptions() Options {
	return Options{
		Style:               StyleSpace,
		SeparatorWidth:      4,
		ShortTestNameLength: 18,
		SettingNameWidth:    14,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SeparatorWidth <= 0 {
		o.SeparatorWidth = d.SeparatorWidth
	}
	if o.ShortTestNameLength <= 0 {
		o.ShortTestNameLength = d.ShortTestNameLength
	}
	if o.SettingNameWidth <= 0 {
		o.SettingNameWidth = d.SettingNameWidth
	}
	return o
}

// Fingerprint identifies the options in cache keys.
func (o Options) Fingerprint() string {
	o = o.withDefaults()
	return fmt.Sprintf("%s/%d/%d/%d", o.Style, o.SeparatorWidth, o.ShortTestNameLength, o.SettingNameWidth)
}
