package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"tabtidy/internal/source"
)

// RenderOpts controls text rendering.
type RenderOpts struct {
	Color bool
	Notes bool
}

// Render writes one line per diagnostic: path:line:col: SEVERITY ID message.
// Notes follow indented when opts.Notes is set.
func Render(w io.Writer, bag *Bag, fs *source.FileSet, opts RenderOpts) error {
	if bag == nil || fs == nil {
		return nil
	}
	sevColor := map[Severity]*color.Color{
		SevError:   color.New(color.FgRed, color.Bold),
		SevWarning: color.New(color.FgYellow, color.Bold),
		SevInfo:    color.New(color.FgCyan),
	}
	pathColor := color.New(color.Bold)
	for _, c := range sevColor {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	if opts.Color {
		pathColor.EnableColor()
	} else {
		pathColor.DisableColor()
	}

	for _, d := range bag.Items() {
		path := fs.Get(d.Primary.File).Path
		start, _ := fs.Resolve(d.Primary)
		sev := sevColor[d.Severity]
		if sev == nil {
			sev = color.New()
		}
		_, err := fmt.Fprintf(w, "%s: %s %s %s\n",
			pathColor.Sprintf("%s:%d:%d", path, start.Line, start.Col),
			sev.Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message,
		)
		if err != nil {
			return err
		}
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "    note: %s\n", n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}
