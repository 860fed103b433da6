// Package diagfmt renders lexer output and diagnostics for the lex command.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAsIs prints the path the file was loaded with.
	PathModeAsIs PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string // для PathModeRelative; пусто - текущая директория
	Max              int    // обрезка вывода, не Bag
	IncludeNotes     bool
}
