package settings

import (
	"fmt"
	"strings"

	"tabtidy/internal/ast"
	"tabtidy/internal/diag"
	"tabtidy/internal/normalize"
	"tabtidy/internal/token"
)

// Value is the snapshot stored for an assigned setting.
type Value struct {
	Tokens []ast.TokenID
	Values []string
}

// Settings validates setting statements of one scope instance (one file's
// settings section, one test case, one keyword) and remembers what was set.
type Settings struct {
	scope    *Scope
	values   map[string]*Value
	reporter diag.Reporter
}

// New creates a validator for scope. A nil reporter drops diagnostics; they
// are still attached to the offending tokens.
func New(scope *Scope, r diag.Reporter) *Settings {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Settings{
		scope:    scope,
		values:   make(map[string]*Value, len(scope.names)),
		reporter: r,
	}
}

// ForFile picks the file-level scope for kind.
func ForFile(kind ast.FileKind, r diag.Reporter) *Settings {
	switch kind {
	case ast.ResourceFile:
		return New(ResourceFileScope, r)
	case ast.InitFile:
		return New(InitFileScope, r)
	default:
		return New(SuiteFileScope, r)
	}
}

// Value returns the stored value for a normalized setting name.
func (s *Settings) Value(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[name]
	if !ok {
		return Value{}, false
	}
	return *v, true
}

// IsSet reports whether the setting was assigned.
func (s *Settings) IsSet(name string) bool {
	_, ok := s.Value(name)
	return ok
}

// Lex validates st and assigns kinds to its data tokens. It reports whether
// the statement was accepted; a rejected statement gets an Error name token
// and comment values, and the rest of the document is unaffected.
func (s *Settings) Lex(f *ast.File, st *ast.Statement) bool {
	data := f.DataTokens(st)
	if len(data) == 0 {
		return false
	}
	nameTok := f.Tok(data[0])
	values := data[1:]

	name := s.formatName(nameTok.Text)
	normalized := s.normalizeName(name)
	if code, err := s.validate(name, normalized, len(values)); err != "" {
		nameTok.Kind = token.Error
		nameTok.Error = err
		for _, id := range values {
			f.Tok(id).Kind = token.Comment
		}
		st.Kind = token.Error
		primary := nameTok.Span
		if code == diag.SetTooManyValues {
			primary = primary.Cover(f.Tok(values[len(values)-1]).Span)
		}
		b := diag.Report(s.reporter, code, primary, err)
		if s.scope.unsupported != "" {
			b.WithNote(nameTok.Span, s.scope.unsupported)
		}
		b.Emit()
		return false
	}

	kind, ok := token.LookupSetting(normalized)
	if !ok {
		// every recognised name has a kind; reaching this is a table bug
		panic(fmt.Sprintf("settings: no token kind for %q", normalized))
	}
	nameTok.Kind = kind
	nameTok.Error = ""
	st.Kind = kind

	v := &Value{Tokens: values, Values: make([]string, len(values))}
	for i, id := range values {
		v.Values[i] = f.Tok(id).Text
	}
	if prev, seen := s.values[normalized]; seen {
		// multi-use: every occurrence is retained
		prev.Tokens = append(prev.Tokens, v.Tokens...)
		prev.Values = append(prev.Values, v.Values...)
	} else {
		s.values[normalized] = v
	}

	if nameAndArguments[normalized] {
		lexNameAndArguments(f, values)
	} else {
		lexArguments(f, values)
	}
	return true
}

func (s *Settings) formatName(name string) string {
	if s.scope.bracketed && strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") && len(name) >= 2 {
		return strings.TrimSpace(name[1 : len(name)-1])
	}
	return name
}

func (s *Settings) normalizeName(name string) string {
	normalized := normalize.SettingName(name)
	if alias, ok := s.scope.aliases[normalized]; ok {
		return alias
	}
	return normalized
}

func (s *Settings) validate(name, normalized string, valueCount int) (diag.Code, string) {
	if !s.scope.Recognizes(normalized) {
		return diag.SetUnknown, fmt.Sprintf("Non-existing setting '%s'.", name)
	}
	if _, seen := s.values[normalized]; seen && !s.scope.multiUse[normalized] {
		return diag.SetDuplicate, fmt.Sprintf("Setting '%s' allowed only once. Only the first value is used.", name)
	}
	if s.scope.singleValue[normalized] && valueCount > 1 {
		return diag.SetTooManyValues, fmt.Sprintf("Setting '%s' accepts only one value, got %d.", name, valueCount)
	}
	return diag.UnknownCode, ""
}

func lexNameAndArguments(f *ast.File, ids []ast.TokenID) {
	if len(ids) > 0 {
		f.Tok(ids[0]).Kind = token.Name
	}
	lexArguments(f, ids[min(1, len(ids)):])
}

func lexArguments(f *ast.File, ids []ast.TokenID) {
	for _, id := range ids {
		f.Tok(id).Kind = token.Argument
	}
}
