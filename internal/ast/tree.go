package ast

import (
	"tabtidy/internal/token"
)

// FileKind selects which settings a file accepts.
type FileKind uint8

const (
	// SuiteFile is a regular test-case file.
	SuiteFile FileKind = iota
	// ResourceFile holds keywords and variables only.
	ResourceFile
	// InitFile is a directory-level suite initialization file.
	InitFile
)

func (k FileKind) String() string {
	switch k {
	case SuiteFile:
		return "suite"
	case ResourceFile:
		return "resource"
	case InitFile:
		return "init"
	default:
		return "unknown"
	}
}

// SectionKind identifies a top-level section.
type SectionKind uint8

const (
	SectionComments SectionKind = iota
	SectionSettings
	SectionVariables
	SectionTestCases
	SectionKeywords
)

func (k SectionKind) String() string {
	switch k {
	case SectionComments:
		return "comments"
	case SectionSettings:
		return "settings"
	case SectionVariables:
		return "variables"
	case SectionTestCases:
		return "test cases"
	case SectionKeywords:
		return "keywords"
	default:
		return "unknown"
	}
}

// Block is one item of a section or block body.
type Block interface {
	block()
}

// Statement is one logical unit spanning one or more physical lines.
type Statement struct {
	Kind  token.Kind
	Lines [][]TokenID
}

// TestCase is a named test with its body.
type TestCase struct {
	Name *Statement
	Body []Block
}

// Keyword is a named user keyword with its body.
type Keyword struct {
	Name *Statement
	Body []Block
}

// ForLoop is a loop header, its body and the closing marker.
// End is nil when the source never closed the loop.
type ForLoop struct {
	Header *Statement
	Body   []Block
	End    *Statement
}

func (*Statement) block() {}
func (*TestCase) block()  {}
func (*Keyword) block()   {}
func (*ForLoop) block()   {}

// Section is a header plus body. Header is nil for the implicit section
// holding content before the first header.
type Section struct {
	Kind   SectionKind
	Header *Statement
	Body   []Block
}

// Implicit reports whether the section has no header line.
func (s *Section) Implicit() bool { return s.Header == nil }
