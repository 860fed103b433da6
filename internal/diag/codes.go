package diag

import (
	"fmt"
)

// Severity orders diagnostics; Bag.HasErrors and the exit status look at
// SevError only.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo           Code = 1000
	LexUnknownSection Code = 1001
	LexUnclosedFor    Code = 1002

	// Настройки
	SetInfo          Code = 2000
	SetUnknown       Code = 2001
	SetDuplicate     Code = 2002
	SetTooManyValues Code = 2003

	// IO
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	LexInfo:           "Lexical information",
	LexUnknownSection: "Unrecognized section header",
	LexUnclosedFor:    "FOR loop without END",
	SetInfo:           "Settings information",
	SetUnknown:        "Non-existing setting",
	SetDuplicate:      "Setting allowed only once",
	SetTooManyValues:  "Setting accepts only one value",
	IOLoadFileError:   "I/O load file error",
}

// ID returns the stable short identifier, e.g. SET2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SET%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Severity is the level a code is reported with. An unclosed FOR is only a
// warning: the loop body still lexes and formats.
func (c Code) Severity() Severity {
	switch c {
	case LexInfo, SetInfo:
		return SevInfo
	case LexUnclosedFor:
		return SevWarning
	}
	return SevError
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
