package diag

import (
	"bytes"
	"testing"

	"tabtidy/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		added := bag.Add(Make(SetUnknown, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d returned %v, want %v", i, added, want)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagSeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Make(LexUnclosedFor, source.Span{}, "w"))
	if bag.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected warnings")
	}
	bag.Add(Make(SetDuplicate, source.Span{}, "e"))
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(8)
	bag.Add(Make(SetUnknown, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(Make(LexUnclosedFor, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(Make(SetDuplicate, source.Span{Start: 1, End: 2}, "c"))
	bag.Sort()
	got := []string{}
	for _, d := range bag.Items() {
		got = append(got, d.Message)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order %v, want %v", got, want)
		}
	}
}

func TestRenderPlain(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("suite.robot", []byte("*** Settings ***\nBogus    x\n"))
	bag := NewBag(4)
	r := BagReporter{Bag: bag}
	Report(r, SetUnknown, source.Span{File: id, Start: 17, End: 22}, "Non-existing setting 'Bogus'.").
		WithNote(source.Span{}, "hint").
		Emit()

	var buf bytes.Buffer
	if err := Render(&buf, bag, fs, RenderOpts{Notes: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "suite.robot:2:1: ERROR SET2001 Non-existing setting 'Bogus'.\n    note: hint\n"
	if buf.String() != want {
		t.Fatalf("render mismatch:\nwant %q\ngot  %q", want, buf.String())
	}
}

func TestCodeID(t *testing.T) {
	if SetTooManyValues.ID() != "SET2003" {
		t.Fatalf("got %s", SetTooManyValues.ID())
	}
	if LexUnknownSection.ID() != "LEX1001" {
		t.Fatalf("got %s", LexUnknownSection.ID())
	}
}

func TestCodeSeverity(t *testing.T) {
	tests := map[Code]Severity{
		LexInfo:           SevInfo,
		LexUnknownSection: SevError,
		LexUnclosedFor:    SevWarning,
		SetDuplicate:      SevError,
		IOLoadFileError:   SevError,
	}
	for code, want := range tests {
		if got := code.Severity(); got != want {
			t.Errorf("%s.Severity() = %v, want %v", code.ID(), got, want)
		}
	}
}
