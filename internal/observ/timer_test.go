package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	tm.Track("cleaner", func() {})
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "lex" || r.Phases[0].Note != "12 tokens" || r.Phases[0].Count != 1 {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.TotalMS < 0 {
		t.Fatalf("negative total %v", r.TotalMS)
	}
}

func TestNilTimerTrack(t *testing.T) {
	var tm *Timer
	ran := false
	tm.Track("x", func() { ran = true })
	if !ran {
		t.Fatal("Track on nil timer must still run fn")
	}
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer report %+v", r)
	}
}

func TestMergeAndSlowest(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1, Count: 1}, {Name: "aligner", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "aligner", DurationMS: 3}, {Name: "cleaner", DurationMS: 1, Count: 1}}}

	m := Merge(a, b)
	if m.TotalMS != 7 {
		t.Fatalf("total = %v", m.TotalMS)
	}
	names := []string{}
	for _, p := range m.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "lex,aligner,cleaner" {
		t.Fatalf("order = %v", names)
	}
	if m.Phases[1].DurationMS != 5 || m.Phases[1].Count != 2 {
		t.Fatalf("aligner = %+v", m.Phases[1])
	}

	top := m.Slowest(1)
	if len(top) != 1 || top[0].Name != "aligner" {
		t.Fatalf("slowest = %+v", top)
	}
	if len(m.Slowest(-1)) != 3 {
		t.Fatal("negative n must return all phases")
	}

	sum := m.Summary()
	if !strings.Contains(sum, "aligner") || !strings.Contains(sum, "x2") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}
