package bar

import (
	"sync"
	"testing"
)

func TestTable_SnapshotKeepsRegistrationOrder(t *testing.T) {
	tbl := NewTable("volume", "battery", "weather")

	tbl.Set(Segment{Name: "weather", Text: "12°C"}, false)
	tbl.Set(Segment{Name: "volume", Text: "🔊 80"}, false)

	snap := tbl.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot len = %d, want 2 (battery not yet sampled)", len(snap))
	}
	if snap[0].Name != "volume" || snap[1].Name != "weather" {
		t.Fatalf("Snapshot order = %q, %q; want volume, weather", snap[0].Name, snap[1].Name)
	}

	tbl.Set(Segment{Name: "battery", Text: "🔋 73%"}, false)
	names := tbl.Names()
	if len(names) != 3 || names[1] != "battery" {
		t.Fatalf("Names = %v, want battery second", names)
	}
}

func TestTable_SetReportsChangeAndSignals(t *testing.T) {
	tbl := NewTable("cpu")

	if !tbl.Set(Segment{Name: "cpu", Text: "52°C"}, false) {
		t.Fatalf("first Set changed = false, want true")
	}
	select {
	case <-tbl.Changed():
	default:
		t.Fatalf("Changed not signalled after a new segment")
	}

	if tbl.Set(Segment{Name: "cpu", Text: "52°C"}, false) {
		t.Fatalf("identical Set changed = true, want false")
	}
	select {
	case <-tbl.Changed():
		t.Fatalf("Changed signalled for an identical segment")
	default:
	}
}

func TestTable_SignalsCoalesce(t *testing.T) {
	tbl := NewTable("a")
	for i := 0; i < 5; i++ {
		tbl.Set(Segment{Name: "a", Text: string(rune('0' + i))}, false)
	}
	<-tbl.Changed()
	select {
	case <-tbl.Changed():
		t.Fatalf("expected a single coalesced signal")
	default:
	}
	if got := tbl.Snapshot()[0].Text; got != "4" {
		t.Fatalf("Snapshot text = %q, want latest 4", got)
	}
}

func TestTable_ConsecutiveFailures(t *testing.T) {
	tbl := NewTable("garage")
	errSeg := Segment{Name: "garage", Text: "error", Urgent: true}

	tbl.Set(errSeg, true)
	tbl.Set(errSeg, true)
	slot, ok := tbl.Slot("garage")
	if !ok || slot.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", slot.ConsecutiveFailures)
	}

	tbl.Set(Segment{Name: "garage", Text: "🚗 closed"}, false)
	slot, _ = tbl.Slot("garage")
	if slot.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", slot.ConsecutiveFailures)
	}
	if slot.UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not set")
	}
}

func TestTable_UnreservedNameAppends(t *testing.T) {
	tbl := NewTable("a")
	tbl.Set(Segment{Name: "b", Text: "B"}, false)
	tbl.Set(Segment{Name: "a", Text: "A"}, false)
	snap := tbl.Snapshot()
	if len(snap) != 2 || snap[0].Name != "a" || snap[1].Name != "b" {
		t.Fatalf("Snapshot = %+v, want a then b", snap)
	}
}

func TestTable_ConcurrentWriters(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	tbl := NewTable(names...)

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				tbl.Set(Segment{Name: name, Text: name}, i%2 == 0)
				_ = tbl.Snapshot()
			}
		}(name)
	}
	wg.Wait()

	if got := len(tbl.Snapshot()); got != len(names) {
		t.Fatalf("Snapshot len = %d, want %d", got, len(names))
	}
}

func TestSegment_Padded(t *testing.T) {
	seg := Segment{Text: "🔌 73%", Padding: 1}
	if got := seg.Padded(); got != " 🔌 73% " {
		t.Fatalf("Padded = %q, want %q", got, " 🔌 73% ")
	}
	if got := (Segment{Text: "x"}).Padded(); got != "x" {
		t.Fatalf("Padded = %q, want x", got)
	}
}

func TestTable_RestyleKeepsFailureCount(t *testing.T) {
	tbl := NewTable("cpu")
	tbl.Set(Segment{Name: "cpu", Text: "error", Foreground: "#bb1155", Urgent: true}, true)
	<-tbl.Changed()

	if !tbl.Restyle(Segment{Name: "cpu", Text: "error", Foreground: "#ff5555", Urgent: true}) {
		t.Fatalf("Restyle returned false, want true for new color")
	}
	slot, _ := tbl.Slot("cpu")
	if slot.ConsecutiveFailures != 1 || slot.Segment.Foreground != "#ff5555" {
		t.Fatalf("slot = %+v, want one failure and the new color", slot)
	}
	select {
	case <-tbl.Changed():
	default:
		t.Fatalf("Restyle did not signal Changed")
	}
	if tbl.Restyle(Segment{Name: "unknown", Text: "x"}) {
		t.Fatalf("Restyle(unknown) returned true, want false")
	}
}

func TestTable_Failing(t *testing.T) {
	tbl := NewTable("weather", "garage")
	tbl.Set(Segment{Name: "garage", Text: "error"}, true)
	if got := tbl.Failing(); len(got) != 0 {
		t.Fatalf("Failing() after one failure = %v, want none", got)
	}
	tbl.Set(Segment{Name: "garage", Text: "error"}, true)
	tbl.Set(Segment{Name: "weather", Text: "error"}, true)
	tbl.Set(Segment{Name: "weather", Text: "error"}, true)
	if got := tbl.Failing(); len(got) != 2 || got[0] != "weather" || got[1] != "garage" {
		t.Fatalf("Failing() = %v, want [weather garage]", got)
	}
	tbl.Set(Segment{Name: "garage", Text: "🚗 closed"}, false)
	if got := tbl.Failing(); len(got) != 1 || got[0] != "weather" {
		t.Fatalf("Failing() after recovery = %v, want [weather]", got)
	}
}
