package builder

import (
	"testing"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

func named(ids ...string) []schema.Field {
	out := make([]schema.Field, len(ids))
	for i, id := range ids {
		out[i] = schema.Field{ID: id, Type: schema.TypeText}
	}
	return out
}

func ids(fields []schema.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func sameOrder(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyDragMove(t *testing.T) {
	fields := named("a", "b", "c")

	out, changed := ApplyDrag(fields, DragEvent{ActiveID: "a", OverID: "c"})
	if !changed {
		t.Fatal("move reported no change")
	}
	if got := ids(out); !sameOrder(got, []string{"b", "c", "a"}) {
		t.Fatalf("order = %v", got)
	}

	out, changed = ApplyDrag(fields, DragEvent{ActiveID: "c", OverID: "a"})
	if !changed {
		t.Fatal("move reported no change")
	}
	if got := ids(out); !sameOrder(got, []string{"c", "a", "b"}) {
		t.Fatalf("order = %v", got)
	}
	if got := ids(fields); !sameOrder(got, []string{"a", "b", "c"}) {
		t.Fatalf("input mutated: %v", got)
	}
}

func TestApplyDragNoops(t *testing.T) {
	fields := named("a", "b")

	for _, ev := range []DragEvent{
		{ActiveID: "a", OverID: "a"},
		{ActiveID: "a", OverID: ""},
		{ActiveID: "ghost", OverID: "b"},
		{ActiveID: "a", OverID: "ghost"},
		{},
	} {
		out, changed := ApplyDrag(fields, ev)
		if changed {
			t.Fatalf("%+v reported change", ev)
		}
		if got := ids(out); !sameOrder(got, []string{"a", "b"}) {
			t.Fatalf("%+v reordered to %v", ev, got)
		}
	}
}

func TestApplyDragPaletteInsert(t *testing.T) {
	fields := named("a", "b")

	// a palette drop always lands at the end, even when released over an
	// existing field
	for _, over := range []string{"a", "b", "canvas"} {
		out, changed := ApplyDrag(fields, DragEvent{ActiveID: PaletteID(schema.TypeSelect), OverID: over})
		if !changed {
			t.Fatalf("over %q: insert reported no change", over)
		}
		if len(out) != 3 {
			t.Fatalf("over %q: len = %d", over, len(out))
		}
		last := out[2]
		if last.Type != schema.TypeSelect {
			t.Fatalf("over %q: last element type = %q, order = %v", over, last.Type, ids(out))
		}
		if last.ID == "" || last.ID == "a" || last.ID == "b" {
			t.Fatalf("over %q: inserted field id = %q", over, last.ID)
		}
		if len(last.Options) != 2 {
			t.Fatalf("over %q: inserted select options = %v", over, last.Options)
		}
		if got := ids(fields); !sameOrder(got, []string{"a", "b"}) {
			t.Fatalf("input mutated: %v", got)
		}
	}

	// releasing outside any drop target leaves the canvas alone
	out, changed := ApplyDrag(fields, DragEvent{ActiveID: PaletteID(schema.TypeButton)})
	if changed || len(out) != 2 {
		t.Fatalf("drop without target changed fields: %v", ids(out))
	}

	// unknown palette type is ignored
	_, changed = ApplyDrag(fields, DragEvent{ActiveID: PalettePrefix + "slider", OverID: "a"})
	if changed {
		t.Fatal("unknown palette type inserted")
	}
}

func TestSensorActivation(t *testing.T) {
	var s Sensor
	s.Down(10, 10)
	if s.Move(14, 10) {
		t.Fatal("drag started under threshold")
	}
	if !s.Move(16, 16) {
		t.Fatal("drag not started past threshold")
	}
	if !s.Up() {
		t.Fatal("gesture not reported as drag")
	}

	s.Down(0, 0)
	if s.Move(3, 3) {
		t.Fatal("click distance started a drag")
	}
	if s.Up() {
		t.Fatal("click reported as drag")
	}
}
