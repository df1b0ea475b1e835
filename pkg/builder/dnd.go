package builder

import (
	"math"
	"strings"

	"github.com/projectflow-dev/projectflow/pkg/schema"
)

// PalettePrefix marks drag sources that come from the component palette
// rather than the canvas.
const PalettePrefix = "palette-"

// PaletteID returns the drag id used for a palette entry of the given type.
func PaletteID(t schema.FieldType) string {
	return PalettePrefix + string(t)
}

// DragEvent describes a completed drag: what was picked up and what it was
// dropped over. OverID may be empty when the drop landed outside any target.
type DragEvent struct {
	ActiveID string
	OverID   string
}

// ApplyDrag resolves a drag against the current field list and returns the
// new list. Dropping a palette entry appends a fresh field with that type's
// defaults; dropping a canvas field moves it. The input slice is not
// modified. changed is false when the drop was a no-op.
func ApplyDrag(fields []schema.Field, ev DragEvent) (out []schema.Field, changed bool) {
	out = schema.CloneFields(fields)
	if ev.ActiveID == "" || ev.OverID == "" {
		return out, false
	}

	if strings.HasPrefix(ev.ActiveID, PalettePrefix) {
		t := schema.FieldType(strings.TrimPrefix(ev.ActiveID, PalettePrefix))
		if !t.Valid() {
			return out, false
		}
		return append(out, schema.NewField(t)), true
	}

	from := indexOf(out, ev.ActiveID)
	if from < 0 || ev.ActiveID == ev.OverID {
		return out, false
	}
	to := indexOf(out, ev.OverID)
	if to < 0 {
		return out, false
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, schema.Field{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, true
}

func indexOf(fields []schema.Field, id string) int {
	if id == "" {
		return -1
	}
	for i := range fields {
		if fields[i].ID == id {
			return i
		}
	}
	return -1
}

// ActivationDistance is how far the pointer must travel before a drag
// starts, so plain clicks never pick a field up.
const ActivationDistance = 8

// Sensor decides when pointer movement becomes a drag.
type Sensor struct {
	startX, startY float64
	active         bool
	dragging       bool
}

// Down records the pointer-down position.
func (s *Sensor) Down(x, y float64) {
	s.startX, s.startY = x, y
	s.active = true
	s.dragging = false
}

// Move reports whether the drag is active after the pointer moved to x,y.
func (s *Sensor) Move(x, y float64) bool {
	if !s.active {
		return false
	}
	if !s.dragging {
		dx, dy := x-s.startX, y-s.startY
		if math.Hypot(dx, dy) >= ActivationDistance {
			s.dragging = true
		}
	}
	return s.dragging
}

// Up ends the gesture and reports whether it was a drag (as opposed to a
// click).
func (s *Sensor) Up() bool {
	was := s.dragging
	s.active = false
	s.dragging = false
	return was
}
