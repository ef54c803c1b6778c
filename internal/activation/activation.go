// Package activation tracks which photo frame, if any, is pulled in front of
// the camera. At most one frame is active at a time.
package activation

import "log/slog"

// Selection is the active frame id, or none when Valid is false.
type Selection struct {
	ID    int
	Valid bool
}

// None is the idle selection.
var None = Selection{}

// Active returns a selection of id.
func Active(id int) Selection {
	return Selection{ID: id, Valid: true}
}

// Is reports whether id is the active frame.
func (s Selection) Is(id int) bool {
	return s.Valid && s.ID == id
}

// Machine is the Idle / Active(id) state machine. It is not safe for
// concurrent use; composers mutate it from their event handlers between ticks.
type Machine struct {
	sel      Selection
	onChange []func(prev, next Selection)
}

// Selection returns the current state.
func (m *Machine) Selection() Selection { return m.sel }

// ControlsEnabled reports whether camera drag/zoom input may be applied.
func (m *Machine) ControlsEnabled() bool { return !m.sel.Valid }

// OnChange registers fn to run after every state change.
func (m *Machine) OnChange(fn func(prev, next Selection)) {
	m.onChange = append(m.onChange, fn)
}

// Activate makes id the active frame, preempting any other active frame.
// It always returns true: a click on a frame is consumed and must not reach
// whatever lies behind it.
func (m *Machine) Activate(id int) bool {
	if m.sel.Is(id) {
		return true
	}
	m.set(Active(id))
	return true
}

// Close returns to Idle.
func (m *Machine) Close() {
	if !m.sel.Valid {
		return
	}
	m.set(None)
}

func (m *Machine) set(next Selection) {
	prev := m.sel
	m.sel = next
	slog.Debug("activation: state change", "prev", prev, "next", next)
	for _, fn := range m.onChange {
		fn(prev, next)
	}
}

// LogValue renders a selection for structured logs.
func (s Selection) LogValue() slog.Value {
	if !s.Valid {
		return slog.StringValue("idle")
	}
	return slog.IntValue(s.ID)
}
