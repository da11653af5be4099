package gwin

// Manager keeps the live widgets of a toolkit in creation order.
type Manager struct {
	seq     ID
	widgets []*Widget
}

func newManager() *Manager {
	return &Manager{}
}

func (m *Manager) register(w *Widget) {
	m.seq++
	w.id = m.seq
	m.widgets = append(m.widgets, w)
}

func (m *Manager) unregister(w *Widget) {
	for i, o := range m.widgets {
		if o == w {
			m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
			return
		}
	}
}

// Len returns the number of live widgets.
func (m *Manager) Len() int { return len(m.widgets) }

// Widgets returns the live widgets in creation order.
func (m *Manager) Widgets() []*Widget {
	out := make([]*Widget, len(m.widgets))
	copy(out, m.widgets)
	return out
}

// Lookup finds a live widget by id.
func (m *Manager) Lookup(id ID) (*Widget, bool) {
	for _, w := range m.widgets {
		if w.id == id {
			return w, true
		}
	}
	return nil, false
}

// RedrawAll redraws every visible widget in creation order, e.g. after the
// display has been cleared or resized.
func (m *Manager) RedrawAll() {
	for _, w := range m.Widgets() {
		w.Redraw()
	}
}
