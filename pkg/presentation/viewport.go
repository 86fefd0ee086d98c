package presentation

import "sync"

// Projector turns a longitude/latitude pair into screen coordinates.
type Projector interface {
	Project(longitude float64, latitude float64) (x float64, y float64)
}

// ViewportNotifier collapses a map widget's move, zoom and resize events into
// one "viewport changed" notification carrying the new projection.
type ViewportNotifier struct {
	mu        sync.Mutex
	listeners map[int]func(Projector)
	nextID    int
}

func NewViewportNotifier() *ViewportNotifier {
	return &ViewportNotifier{
		listeners: map[int]func(Projector){},
	}
}

func (n *ViewportNotifier) Subscribe(listener func(Projector)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID += 1
	n.listeners[id] = listener

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		delete(n.listeners, id)
	}
}

func (n *ViewportNotifier) ViewportChanged(projector Projector) {
	n.mu.Lock()
	listeners := make([]func(Projector), 0, len(n.listeners))
	for _, listener := range n.listeners {
		listeners = append(listeners, listener)
	}
	n.mu.Unlock()

	for _, listener := range listeners {
		listener(projector)
	}
}
