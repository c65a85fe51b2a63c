// Package dom models the slice of a document object model the selector
// widgets need: an element tree with containment checks, element-level
// pointer handlers and document-level listeners dispatched in bubble order.
package dom

import "sync"

// EventType names a pointer event.
type EventType string

const (
	PointerDown EventType = "pointerdown"
	Click       EventType = "click"
)

// Event is a single pointer interaction aimed at a target element.
type Event struct {
	Type    EventType
	Target  *Element
	stopped bool
}

// StopPropagation prevents ancestors and document listeners from seeing the event.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler stopped propagation.
func (e *Event) Stopped() bool { return e.stopped }

// Handler reacts to an event.
type Handler func(*Event)

// Element is a node of the document tree.
type Element struct {
	ID string

	mu       sync.RWMutex
	parent   *Element
	children []*Element
	handlers []Handler
}

// NewElement builds a detached element.
func NewElement(id string) *Element {
	return &Element{ID: id}
}

// Append attaches children to e and returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.mu.Lock()
		child.parent = e
		child.mu.Unlock()
		e.mu.Lock()
		e.children = append(e.children, child)
		e.mu.Unlock()
	}
	return e
}

// Parent returns the parent element, nil for roots and detached nodes.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil {
		return false
	}
	for node := other; node != nil; node = node.Parent() {
		if node == e {
			return true
		}
	}
	return false
}

// On registers an element-level handler. Handlers run before document
// listeners and may stop propagation.
func (e *Element) On(h Handler) {
	if h == nil {
		return
	}
	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()
}

func (e *Element) snapshotHandlers() []Handler {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Handler(nil), e.handlers...)
}

// Document owns the element tree and the document-level listeners.
type Document struct {
	Body *Element

	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]Handler
	order     []uint64
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	return &Document{
		Body:      NewElement("body"),
		listeners: map[uint64]Handler{},
	}
}

// AddPointerListener registers a document-level listener and returns the
// function that removes it. Calling remove more than once is safe.
func (d *Document) AddPointerListener(h Handler) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners[id] = h
	d.order = append(d.order, id)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners, id)
			for i, existing := range d.order {
				if existing == id {
					d.order = append(d.order[:i], d.order[i+1:]...)
					break
				}
			}
		})
	}
}

// ListenerCount returns the number of registered document listeners.
func (d *Document) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Dispatch delivers ev to the target, then each ancestor, then to document
// listeners. A listener removed by an earlier handler is not invoked.
func (d *Document) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	for node := ev.Target; node != nil; node = node.Parent() {
		for _, h := range node.snapshotHandlers() {
			h(ev)
		}
		if ev.stopped {
			return
		}
	}

	d.mu.Lock()
	ids := append([]uint64(nil), d.order...)
	d.mu.Unlock()
	for _, id := range ids {
		d.mu.Lock()
		h, ok := d.listeners[id]
		d.mu.Unlock()
		if !ok {
			continue
		}
		h(ev)
		if ev.stopped {
			return
		}
	}
}

// PointerDown dispatches a pointerdown event at target.
func (d *Document) PointerDown(target *Element) *Event {
	ev := &Event{Type: PointerDown, Target: target}
	d.Dispatch(ev)
	return ev
}
