package selector

import (
	"sync"

	"github.com/Apurer/go-vet-office/internal/selector/dom"
)

// Dismissal closes a widget when a pointer event lands outside every one of
// its inside elements. It holds at most one document listener.
type Dismissal struct {
	doc       *dom.Document
	inside    []*dom.Element
	onDismiss func()

	mu     sync.Mutex
	remove func()
}

// NewDismissal watches doc for pointer events outside the inside elements.
func NewDismissal(doc *dom.Document, onDismiss func(), inside ...*dom.Element) *Dismissal {
	kept := make([]*dom.Element, 0, len(inside))
	for _, el := range inside {
		if el != nil {
			kept = append(kept, el)
		}
	}
	return &Dismissal{doc: doc, inside: kept, onDismiss: onDismiss}
}

// Arm registers the document listener unless it is already registered.
func (d *Dismissal) Arm() {
	if d == nil || d.doc == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.remove != nil {
		return
	}
	d.remove = d.doc.AddPointerListener(d.handle)
}

// Disarm removes the document listener. It is safe to call when not armed.
func (d *Dismissal) Disarm() {
	if d == nil {
		return
	}
	d.mu.Lock()
	remove := d.remove
	d.remove = nil
	d.mu.Unlock()
	if remove != nil {
		remove()
	}
}

// Armed reports whether the listener is registered.
func (d *Dismissal) Armed() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.remove != nil
}

func (d *Dismissal) handle(ev *dom.Event) {
	for _, el := range d.inside {
		if el.Contains(ev.Target) {
			return
		}
	}
	if d.onDismiss != nil {
		d.onDismiss()
	}
}
