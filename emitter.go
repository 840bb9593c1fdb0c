package banana

// Event carries the payload of a notification.
type Event struct {
	Type EventType
	// DT is the frame delta in seconds (EventUpdate).
	DT float64
	// Width and Height are the new surface size (EventResize).
	Width, Height int
}

type listener struct {
	id uint32
	fn func(Event)
}

// Emitter is a typed listener registry keyed by EventType. It is embedded by
// Engine, Entity and Sprite. Not safe for concurrent use; all calls happen on
// the frame goroutine.
type Emitter struct {
	listeners map[EventType][]listener
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id    uint32
	em    *Emitter
	event EventType
}

// On registers fn for the given event and returns a handle for removal.
func (em *Emitter) On(event EventType, fn func(Event)) ListenerHandle {
	if em.listeners == nil {
		em.listeners = make(map[EventType][]listener)
	}
	em.nextID++
	id := em.nextID
	em.listeners[event] = append(em.listeners[event], listener{id: id, fn: fn})
	return ListenerHandle{id: id, em: em, event: event}
}

// Remove unregisters the listener. Removing the last listener of an event
// drops the event from the registry. Reports whether a listener was removed.
func (h ListenerHandle) Remove() bool {
	if h.em == nil {
		return false
	}
	s, ok := h.em.listeners[h.event]
	if !ok {
		return false
	}
	for i := range s {
		if s[i].id == h.id {
			if len(s) == 1 {
				delete(h.em.listeners, h.event)
				return true
			}
			// Copy so an Emit in progress keeps iterating its snapshot.
			next := make([]listener, 0, len(s)-1)
			next = append(next, s[:i]...)
			next = append(next, s[i+1:]...)
			h.em.listeners[h.event] = next
			return true
		}
	}
	return false
}

// Emit calls every listener registered for ev.Type in registration order.
// Reports whether any listener was called.
func (em *Emitter) Emit(ev Event) bool {
	s := em.listeners[ev.Type]
	if len(s) == 0 {
		return false
	}
	for _, l := range s {
		l.fn(ev)
	}
	return true
}

// HasListeners reports whether any listener is registered for event.
func (em *Emitter) HasListeners(event EventType) bool {
	_, ok := em.listeners[event]
	return ok
}
