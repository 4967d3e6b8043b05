package playback

// Listener receives coordinator events synchronously, in emission order.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// listeners is an ordered registry. Delivery iterates over a snapshot so a
// listener may unsubscribe, subscribe or issue commands while being called.
type listeners struct {
	entries []listenerEntry
	nextID  int
}

func (l *listeners) add(fn Listener) (remove func()) {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners) emit(e Event) {
	snapshot := make([]listenerEntry, len(l.entries))
	copy(snapshot, l.entries)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

func (l *listeners) clear() {
	l.entries = nil
}
