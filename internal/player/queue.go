package player

import "sync"

// eventQueue buffers events without bound and delivers them in order on out.
// push never blocks, so it is safe to call from the speaker goroutine.
type eventQueue struct {
	mu     sync.Mutex
	items  []Event
	out    chan Event
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		out:    make(chan Event),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *eventQueue) run() {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.mu.Unlock()
			select {
			case <-q.signal:
				continue
			case <-q.done:
				return
			}
		}
		e := q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
		q.mu.Unlock()

		select {
		case q.out <- e:
		case <-q.done:
			return
		}
	}
}

// close stops delivery. Pending events are dropped and out is closed.
func (q *eventQueue) close() {
	q.once.Do(func() { close(q.done) })
}
