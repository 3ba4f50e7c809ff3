package remote

import "sync"

// Outbox is a bounded queue of encoded messages for one connection.
// Send never blocks: when the queue is full the oldest message is dropped,
// since every message carries the full state.
type Outbox struct {
	messages chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

// NewOutbox creates an outbox holding up to size messages.
func NewOutbox(size int) *Outbox {
	if size < 1 {
		size = 16
	}
	return &Outbox{
		messages: make(chan []byte, size),
		done:     make(chan struct{}),
	}
}

// Send queues msg. Messages sent after Close are discarded.
func (o *Outbox) Send(msg []byte) {
	select {
	case <-o.done:
		return
	default:
	}

	select {
	case o.messages <- msg:
	default:
		select {
		case <-o.messages:
		default:
		}
		select {
		case o.messages <- msg:
		default:
		}
	}
}

// Messages returns the queue the writer drains.
func (o *Outbox) Messages() <-chan []byte {
	return o.messages
}

// Done is closed by Close.
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Close stops the outbox. Safe to call multiple times.
func (o *Outbox) Close() {
	o.doneOnce.Do(func() {
		close(o.done)
	})
}

// registry tracks live connections by session ID.
type registry struct {
	mu    sync.RWMutex
	conns map[string]*Outbox
}

func newRegistry() *registry {
	return &registry{conns: make(map[string]*Outbox)}
}

func (r *registry) add(id string, o *Outbox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = o
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// closeAll closes every outbox, which ends their writers.
func (r *registry) closeAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.conns {
		o.Close()
	}
}
