package dashboard

import "sync"

// hub fans views out to subscribers. Each subscriber holds at most one
// pending view; a newer view replaces an unread one.
type hub struct {
	mu   sync.Mutex
	next int
	last uint64
	subs map[int]chan View
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan View)}
}

func (h *hub) add() (chan View, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	ch := make(chan View, 1)
	h.subs[h.next] = ch
	return ch, h.next
}

func (h *hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *hub) broadcast(v View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v.Version < h.last {
		return
	}
	h.last = v.Version
	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
