package journal

import (
	"sync"

	"github.com/marketgrid/depthbook/pkg/bookd/model"
)

type InMemoryJournal struct {
	mu            sync.RWMutex
	events        map[int64][]*model.BookEvent
	latestClOrdID map[int64]string  // order id -> current ClOrdID
	clOrdChain    map[string]string // ClOrdID -> OrigClOrdID
	orderIDs      map[string]int64  // ClOrdID -> order id
}

func NewInMemoryJournal() *InMemoryJournal {
	return &InMemoryJournal{
		events:        make(map[int64][]*model.BookEvent),
		latestClOrdID: make(map[int64]string),
		clOrdChain:    make(map[string]string),
		orderIDs:      make(map[string]int64),
	}
}

func (j *InMemoryJournal) Append(ev *model.BookEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.events[ev.OrderID] = append(j.events[ev.OrderID], ev)
	j.trackLocked(ev.OrderID, ev.ClOrdID, ev.OrigClOrdID)
}

func (j *InMemoryJournal) History(orderID int64) []*model.BookEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	evs := j.events[orderID]
	out := make([]*model.BookEvent, len(evs))
	copy(out, evs)
	return out
}

func (j *InMemoryJournal) TrackRequestChain(orderID int64, clOrdID, origClOrdID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.trackLocked(orderID, clOrdID, origClOrdID)
}

func (j *InMemoryJournal) trackLocked(orderID int64, clOrdID, origClOrdID string) {
	j.latestClOrdID[orderID] = clOrdID
	j.orderIDs[clOrdID] = orderID
	if origClOrdID != "" {
		j.clOrdChain[clOrdID] = origClOrdID
	}
}

func (j *InMemoryJournal) OrderID(clOrdID string) (int64, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	id, ok := j.orderIDs[clOrdID]
	return id, ok
}

func (j *InMemoryJournal) LatestClOrdID(orderID int64) string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.latestClOrdID[orderID]
}

// RequestChain walks backward from clOrdID through every replace to the
// original request.
func (j *InMemoryJournal) RequestChain(clOrdID string) []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var chain []string
	curr := clOrdID
	for curr != "" {
		chain = append(chain, curr)
		curr = j.clOrdChain[curr]
	}
	return chain
}
