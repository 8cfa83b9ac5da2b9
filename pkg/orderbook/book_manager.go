package orderbook

import "sync"

// DepthListener receives the refreshed top of book after every successful
// mutation.
type DepthListener func(DepthSnapshot)

type BookManagerConfig struct {
	// DepthLevels bounds the snapshots handed to listeners, 0 = all levels.
	DepthLevels int
}

// BookManager composes independent single-instrument books and supplies the
// external mutual exclusion the core book leaves out: one mutex per book,
// held for the duration of each operation. Operations on different symbols
// never contend.
type BookManager struct {
	books sync.Map // symbol -> *managedBook
	cfg   *BookManagerConfig

	mu        sync.Mutex
	listeners []DepthListener
}

type managedBook struct {
	mu   sync.Mutex
	book *OrderBook
}

func NewBookManager(cfg *BookManagerConfig) *BookManager {
	if cfg == nil {
		cfg = &BookManagerConfig{}
	}
	return &BookManager{cfg: cfg}
}

func (m *BookManager) Add(o *Order) error {
	mb := m.getOrCreateBook(o.Symbol)

	mb.mu.Lock()
	err := mb.book.Add(o)
	var snap DepthSnapshot
	if err == nil {
		snap = mb.book.Depth(m.cfg.DepthLevels)
	}
	mb.mu.Unlock()

	if err != nil {
		return err
	}
	m.notify(snap)
	return nil
}

func (m *BookManager) Remove(symbol string, id int64) bool {
	mb := m.getOrCreateBook(symbol)

	mb.mu.Lock()
	removed := mb.book.RemoveByID(id)
	var snap DepthSnapshot
	if removed {
		snap = mb.book.Depth(m.cfg.DepthLevels)
	}
	mb.mu.Unlock()

	if removed {
		m.notify(snap)
	}
	return removed
}

func (m *BookManager) ChangeSize(symbol string, id int64, newSize int64) error {
	mb := m.getOrCreateBook(symbol)

	mb.mu.Lock()
	err := mb.book.ChangeSize(id, newSize)
	var snap DepthSnapshot
	if err == nil {
		snap = mb.book.Depth(m.cfg.DepthLevels)
	}
	mb.mu.Unlock()

	if err != nil {
		return err
	}
	m.notify(snap)
	return nil
}

func (m *BookManager) PriceAtLevel(symbol string, side Side, level int) (float64, error) {
	mb := m.getOrCreateBook(symbol)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.book.PriceAtLevel(side, level)
}

func (m *BookManager) TotalSizeAtLevel(symbol string, side Side, level int) (int64, error) {
	mb := m.getOrCreateBook(symbol)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.book.TotalSizeAtLevel(side, level)
}

func (m *BookManager) OrdersBySide(symbol string, side Side) ([]*Order, error) {
	mb := m.getOrCreateBook(symbol)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.book.OrdersBySide(side)
}

func (m *BookManager) Lookup(symbol string, id int64) (Order, bool) {
	mb := m.getOrCreateBook(symbol)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.book.Get(id)
}

func (m *BookManager) Depth(symbol string, maxLevels int) DepthSnapshot {
	mb := m.getOrCreateBook(symbol)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.book.Depth(maxLevels)
}

func (m *BookManager) RegisterDepthListener(fn DepthListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *BookManager) notify(snap DepthSnapshot) {
	m.mu.Lock()
	listeners := m.listeners
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (m *BookManager) getOrCreateBook(symbol string) *managedBook {
	if val, ok := m.books.Load(symbol); ok {
		return val.(*managedBook)
	}

	actual, _ := m.books.LoadOrStore(symbol, &managedBook{book: NewOrderBook(symbol)})
	return actual.(*managedBook)
}
