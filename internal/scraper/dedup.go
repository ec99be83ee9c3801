package scraper

// Ledger tracks which event identities have been collected during one
// session. It is owned by a single scrape loop and never shared or
// persisted; two concurrent sessions get two independent ledgers.
type Ledger struct {
	seen map[string]struct{}
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Has reports whether the identity was already collected
func (l *Ledger) Has(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Add records the identity. Adding an already-present identity is a no-op.
func (l *Ledger) Add(id string) {
	l.seen[id] = struct{}{}
}

// Size returns the number of distinct identities collected
func (l *Ledger) Size() int {
	return len(l.seen)
}
