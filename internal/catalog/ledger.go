package catalog

import "sync"

// CatalogBatchSize is how many catalogued entries earn one reward token.
const CatalogBatchSize = 5

// Ledger tracks reward tokens: every CatalogBatchSize catalogued entries
// earns one, every finished arcade match spends one. The balance never goes
// negative; spending with nothing banked reports failure.
type Ledger struct {
	mu      sync.Mutex
	entries uint64
	earned  uint64
	spent   uint64
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// RecordEntry counts one catalogued entry and reports whether it completed a
// batch and earned a token.
func (l *Ledger) RecordEntry() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries++
	if l.entries%CatalogBatchSize == 0 {
		l.earned++
		return true
	}
	return false
}

// Spend consumes one token, reporting failure on an empty balance.
func (l *Ledger) Spend() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.earned <= l.spent {
		return false
	}
	l.spent++
	return true
}

// Balance reports the tokens currently available.
func (l *Ledger) Balance() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.earned - l.spent
}

// LedgerSnapshot is a point-in-time copy for diagnostics and state frames.
type LedgerSnapshot struct {
	Entries uint64 `json:"entries"`
	Earned  uint64 `json:"earned"`
	Spent   uint64 `json:"spent"`
	Balance uint64 `json:"balance"`
}

// Snapshot copies the ledger counters.
func (l *Ledger) Snapshot() LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LedgerSnapshot{
		Entries: l.entries,
		Earned:  l.earned,
		Spent:   l.spent,
		Balance: l.earned - l.spent,
	}
}
