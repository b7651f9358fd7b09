package warehouse

import (
	"fmt"
	"iter"
	"maps"
	"math"
)

// Ledger manages the quantity held for each catalog item.
type Ledger struct {
	st *State
}

// NewLedger returns a Ledger operating on st.
func NewLedger(st *State) *Ledger {
	return &Ledger{st: st}
}

// Deposit adds qty units of item and returns the new quantity.
func (l *Ledger) Deposit(item string, qty int64) (int64, error) {
	name := Normalize(item)
	if !l.st.contains(name) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}

	old := l.st.stock[name]
	if qty > math.MaxInt64-old {
		return old, fmt.Errorf("%w: %d would overflow the stock of %q", ErrInvalidQuantity, qty, name)
	}

	next := maps.Clone(l.st.stock)
	next[name] = old + qty
	if err := l.st.store.SaveLedger(next); err != nil {
		return old, &PersistenceError{Record: "ledger", Err: err}
	}
	l.st.stock = next
	return old + qty, nil
}

// Withdraw removes qty units of item and returns the remaining quantity.
// An entry that reaches zero is deleted.
func (l *Ledger) Withdraw(item string, qty int64) (int64, error) {
	name := Normalize(item)
	if !l.st.contains(name) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}

	old := l.st.stock[name]
	if old < qty {
		return old, &InsufficientStockError{Item: name, Requested: qty, Available: old}
	}

	next := maps.Clone(l.st.stock)
	remaining := old - qty
	if remaining == 0 {
		delete(next, name)
	} else {
		next[name] = remaining
	}
	if err := l.st.store.SaveLedger(next); err != nil {
		return old, &PersistenceError{Record: "ledger", Err: err}
	}
	l.st.stock = next
	return remaining, nil
}

// Quantity returns the stock held for item; zero when there is no entry.
func (l *Ledger) Quantity(item string) int64 {
	return l.st.stock[Normalize(item)]
}

// Len returns the number of stocked items.
func (l *Ledger) Len() int { return len(l.st.stock) }

// Units returns the total number of units across all items.
func (l *Ledger) Units() int64 {
	var total int64
	for _, q := range l.st.stock {
		total += q
	}
	return total
}

// Snapshot yields every stocked item with its quantity, in catalog order.
func (l *Ledger) Snapshot() iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for _, it := range l.st.items {
			q, ok := l.st.stock[it]
			if !ok {
				continue
			}
			if !yield(it, q) {
				return
			}
		}
	}
}
