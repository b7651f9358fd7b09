package warehouse

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxNameRunes is the longest item name accepted. Discord rejects choice
// names above 100 characters, and one such name would fail every declaration.
const MaxNameRunes = 100

// Store is the persistence the warehouse flushes to after every mutation.
type Store interface {
	LoadCatalog() ([]string, error)
	SaveCatalog(items []string) error
	LoadLedger() (map[string]int64, error)
	SaveLedger(stock map[string]int64) error
}

// State is the in-memory copy of both records. It is built once at startup
// and shared by a Catalog and a Ledger. State is not safe for concurrent use;
// callers serialize access.
type State struct {
	store Store
	items []string // insertion order
	index map[string]struct{}
	stock map[string]int64
}

// LoadReport counts stored entries that were dropped while enforcing the invariants.
type LoadReport struct {
	DroppedItems   int
	DroppedEntries int
}

// Normalize trims surrounding whitespace and lower-cases an item name.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// validName reports whether a normalized name can be a catalog member.
func validName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= MaxNameRunes
}

// Load reads both records from s. Stored names are normalized and
// de-duplicated; names that are empty or too long are dropped, and so are
// ledger entries that are not catalog members, not positive, or that would
// overflow when merged with another key normalizing to the same name. A record that fails to load aborts with an error and no State.
func Load(s Store) (*State, LoadReport, error) {
	var report LoadReport

	rawItems, err := s.LoadCatalog()
	if err != nil {
		return nil, report, fmt.Errorf("load catalog: %w", err)
	}
	rawStock, err := s.LoadLedger()
	if err != nil {
		return nil, report, fmt.Errorf("load ledger: %w", err)
	}

	st := &State{
		store: s,
		items: make([]string, 0, len(rawItems)),
		index: make(map[string]struct{}, len(rawItems)),
		stock: make(map[string]int64, len(rawStock)),
	}
	for _, raw := range rawItems {
		name := Normalize(raw)
		if _, dup := st.index[name]; dup || !validName(name) {
			report.DroppedItems++
			continue
		}
		st.items = append(st.items, name)
		st.index[name] = struct{}{}
	}
	// Sorted keys make the surviving entry of an overflowing merge deterministic.
	for _, raw := range slices.Sorted(maps.Keys(rawStock)) {
		qty := rawStock[raw]
		name := Normalize(raw)
		if _, ok := st.index[name]; !ok || qty <= 0 || qty > math.MaxInt64-st.stock[name] {
			report.DroppedEntries++
			continue
		}
		st.stock[name] += qty
	}
	return st, report, nil
}

func (st *State) contains(name string) bool {
	_, ok := st.index[name]
	return ok
}
