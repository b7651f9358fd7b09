package warehouse

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Catalog manages the set of known item names.
type Catalog struct {
	st *State
}

// NewCatalog returns a Catalog operating on st.
func NewCatalog(st *State) *Catalog {
	return &Catalog{st: st}
}

// Add registers a new item and returns its normalized name.
// Names that are empty or longer than MaxNameRunes after normalization are
// rejected with ErrInvalidName.
func (c *Catalog) Add(raw string) (string, error) {
	name := Normalize(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	if !validName(name) {
		return name, fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameRunes)
	}
	if c.st.contains(name) {
		return name, fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}

	next := append(slices.Clone(c.st.items), name)
	if err := c.st.store.SaveCatalog(next); err != nil {
		return name, &PersistenceError{Record: "catalog", Err: err}
	}
	c.st.items = next
	c.st.index[name] = struct{}{}
	return name, nil
}

// Remove deletes an item from the catalog together with its ledger entry and
// returns the normalized name. The ledger is flushed first, so a failure
// between the two saves leaves a catalog member with no stock rather than
// stock for an unknown item.
func (c *Catalog) Remove(raw string) (string, error) {
	name := Normalize(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	if !c.st.contains(name) {
		return name, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if _, stocked := c.st.stock[name]; stocked {
		nextStock := maps.Clone(c.st.stock)
		delete(nextStock, name)
		if err := c.st.store.SaveLedger(nextStock); err != nil {
			return name, &PersistenceError{Record: "ledger", Err: err}
		}
		c.st.stock = nextStock
	}

	next := slices.DeleteFunc(slices.Clone(c.st.items), func(it string) bool { return it == name })
	if err := c.st.store.SaveCatalog(next); err != nil {
		return name, &PersistenceError{Record: "catalog", Err: err}
	}
	c.st.items = next
	delete(c.st.index, name)
	return name, nil
}

// Contains reports whether raw names a catalog member.
func (c *Catalog) Contains(raw string) bool {
	return c.st.contains(Normalize(raw))
}

// Len returns the number of catalog members.
func (c *Catalog) Len() int { return len(c.st.items) }

// Items yields the catalog in insertion order. The sequence is evaluated when
// ranged over and can be ranged over again; it must not be held across a mutation.
func (c *Catalog) Items() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, it := range c.st.items {
			if !yield(it) {
				return
			}
		}
	}
}
