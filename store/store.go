package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/petasbytes/gudang-bot/internal/fsops"
)

// Default record file names, kept compatible with existing bot data.
const (
	DefaultCatalogFile = "masterItems.json"
	DefaultLedgerFile  = "warehouse.json"
)

// ErrDecode marks a record file that exists but cannot be decoded.
var ErrDecode = errors.New("store: record does not decode")

// Store reads and writes the catalog and ledger records under one data root.
type Store struct {
	root        *fsops.Root
	catalogFile string
	ledgerFile  string
}

// Option customises a Store.
type Option func(*Store)

// WithCatalogFile overrides the catalog record name.
func WithCatalogFile(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.catalogFile = name
		}
	}
}

// WithLedgerFile overrides the ledger record name.
func WithLedgerFile(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.ledgerFile = name
		}
	}
}

// Open returns a Store rooted at dataDir, creating the directory when missing.
func Open(dataDir string, opts ...Option) (*Store, error) {
	root, err := fsops.NewRoot(dataDir)
	if err != nil {
		return nil, fmt.Errorf("store: open data root: %w", err)
	}
	s := &Store{root: root, catalogFile: DefaultCatalogFile, ledgerFile: DefaultLedgerFile}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the absolute data directory.
func (s *Store) Dir() string { return s.root.Dir() }

// LoadCatalog returns the stored item names, or an empty slice when no record exists yet.
func (s *Store) LoadCatalog() ([]string, error) {
	items, err := load[[]string](s.root, s.catalogFile)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// SaveCatalog replaces the catalog record.
func (s *Store) SaveCatalog(items []string) error {
	if items == nil {
		items = []string{}
	}
	return save(s.root, s.catalogFile, items)
}

// LoadLedger returns the stored quantities, or an empty map when no record exists yet.
func (s *Store) LoadLedger() (map[string]int64, error) {
	stock, err := load[map[string]int64](s.root, s.ledgerFile)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = map[string]int64{}
	}
	return stock, nil
}

// SaveLedger replaces the ledger record.
func (s *Store) SaveLedger(stock map[string]int64) error {
	if stock == nil {
		stock = map[string]int64{}
	}
	return save(s.root, s.ledgerFile, stock)
}

func load[T any](root *fsops.Root, name string) (T, error) {
	var v T
	b, err := root.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return v, fmt.Errorf("store: read %s: %w", name, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return v, nil
}

func save[T any](root *fsops.Root, name string, v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := root.WriteFile(name, append(b, '\n')); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}
