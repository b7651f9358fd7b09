package warehouse_test

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/gudang-bot/store"
	"github.com/petasbytes/gudang-bot/warehouse"
)

var errDisk = errors.New("disk full")

// memStore is an in-memory warehouse.Store with switchable save failures.
type memStore struct {
	items       []string
	stock       map[string]int64
	failCatalog bool
	failLedger  bool
	catalogSave int
	ledgerSave  int
}

func (m *memStore) LoadCatalog() ([]string, error) { return slices.Clone(m.items), nil }

func (m *memStore) LoadLedger() (map[string]int64, error) { return maps.Clone(m.stock), nil }

func (m *memStore) SaveCatalog(items []string) error {
	if m.failCatalog {
		return errDisk
	}
	m.catalogSave++
	m.items = slices.Clone(items)
	return nil
}

func (m *memStore) SaveLedger(stock map[string]int64) error {
	if m.failLedger {
		return errDisk
	}
	m.ledgerSave++
	m.stock = maps.Clone(stock)
	return nil
}

func newWarehouse(t *testing.T, ms *memStore) (*warehouse.Catalog, *warehouse.Ledger) {
	t.Helper()
	st, _, err := warehouse.Load(ms)
	require.NoError(t, err)
	return warehouse.NewCatalog(st), warehouse.NewLedger(st)
}

func snapshot(l *warehouse.Ledger) map[string]int64 {
	return maps.Collect(l.Snapshot())
}

func TestScenario_BerasLifecycle(t *testing.T) {
	ms := &memStore{}
	cat, led := newWarehouse(t, ms)

	name, err := cat.Add("Beras ")
	require.NoError(t, err)
	assert.Equal(t, "beras", name)
	assert.Equal(t, []string{"beras"}, slices.Collect(cat.Items()))

	q, err := led.Deposit("beras", 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, q)

	q, err = led.Withdraw("beras", 3)
	require.NoError(t, err)
	assert.EqualValues(t, 7, q)

	q, err = led.Withdraw("beras", 7)
	require.NoError(t, err)
	assert.EqualValues(t, 0, q)
	assert.Empty(t, snapshot(led))
	assert.NotContains(t, ms.stock, "beras")
}

func TestCatalog_AddTwiceFailsAlreadyExists(t *testing.T) {
	for _, raw := range []string{"gula", "  GULA", "Gula\t"} {
		cat, _ := newWarehouse(t, &memStore{items: []string{"gula"}})
		_, err := cat.Add(raw)
		require.ErrorIs(t, err, warehouse.ErrAlreadyExists)
		assert.Equal(t, 1, cat.Len())
	}
}

func TestCatalog_AddEmptyNameRejected(t *testing.T) {
	ms := &memStore{}
	cat, _ := newWarehouse(t, ms)
	_, err := cat.Add("   ")
	require.ErrorIs(t, err, warehouse.ErrInvalidName)
	assert.Zero(t, ms.catalogSave)
}

func TestCatalog_AddRejectsOverlongNames(t *testing.T) {
	ms := &memStore{}
	cat, _ := newWarehouse(t, ms)

	name, err := cat.Add(strings.Repeat("a", warehouse.MaxNameRunes))
	require.NoError(t, err)
	assert.Equal(t, warehouse.MaxNameRunes, utf8.RuneCountInString(name))

	for _, raw := range []string{
		strings.Repeat("b", warehouse.MaxNameRunes+1),
		// 60 runes that lower-case to 120.
		strings.Repeat("İ", 60),
	} {
		_, err := cat.Add(raw)
		require.ErrorIs(t, err, warehouse.ErrInvalidName)
	}
	assert.Equal(t, 1, cat.Len())
	assert.Equal(t, 1, ms.catalogSave)
}

func TestCatalog_RemoveMissingFailsNotFound(t *testing.T) {
	cat, _ := newWarehouse(t, &memStore{items: []string{"gula"}})
	_, err := cat.Remove("beras")
	require.ErrorIs(t, err, warehouse.ErrNotFound)
	assert.Equal(t, 1, cat.Len())
}

func TestCatalog_RemoveCascadesLedger(t *testing.T) {
	ms := &memStore{items: []string{"beras", "gula"}, stock: map[string]int64{"beras": 4, "gula": 2}}
	cat, led := newWarehouse(t, ms)

	name, err := cat.Remove(" BERAS")
	require.NoError(t, err)
	assert.Equal(t, "beras", name)

	assert.Equal(t, map[string]int64{"gula": 2}, snapshot(led))
	assert.Equal(t, map[string]int64{"gula": 2}, ms.stock)
	assert.Equal(t, []string{"gula"}, ms.items)

	_, err = led.Deposit("beras", 1)
	require.ErrorIs(t, err, warehouse.ErrUnknownItem)
}

func TestCatalog_RemoveWithoutStockSkipsLedgerSave(t *testing.T) {
	ms := &memStore{items: []string{"beras"}}
	cat, _ := newWarehouse(t, ms)
	_, err := cat.Remove("beras")
	require.NoError(t, err)
	assert.Zero(t, ms.ledgerSave)
	assert.Equal(t, 1, ms.catalogSave)
}

func TestCatalog_ItemsKeepsInsertionOrderAndRestarts(t *testing.T) {
	cat, _ := newWarehouse(t, &memStore{})
	for _, it := range []string{"minyak", "beras", "gula"} {
		_, err := cat.Add(it)
		require.NoError(t, err)
	}
	seq := cat.Items()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, []string{"minyak", "beras", "gula"}, first)
	assert.Equal(t, first, second)

	// Early break must not panic.
	for range seq {
		break
	}
}

func TestLedger_UnknownItem(t *testing.T) {
	_, led := newWarehouse(t, &memStore{items: []string{"gula"}})

	_, err := led.Deposit("beras", 5)
	require.ErrorIs(t, err, warehouse.ErrUnknownItem)
	_, err = led.Withdraw("beras", 5)
	require.ErrorIs(t, err, warehouse.ErrUnknownItem)
	// UnknownItem wins over an invalid quantity.
	_, err = led.Deposit("beras", -1)
	require.ErrorIs(t, err, warehouse.ErrUnknownItem)
}

func TestLedger_InvalidQuantity(t *testing.T) {
	ms := &memStore{items: []string{"gula"}, stock: map[string]int64{"gula": 3}}
	_, led := newWarehouse(t, ms)

	for _, q := range []int64{0, -1, math.MinInt64} {
		_, err := led.Deposit("gula", q)
		require.ErrorIs(t, err, warehouse.ErrInvalidQuantity)
		_, err = led.Withdraw("gula", q)
		require.ErrorIs(t, err, warehouse.ErrInvalidQuantity)
	}
	_, err := led.Deposit("gula", math.MaxInt64)
	require.ErrorIs(t, err, warehouse.ErrInvalidQuantity)

	assert.EqualValues(t, 3, led.Quantity("gula"))
	assert.Zero(t, ms.ledgerSave)
}

func TestLedger_DepositsAccumulate(t *testing.T) {
	cases := [][2]int64{{1, 1}, {3, 9}, {100, 1}, {1 << 40, 1 << 40}}
	for _, c := range cases {
		_, led := newWarehouse(t, &memStore{items: []string{"beras"}})
		_, err := led.Deposit("beras", c[0])
		require.NoError(t, err)
		q, err := led.Deposit("beras", c[1])
		require.NoError(t, err)
		assert.Equal(t, c[0]+c[1], q)
		assert.Equal(t, c[0]+c[1], led.Quantity("beras"))
	}
}

func TestLedger_WithdrawNeverNegative(t *testing.T) {
	ms := &memStore{items: []string{"beras"}, stock: map[string]int64{"beras": 5}}
	_, led := newWarehouse(t, ms)

	q, err := led.Withdraw("beras", 6)
	require.ErrorIs(t, err, warehouse.ErrInsufficientStock)
	var ise *warehouse.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.EqualValues(t, 5, ise.Available)
	assert.EqualValues(t, 6, ise.Requested)
	assert.EqualValues(t, 5, q)
	assert.EqualValues(t, 5, led.Quantity("beras"))
	assert.Zero(t, ms.ledgerSave)
}

func TestLedger_WithdrawFromAbsentEntryReportsZero(t *testing.T) {
	_, led := newWarehouse(t, &memStore{items: []string{"beras"}})
	_, err := led.Withdraw("beras", 1)
	var ise *warehouse.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Zero(t, ise.Available)
}

func TestPersistenceFailure_LeavesStateUnchanged(t *testing.T) {
	ms := &memStore{items: []string{"beras"}, stock: map[string]int64{"beras": 5}}
	cat, led := newWarehouse(t, ms)
	ms.failCatalog, ms.failLedger = true, true

	_, err := cat.Add("gula")
	require.ErrorIs(t, err, warehouse.ErrPersistence)
	require.ErrorIs(t, err, errDisk)
	assert.False(t, cat.Contains("gula"))

	_, err = led.Deposit("beras", 1)
	require.ErrorIs(t, err, warehouse.ErrPersistence)
	assert.EqualValues(t, 5, led.Quantity("beras"))

	_, err = led.Withdraw("beras", 5)
	require.ErrorIs(t, err, warehouse.ErrPersistence)
	assert.EqualValues(t, 5, led.Quantity("beras"))

	_, err = cat.Remove("beras")
	require.ErrorIs(t, err, warehouse.ErrPersistence)
	assert.True(t, cat.Contains("beras"))
	assert.EqualValues(t, 5, led.Quantity("beras"))
}

func TestRemove_CatalogSaveFailureAfterLedgerSave(t *testing.T) {
	ms := &memStore{items: []string{"beras"}, stock: map[string]int64{"beras": 5}}
	cat, led := newWarehouse(t, ms)
	ms.failCatalog = true

	_, err := cat.Remove("beras")
	require.ErrorIs(t, err, warehouse.ErrPersistence)

	// The item stays registered with no stock; the ledger never names an unknown item.
	assert.True(t, cat.Contains("beras"))
	assert.Zero(t, led.Quantity("beras"))
	assert.Empty(t, ms.stock)
}

func TestLoad_NormalizesAndDropsInvalidEntries(t *testing.T) {
	ms := &memStore{
		items: []string{"Beras", "beras ", "", "Gula"},
		stock: map[string]int64{"BERAS": 2, "gula": 0, "minyak": 4, "garam": -3},
	}
	st, report, err := warehouse.Load(ms)
	require.NoError(t, err)

	cat := warehouse.NewCatalog(st)
	led := warehouse.NewLedger(st)
	assert.Equal(t, []string{"beras", "gula"}, slices.Collect(cat.Items()))
	assert.Equal(t, map[string]int64{"beras": 2}, snapshot(led))
	assert.Equal(t, warehouse.LoadReport{DroppedItems: 2, DroppedEntries: 3}, report)

	t.Run("overlong names", func(t *testing.T) {
		long := strings.Repeat("İ", 60)
		st, report, err := warehouse.Load(&memStore{
			items: []string{long, "gula"},
			stock: map[string]int64{long: 3, "gula": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"gula"}, slices.Collect(warehouse.NewCatalog(st).Items()))
		assert.Equal(t, warehouse.LoadReport{DroppedItems: 1, DroppedEntries: 1}, report)
	})

	t.Run("merged keys never overflow", func(t *testing.T) {
		st, report, err := warehouse.Load(&memStore{
			items: []string{"beras"},
			stock: map[string]int64{"Beras": math.MaxInt64, "beras ": 1},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"beras": math.MaxInt64}, snapshot(warehouse.NewLedger(st)))
		assert.Equal(t, warehouse.LoadReport{DroppedEntries: 1}, report)
	})
}

type failingLoadStore struct{ memStore }

func (f *failingLoadStore) LoadLedger() (map[string]int64, error) { return nil, store.ErrDecode }

func TestLoad_PropagatesDecodeFailure(t *testing.T) {
	st, _, err := warehouse.Load(&failingLoadStore{})
	require.ErrorIs(t, err, store.ErrDecode)
	assert.Nil(t, st)
}

func TestLoad_FromFileStoreRoundTrip(t *testing.T) {
	fs, err := store.Open(t.TempDir())
	require.NoError(t, err)

	st, _, err := warehouse.Load(fs)
	require.NoError(t, err)
	cat, led := warehouse.NewCatalog(st), warehouse.NewLedger(st)
	_, err = cat.Add("Beras")
	require.NoError(t, err)
	_, err = cat.Add("gula")
	require.NoError(t, err)
	_, err = led.Deposit("gula", 12)
	require.NoError(t, err)

	reloaded, report, err := warehouse.Load(fs)
	require.NoError(t, err)
	assert.Zero(t, report)
	got := maps.Collect(warehouse.NewLedger(reloaded).Snapshot())
	if diff := cmp.Diff(map[string]int64{"gula": 12}, got); diff != "" {
		t.Fatalf("ledger mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"beras", "gula"}, slices.Collect(warehouse.NewCatalog(reloaded).Items()))
}

func TestLedger_UnitsAndLen(t *testing.T) {
	_, led := newWarehouse(t, &memStore{items: []string{"a", "b"}, stock: map[string]int64{"a": 2, "b": 3}})
	assert.EqualValues(t, 5, led.Units())
	assert.Equal(t, 2, led.Len())
}
