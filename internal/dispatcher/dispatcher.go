package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/petasbytes/gudang-bot/commands"
	"github.com/petasbytes/gudang-bot/internal/metrics"
	"github.com/petasbytes/gudang-bot/internal/ratelimit"
	"github.com/petasbytes/gudang-bot/internal/telemetry"
	"github.com/petasbytes/gudang-bot/warehouse"
)

// SchemaRegistrar declares the command schemas on the chat platform.
// Declaring the same definitions twice must have no further effect.
type SchemaRegistrar interface {
	Declare(ctx context.Context, defs []commands.Definition) error
}

const defaultRefreshTimeout = 15 * time.Second

// Dispatcher routes invocations to the catalog and ledger it owns.
type Dispatcher struct {
	mu        sync.Mutex
	catalog   *warehouse.Catalog
	ledger    *warehouse.Ledger
	registrar SchemaRegistrar

	renderer       Renderer
	limiter        *ratelimit.Limiter
	metrics        *metrics.Metrics
	log            *zap.Logger
	now            func() time.Time
	refreshTimeout time.Duration
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithRenderer sets the reply renderer.
func WithRenderer(r Renderer) Option { return func(d *Dispatcher) { d.renderer = r } }

// WithLimiter throttles invocations per user.
func WithLimiter(l *ratelimit.Limiter) Option { return func(d *Dispatcher) { d.limiter = l } }

// WithMetrics records command outcomes.
func WithMetrics(m *metrics.Metrics) Option { return func(d *Dispatcher) { d.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option { return func(d *Dispatcher) { d.now = now } }

// WithRefreshTimeout bounds each schema declaration.
func WithRefreshTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if t > 0 {
			d.refreshTimeout = t
		}
	}
}

// New returns a Dispatcher over catalog and ledger that redeclares schemas through registrar.
func New(catalog *warehouse.Catalog, ledger *warehouse.Ledger, registrar SchemaRegistrar, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		catalog:        catalog,
		ledger:         ledger,
		registrar:      registrar,
		renderer:       DefaultRenderer(),
		log:            zap.NewNop(),
		now:            time.Now,
		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.metrics.SetInventory(catalog.Len(), ledger.Units())
	return d
}

// Definitions returns the command definitions for the current catalog.
func (d *Dispatcher) Definitions() []commands.Definition {
	d.mu.Lock()
	defer d.mu.Unlock()
	return commands.Registry(slices.Collect(d.catalog.Items()))
}

// Declare publishes the command schemas. It is called once at startup.
func (d *Dispatcher) Declare(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refresh(ctx)
}

// ItemChoices returns up to limit catalog names containing the normalized query,
// names starting with it first. It backs autocomplete once the catalog
// outgrows the platform's choice limit.
func (d *Dispatcher) ItemChoices(query string, limit int) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	q := warehouse.Normalize(query)
	var prefixed, containing []string
	for it := range d.catalog.Items() {
		switch {
		case strings.HasPrefix(it, q):
			prefixed = append(prefixed, it)
		case strings.Contains(it, q):
			containing = append(containing, it)
		}
	}
	out := append(prefixed, containing...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Handle runs one invocation to completion and returns its reply.
func (d *Dispatcher) Handle(ctx context.Context, inv Invocation) Reply {
	start := d.now()
	ctx = telemetry.WithInteractionID(ctx, inv.ID)

	var reply Reply
	if !d.limiter.Allow(inv.UserID, start) {
		reply = Reply{
			Text:    "Terlalu banyak perintah, tunggu sebentar lalu coba lagi.",
			Outcome: OutcomeThrottled,
			Err:     errThrottled,
		}
	} else {
		d.mu.Lock()
		reply = d.dispatch(ctx, inv.Command)
		d.metrics.SetInventory(d.catalog.Len(), d.ledger.Units())
		d.mu.Unlock()
	}

	d.observe(ctx, inv, reply, start)
	return reply
}

var (
	errThrottled      = errors.New("too many commands")
	errUnknownCommand = errors.New("unknown command")
)

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command) Reply {
	switch c := cmd.(type) {
	case commands.AddItem:
		name, err := d.catalog.Add(c.Item)
		if err != nil {
			return d.failure(c.Kind(), name, err)
		}
		return d.afterCatalogChange(ctx,
			fmt.Sprintf("Berhasil menambahkan item **%s** ke daftar master.", name),
			fmt.Sprintf("Item **%s** sudah ditambahkan", name))

	case commands.RemoveItem:
		name, err := d.catalog.Remove(c.Item)
		if err != nil {
			return d.failure(c.Kind(), name, err)
		}
		return d.afterCatalogChange(ctx,
			fmt.Sprintf("Berhasil menghapus item **%s** dari daftar master dan gudang.", name),
			fmt.Sprintf("Item **%s** sudah dihapus", name))

	case commands.Deposit:
		qty, err := d.ledger.Deposit(c.Item, c.Quantity)
		if err != nil {
			return d.failure(c.Kind(), warehouse.Normalize(c.Item), err)
		}
		return Reply{Text: fmt.Sprintf("Berhasil deposit %d **%s**. Stok sekarang: %d", c.Quantity, warehouse.Normalize(c.Item), qty)}

	case commands.Withdraw:
		qty, err := d.ledger.Withdraw(c.Item, c.Quantity)
		if err != nil {
			return d.failure(c.Kind(), warehouse.Normalize(c.Item), err)
		}
		return Reply{Text: fmt.Sprintf("Berhasil withdraw %d **%s**. Stok sekarang: %d", c.Quantity, warehouse.Normalize(c.Item), qty)}

	case commands.ListInventory:
		return Reply{Text: d.renderer.Inventory(d.ledger.Snapshot())}

	case commands.Help:
		return Reply{Text: d.renderer.Truncate(commands.HelpText())}
	}

	return Reply{Text: "Perintah tidak dikenal.", Outcome: OutcomeRejected, Err: errUnknownCommand}
}

// afterCatalogChange redeclares the schemas after a persisted catalog change.
func (d *Dispatcher) afterCatalogChange(ctx context.Context, okText, changedText string) Reply {
	if err := d.refresh(ctx); err != nil {
		return Reply{
			Text: changedText + ", tetapi daftar pilihan perintah gagal diperbarui. " +
				"Pilihan item di /deposit dan /withdraw mungkin belum sesuai, silakan coba lagi nanti.",
			Outcome: OutcomePartial,
			Refresh: RefreshFailed,
			Err:     err,
		}
	}
	return Reply{Text: okText, Refresh: RefreshSucceeded}
}

// refresh must be called with d.mu held.
func (d *Dispatcher) refresh(ctx context.Context) error {
	defs := commands.Registry(slices.Collect(d.catalog.Items()))

	ctx, cancel := context.WithTimeout(ctx, d.refreshTimeout)
	defer cancel()

	err := d.registrar.Declare(ctx, defs)
	d.metrics.ObserveSchemaRefresh(err == nil)
	if err != nil {
		d.log.Error("command schema refresh failed", zap.Int("items", d.catalog.Len()), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSchemaRefresh, err)
	}
	d.log.Info("command schemas declared", zap.Int("items", d.catalog.Len()))
	return nil
}

// failure maps a catalog or ledger error to a reply.
func (d *Dispatcher) failure(kind commands.Kind, item string, err error) Reply {
	if warehouse.IsDomainError(err) {
		return Reply{Text: rejection(kind, item, err), Outcome: OutcomeRejected, Err: err}
	}

	d.log.Error("command failed", zap.Stringer("command", kind), zap.Error(err))
	return Reply{
		Text:    "Gagal menyimpan data gudang, silakan coba lagi.",
		Outcome: OutcomeFailed,
		Err:     err,
	}
}

func rejection(kind commands.Kind, item string, err error) string {
	var short *warehouse.InsufficientStockError
	switch {
	case errors.Is(err, warehouse.ErrInvalidName) && item == "":
		return "Nama item tidak boleh kosong."
	case errors.Is(err, warehouse.ErrInvalidName):
		return fmt.Sprintf("Nama item maksimal %d karakter.", warehouse.MaxNameRunes)
	case errors.Is(err, warehouse.ErrAlreadyExists):
		return fmt.Sprintf("Item **%s** sudah ada di daftar master.", item)
	case errors.Is(err, warehouse.ErrNotFound):
		return fmt.Sprintf("Item **%s** tidak ditemukan di daftar master.", item)
	case errors.Is(err, warehouse.ErrUnknownItem) && kind == commands.KindDeposit:
		return fmt.Sprintf("Item **%s** tidak ada di daftar master. Silakan tambahkan dulu dengan /tambah.", item)
	case errors.Is(err, warehouse.ErrUnknownItem):
		return fmt.Sprintf("Item **%s** tidak ada di daftar master.", item)
	case errors.Is(err, warehouse.ErrInvalidQuantity):
		return "Jumlah harus bilangan bulat positif."
	case errors.As(err, &short):
		return fmt.Sprintf("Stok tidak cukup. Stok tersedia: %d", short.Available)
	}
	return err.Error()
}

func (d *Dispatcher) observe(ctx context.Context, inv Invocation, reply Reply, start time.Time) {
	kind := "unknown"
	if inv.Command != nil {
		kind = inv.Command.Kind().String()
	}
	elapsed := d.now().Sub(start)

	d.metrics.ObserveCommand(kind, reply.Outcome.String())

	if reply.Outcome == OutcomeRejected || reply.Outcome == OutcomeThrottled {
		d.log.Debug("command rejected",
			zap.String("command", kind),
			zap.String("interaction_id", inv.ID),
			zap.Error(reply.Err))
	}

	id, _ := telemetry.InteractionIDFromContext(ctx)
	telemetry.RecordCommand(telemetry.CommandEvent{
		InteractionID: id,
		Command:       kind,
		Outcome:       reply.Outcome.String(),
		Refresh:       reply.Refresh.String(),
		DurationMS:    elapsed.Milliseconds(),
		ReplySize:     len(reply.Text),
	})
}
