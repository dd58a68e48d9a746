// Package refdata maintains the reference lists screens need before
// they can render a form: territories, expense types, and the
// customer, supplier, item and staff lookup lists. Fetches run through
// a shared worker pool, results sit in a TTL cache, and every
// successful fetch is snapshotted to a local sqlite file so dropdowns
// still populate when the backend is unreachable.
package refdata

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tijarah-io/tijarah/internal/model"
	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/cache"
	"github.com/tijarah-io/tijarah/pkg/errors"
)

// Kind names one reference list.
type Kind string

// Reference list kinds and their backend endpoints.
const (
	KindTerritories  Kind = "territories"
	KindExpenseTypes Kind = "expense_types"
	KindCustomers    Kind = "customers"
	KindSuppliers    Kind = "suppliers"
	KindItems        Kind = "items"
	KindStaff        Kind = "staff"
)

var endpoints = map[Kind]string{
	KindTerritories:  "/territories",
	KindExpenseTypes: "/expense-types",
	KindCustomers:    "/customers/all",
	KindSuppliers:    "/suppliers/all",
	KindItems:        "/items/all",
	KindStaff:        "/staff/all",
}

const (
	defaultTTL      = 5 * time.Minute
	defaultPoolSize = 4
)

// snapshot is the sqlite row holding one list's last good payload.
type snapshot struct {
	Kind      string `gorm:"primaryKey;column:kind"`
	Payload   []byte `gorm:"column:payload"`
	FetchedAt int64  `gorm:"column:fetched_at"`
}

func (snapshot) TableName() string { return "refdata_snapshots" }

// Service fetches and serves reference lists.
type Service struct {
	api   *apiclient.Client
	cache *cache.Cache[Kind, cached]
	db    *gorm.DB
	pool  *ants.Pool
}

type cached struct {
	Kind    Kind
	Payload []byte
}

// Option configures a Service.
type Option func(*options)

type options struct {
	ttl      time.Duration
	poolSize int
}

// WithTTL overrides how long a fetched list stays fresh.
func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithPoolSize overrides the prefetch worker count.
func WithPoolSize(n int) Option {
	return func(o *options) { o.poolSize = n }
}

// NewService opens the offline snapshot database at path and creates
// the worker pool. An empty path keeps everything in memory.
func NewService(api *apiclient.Client, path string, opts ...Option) (*Service, error) {
	o := options{ttl: defaultTTL, poolSize: defaultPoolSize}
	for _, opt := range opts {
		opt(&o)
	}

	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, err
	}

	return &Service{
		api:   api,
		cache: cache.New[Kind, cached](o.ttl),
		db:    db,
		pool:  pool,
	}, nil
}

// Prefetch fetches the given lists concurrently and waits for all of
// them. Individual failures are logged, not returned; a screen that
// needs a list re-requests it through the typed accessor and gets the
// error there.
func (s *Service) Prefetch(ctx context.Context, kinds ...Kind) {
	var wg sync.WaitGroup
	for _, k := range kinds {
		k := k
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			if _, err := s.payload(ctx, k); err != nil {
				logger.Warnw("refdata prefetch failed", "kind", k, "error", err)
			}
		}); err != nil {
			wg.Done()
			logger.Warnw("refdata prefetch not scheduled", "kind", k, "error", err)
		}
	}
	wg.Wait()
}

// payload returns the raw list for kind: fresh cache first, then the
// network, then the sqlite snapshot (and a stale cache entry) when the
// network is down.
func (s *Service) payload(ctx context.Context, kind Kind) ([]byte, *errors.Errno) {
	if c, ok, stale := s.cache.Get(kind); ok && !stale {
		return c.Payload, nil
	}

	res := s.api.Get(ctx, endpoints[kind], nil)
	if res.Success {
		payload := []byte(res.Data)
		s.cache.Set(kind, cached{Kind: kind, Payload: payload})
		s.persist(kind, payload)
		return payload, nil
	}

	if res.NetworkError {
		if payload, ok := s.restore(kind); ok {
			logger.Infow("serving offline refdata snapshot", "kind", kind)
			return payload, nil
		}
		if c, ok, _ := s.cache.Get(kind); ok {
			return c.Payload, nil
		}
		return nil, errors.ErrNetwork
	}
	return nil, res.Err()
}

func (s *Service) persist(kind Kind, payload []byte) {
	row := snapshot{Kind: string(kind), Payload: payload, FetchedAt: time.Now().Unix()}
	if err := s.db.Save(&row).Error; err != nil {
		logger.Warnw("refdata snapshot write failed", "kind", kind, "error", err)
	}
}

func (s *Service) restore(kind Kind) ([]byte, bool) {
	var row snapshot
	err := s.db.Where("kind = ?", string(kind)).Take(&row).Error
	if err != nil {
		return nil, false
	}
	return row.Payload, true
}

func list[T any](s *Service, ctx context.Context, kind Kind) ([]T, *errors.Errno) {
	payload, errno := s.payload(ctx, kind)
	if errno != nil {
		return nil, errno
	}
	var out []T
	if err := sonic.Unmarshal(payload, &out); err != nil {
		return nil, errors.ErrNetwork.WithCause(err)
	}
	return out, nil
}

// Territories returns the territory list for customer forms.
func (s *Service) Territories(ctx context.Context) ([]model.Territory, *errors.Errno) {
	return list[model.Territory](s, ctx, KindTerritories)
}

// ExpenseTypes returns the expense type list for expense forms.
func (s *Service) ExpenseTypes(ctx context.Context) ([]model.ExpenseType, *errors.Errno) {
	return list[model.ExpenseType](s, ctx, KindExpenseTypes)
}

// Customers returns the customer lookup list for invoices and payments.
func (s *Service) Customers(ctx context.Context) ([]model.Customer, *errors.Errno) {
	return list[model.Customer](s, ctx, KindCustomers)
}

// Suppliers returns the supplier lookup list for purchase orders.
func (s *Service) Suppliers(ctx context.Context) ([]model.Supplier, *errors.Errno) {
	return list[model.Supplier](s, ctx, KindSuppliers)
}

// Items returns the item lookup list for invoice and order lines.
func (s *Service) Items(ctx context.Context) ([]model.Item, *errors.Errno) {
	return list[model.Item](s, ctx, KindItems)
}

// Staff returns the staff lookup list for sales targets.
func (s *Service) Staff(ctx context.Context) ([]model.Staff, *errors.Errno) {
	return list[model.Staff](s, ctx, KindStaff)
}

// Invalidate drops a cached list so the next read refetches.
func (s *Service) Invalidate(kind Kind) {
	s.cache.Del(kind)
}

// Close releases the worker pool and the snapshot database.
func (s *Service) Close() error {
	s.pool.Release()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
