package query

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maglo/maglo/pkg/client"
	"github.com/maglo/maglo/pkg/domain"
)

// DashboardConfig carries the per-resource fetch policies. Zero values fall
// back to the defaults in DefaultDashboardConfig.
type DashboardConfig struct {
	RecentLimit int

	Retries    int
	RetryDelay time.Duration
	Backoff    bool

	StaleSummary      time.Duration
	StaleCapital      time.Duration
	StaleWallets      time.Duration
	StaleTransactions time.Duration
	StaleTransfers    time.Duration
}

// DefaultDashboardConfig returns the design defaults: 3 retries at 1s, three
// recent transactions, 5 minute windows except 2 minutes for transactions.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		RecentLimit:       3,
		Retries:           3,
		RetryDelay:        time.Second,
		StaleSummary:      5 * time.Minute,
		StaleCapital:      5 * time.Minute,
		StaleWallets:      5 * time.Minute,
		StaleTransactions: 2 * time.Minute,
		StaleTransfers:    5 * time.Minute,
	}
}

// Dashboard composes the five resource queries into one unified view. It
// stores nothing itself: flags are derived from the underlying states on
// every call.
type Dashboard struct {
	Summary      *Query[*domain.FinancialSummary]
	Capital      *Query[*domain.WorkingCapital]
	Wallets      *Query[[]domain.Wallet]
	Transactions *Query[[]domain.Transaction]
	Transfers    *Query[[]domain.ScheduledTransfer]
}

// NewDashboard wires the five queries to the API client.
func NewDashboard(c *client.Client, notify Notifier, cfg DashboardConfig) *Dashboard {
	def := DefaultDashboardConfig()
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = def.RecentLimit
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}

	policy := func(stale, fallback time.Duration) Policy {
		if stale <= 0 {
			stale = fallback
		}
		return Policy{
			Retries:     cfg.Retries,
			Delay:       cfg.RetryDelay,
			Backoff:     cfg.Backoff,
			StaleAfter:  stale,
			NotifyError: true,
		}
	}

	limit := cfg.RecentLimit
	return &Dashboard{
		Summary: New(ResourceSummary, func(ctx context.Context) (*domain.FinancialSummary, error) {
			return c.GetFinancialSummary(ctx)
		}, policy(cfg.StaleSummary, def.StaleSummary), notify),
		Capital: New(ResourceCapital, func(ctx context.Context) (*domain.WorkingCapital, error) {
			return c.GetWorkingCapital(ctx)
		}, policy(cfg.StaleCapital, def.StaleCapital), notify),
		Wallets: New(ResourceWallets, func(ctx context.Context) ([]domain.Wallet, error) {
			return c.GetWallets(ctx)
		}, policy(cfg.StaleWallets, def.StaleWallets), notify),
		Transactions: New(ResourceTransactions, func(ctx context.Context) ([]domain.Transaction, error) {
			return c.GetRecentTransactions(ctx, limit)
		}, policy(cfg.StaleTransactions, def.StaleTransactions), notify),
		Transfers: New(ResourceTransfers, func(ctx context.Context) ([]domain.ScheduledTransfer, error) {
			return c.GetScheduledTransfers(ctx)
		}, policy(cfg.StaleTransfers, def.StaleTransfers), notify),
	}
}

// Flags is the derived aggregate view: loading if any resource loads, success
// only when all five succeeded, error if at least one failed. Errors always
// carries all five resource keys; absent errors are nil.
type Flags struct {
	IsLoading bool
	IsSuccess bool
	HasError  bool
	Errors    map[string]error
}

// Flags recomputes the aggregate from the five underlying states. Never
// cached, so it cannot go stale.
func (d *Dashboard) Flags() Flags {
	su := d.Summary.State()
	ca := d.Capital.State()
	wa := d.Wallets.State()
	tx := d.Transactions.State()
	tr := d.Transfers.State()

	return Flags{
		IsLoading: su.IsLoading || ca.IsLoading || wa.IsLoading || tx.IsLoading || tr.IsLoading,
		IsSuccess: su.IsSuccess && ca.IsSuccess && wa.IsSuccess && tx.IsSuccess && tr.IsSuccess,
		HasError:  su.IsError || ca.IsError || wa.IsError || tx.IsError || tr.IsError,
		Errors: map[string]error{
			ResourceSummary:      su.Err,
			ResourceCapital:      ca.Err,
			ResourceWallets:      wa.Err,
			ResourceTransactions: tx.Err,
			ResourceTransfers:    tr.Err,
		},
	}
}

// Data bundles the last-good values of all five resources. Fields are zero
// for resources that have never loaded.
type Data struct {
	Summary      *domain.FinancialSummary
	Capital      *domain.WorkingCapital
	Wallets      []domain.Wallet
	Transactions []domain.Transaction
	Transfers    []domain.ScheduledTransfer
}

// Data returns the cached last-good payloads.
func (d *Dashboard) Data() Data {
	return Data{
		Summary:      d.Summary.State().Data,
		Capital:      d.Capital.State().Data,
		Wallets:      d.Wallets.State().Data,
		Transactions: d.Transactions.State().Data,
		Transfers:    d.Transfers.State().Data,
	}
}

// RefetchAll triggers all five fetches concurrently and returns without
// waiting. Completion is observed through the aggregate state changing.
func (d *Dashboard) RefetchAll(ctx context.Context) {
	go d.Summary.Fetch(ctx)
	go d.Capital.Fetch(ctx)
	go d.Wallets.Fetch(ctx)
	go d.Transactions.Fetch(ctx)
	go d.Transfers.Fetch(ctx)
}

// FetchAll runs all five fetches concurrently and waits for every one to
// settle. One resource failing does not cancel the others; the first error is
// returned and the per-resource breakdown stays available via Flags.
func (d *Dashboard) FetchAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return d.Summary.Fetch(ctx).Err })
	g.Go(func() error { return d.Capital.Fetch(ctx).Err })
	g.Go(func() error { return d.Wallets.Fetch(ctx).Err })
	g.Go(func() error { return d.Transactions.Fetch(ctx).Err })
	g.Go(func() error { return d.Transfers.Fetch(ctx).Err })
	return g.Wait()
}

// RefetchStale starts background refetches for every query whose last success
// has outlived its staleness window. Returns the number of refetches started.
func (d *Dashboard) RefetchStale(ctx context.Context) int {
	now := time.Now()
	n := 0
	if d.Summary.IsStale(now) {
		go d.Summary.Fetch(ctx)
		n++
	}
	if d.Capital.IsStale(now) {
		go d.Capital.Fetch(ctx)
		n++
	}
	if d.Wallets.IsStale(now) {
		go d.Wallets.Fetch(ctx)
		n++
	}
	if d.Transactions.IsStale(now) {
		go d.Transactions.Fetch(ctx)
		n++
	}
	if d.Transfers.IsStale(now) {
		go d.Transfers.Fetch(ctx)
		n++
	}
	return n
}
