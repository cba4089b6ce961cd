// Package query implements the dashboard's data-fetching core: one bounded-
// retry fetch-state machine per resource, plus an aggregator that derives
// unified flags across all five and coordinates refetches.
package query

import (
	"context"
	"sync"
	"time"
)

// Resource names. These are the keys of the aggregate errors map and the
// identifiers handed to the Notifier.
const (
	ResourceSummary      = "financialSummary"
	ResourceCapital      = "workingCapital"
	ResourceWallets      = "wallets"
	ResourceTransactions = "recentTransactions"
	ResourceTransfers    = "scheduledTransfers"
)

var labels = map[string]string{
	ResourceSummary:      "financial summary",
	ResourceCapital:      "working capital",
	ResourceWallets:      "wallets",
	ResourceTransactions: "recent transactions",
	ResourceTransfers:    "scheduled transfers",
}

// Label returns the human-readable name of a resource for notifications.
func Label(resource string) string {
	if l, ok := labels[resource]; ok {
		return l
	}
	return resource
}

// Notifier receives transient user-visible notifications from the fetch
// layer. Implementations must not block.
type Notifier interface {
	Success(resource, message string)
	Error(resource, message string)
}

// NopNotifier drops all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string, string) {}
func (NopNotifier) Error(string, string)   {}

// Policy is the explicit retry/staleness configuration of a single query.
type Policy struct {
	Retries    int           // retries after the first attempt
	Delay      time.Duration // wait before each retry
	Backoff    bool          // double the delay after each failed retry
	StaleAfter time.Duration // a success older than this is eligible for auto-refetch

	NotifySuccess bool // default off
	NotifyError   bool // default on
}

// DefaultPolicy mirrors the dashboard defaults: 3 retries at 1s fixed delay,
// 5 minute staleness, errors notified.
func DefaultPolicy() Policy {
	return Policy{
		Retries:     3,
		Delay:       time.Second,
		StaleAfter:  5 * time.Minute,
		NotifyError: true,
	}
}

// State is a snapshot of one resource's fetch lifecycle. At most one of
// IsLoading, IsSuccess, IsError is true: a refetch re-enters loading and drops
// IsSuccess while Data and HasData stay put, so consumers render stale data
// with a "refreshing" marker whenever IsLoading && HasData.
type State[T any] struct {
	Data        T
	HasData     bool
	IsLoading   bool
	IsSuccess   bool
	IsError     bool
	Err         error
	LastUpdated time.Time // stamped only on a transition into success
}

// Query is a fetch-state machine for a single resource. Safe for concurrent
// use; retries are local and never coordinate with other queries.
type Query[T any] struct {
	name   string
	fetch  func(context.Context) (T, error)
	policy Policy
	notify Notifier

	mu    sync.Mutex
	state State[T]
	now   func() time.Time
}

// New creates a query for the named resource around fetch.
func New[T any](name string, fetch func(context.Context) (T, error), policy Policy, notify Notifier) *Query[T] {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Query[T]{
		name:   name,
		fetch:  fetch,
		policy: policy,
		notify: notify,
		now:    time.Now,
	}
}

// Name returns the resource name.
func (q *Query[T]) Name() string { return q.name }

// State returns the current snapshot.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// IsStale reports whether the last success is older than the staleness
// window. Queries that are idle, loading, or errored are not stale; they are
// driven by their own transitions.
func (q *Query[T]) IsStale(now time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.state.IsSuccess || q.policy.StaleAfter <= 0 {
		return false
	}
	return now.Sub(q.state.LastUpdated) > q.policy.StaleAfter
}

// Fetch runs the fetch function with the configured retry budget and returns
// the resulting state. It blocks until success, exhaustion, or context
// cancellation; callers wanting fire-and-forget run it in a goroutine and
// observe State afterwards.
func (q *Query[T]) Fetch(ctx context.Context) State[T] {
	q.begin()

	var (
		val T
		err error
	)
	delay := q.policy.Delay
	for attempt := 0; ; attempt++ {
		val, err = q.fetch(ctx)
		if err == nil {
			return q.succeed(val)
		}
		if attempt >= q.policy.Retries || ctx.Err() != nil {
			break
		}
		if !sleepCtx(ctx, delay) {
			break
		}
		if q.policy.Backoff {
			delay *= 2
		}
	}
	return q.fail(err)
}

// begin enters loading. Prior data survives; a prior error is cleared because
// the retry supersedes it.
func (q *Query[T]) begin() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.state.IsLoading = true
	q.state.IsSuccess = false
	q.state.IsError = false
	q.state.Err = nil
}

func (q *Query[T]) succeed(val T) State[T] {
	q.mu.Lock()
	q.state.Data = val
	q.state.HasData = true
	q.state.IsLoading = false
	q.state.IsSuccess = true
	q.state.IsError = false
	q.state.Err = nil
	q.state.LastUpdated = q.now()
	st := q.state
	q.mu.Unlock()

	if q.policy.NotifySuccess {
		q.notify.Success(q.name, Label(q.name)+" loaded")
	}
	return st
}

// fail records the terminal error. Data from a prior success is preserved so
// the UI can keep rendering stale values.
func (q *Query[T]) fail(err error) State[T] {
	q.mu.Lock()
	q.state.IsLoading = false
	q.state.IsSuccess = false
	q.state.IsError = true
	q.state.Err = err
	st := q.state
	q.mu.Unlock()

	if q.policy.NotifyError && err != nil {
		q.notify.Error(q.name, err.Error())
	}
	return st
}

// sleepCtx waits for d or until ctx is done. Returns false when interrupted.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
