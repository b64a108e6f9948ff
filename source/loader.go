package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/utils"
)

// LoadState is the outcome of a load as presented to the user.
type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Empty
	Failed
	Discarded
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	case Discarded:
		return "discarded"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Request identifies one load. IDs increase monotonically per Loader.
type Request struct {
	ID       uint64
	Criteria services.Criteria
}

// Result is what a Load produced. A Discarded result carries ErrStale and
// no items.
type Result[T any] struct {
	Request Request
	Items   []T
	State   LoadState
	Err     error
}

// FetchFunc loads the records for a set of criteria.
type FetchFunc[T any] func(ctx context.Context, c services.Criteria) ([]T, error)

// Loader issues requests for one collection and discards any response that
// is not for the most recent request.
type Loader[T any] struct {
	fetch   FetchFunc[T]
	timeout time.Duration
	logger  *utils.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	last   *Request
}

// NewLoader creates a Loader. Every fetch runs under timeout (DefaultTimeout
// when zero).
func NewLoader[T any](fetch FetchFunc[T], timeout time.Duration, logger *utils.Logger) *Loader[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Loader[T]{fetch: fetch, timeout: timeout, logger: logger}
}

// CollectionFetcher adapts a Source endpoint into a FetchFunc. Filtering
// happens client-side, so the criteria are not sent.
func CollectionFetcher[T any](src Source, ep models.Endpoint) FetchFunc[T] {
	return func(ctx context.Context, _ services.Criteria) ([]T, error) {
		return FetchCollection[T](ctx, src, ep)
	}
}

// Load starts a new request for c, cancelling any request still in flight.
func (l *Loader[T]) Load(ctx context.Context, c services.Criteria) Result[T] {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	req := Request{ID: l.seq, Criteria: c}
	l.last = &req
	reqCtx, cancel := context.WithTimeout(ctx, l.timeout)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	l.logger.Debug("[loader] request #%d started", req.ID)
	items, err := l.fetch(reqCtx, c)

	if !l.isLatest(req.ID) {
		l.logger.Debug("[loader] request #%d superseded, discarding response", req.ID)
		return Result[T]{Request: req, State: Discarded, Err: ErrStale}
	}

	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		l.logger.Warn("[loader] request #%d failed: %v", req.ID, err)
		return Result[T]{Request: req, State: Failed, Err: err}
	}

	if len(items) == 0 {
		return Result[T]{Request: req, Items: []T{}, State: Empty}
	}
	l.logger.Debug("[loader] request #%d loaded %d records", req.ID, len(items))
	return Result[T]{Request: req, Items: items, State: Loaded}
}

// Retry re-issues the most recent request's criteria as a new request.
func (l *Loader[T]) Retry(ctx context.Context) Result[T] {
	l.mu.Lock()
	c := services.NewCriteria()
	if l.last != nil {
		c = l.last.Criteria
	}
	l.mu.Unlock()
	return l.Load(ctx, c)
}

// Latest returns the most recently issued request, if any.
func (l *Loader[T]) Latest() (Request, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil {
		return Request{}, false
	}
	return *l.last, true
}

func (l *Loader[T]) isLatest(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq == id
}

// LoadAll fetches several endpoints through pool. Endpoints sharing a path
// are fetched once. Bodies are keyed by path; failures are joined.
func LoadAll(ctx context.Context, src Source, pool *utils.WorkerPool, eps []models.Endpoint, logger *utils.Logger) (map[string][]byte, error) {
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	var (
		mu     sync.Mutex
		bodies = make(map[string][]byte, len(eps))
		errs   []error
		seen   = utils.NewKeySet()
	)

	for _, ep := range eps {
		if !seen.Add(ep.Path) {
			logger.Debug("[loader] skipping duplicate endpoint %s", ep.Path)
			continue
		}
		pool.Submit(func() {
			body, err := src.Fetch(ctx, ep)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ep.Path, err))
				return
			}
			bodies[ep.Path] = body
		})
	}
	pool.Wait()

	logger.Debug("[loader] fetched %d/%d endpoints", len(bodies), seen.Size())
	return bodies, errors.Join(errs...)
}
