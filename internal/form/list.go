package form

import (
	"context"
	"sync"

	"github.com/kart-io/logger"

	"github.com/tijarah-io/tijarah/pkg/apiclient"
	"github.com/tijarah-io/tijarah/pkg/locale"
)

// ListConfig wires a ListController.
type ListConfig struct {
	// Fetch retrieves one page of records.
	Fetch func(ctx context.Context, page int) apiclient.Result

	// Remove deletes a record by id. Optional; Delete refuses when nil.
	Remove func(ctx context.Context, id string) apiclient.Result

	Locale *locale.Provider
}

// ListController drives a paginated record list. Pagination state comes
// from the backend page envelope; the list only ever grows in page
// order, and deletion refetches rather than splicing locally.
type ListController[T any] struct {
	mu      sync.Mutex
	cfg     ListConfig
	items   []T
	page    int
	hasMore bool
	loading bool
	alert   *Alert
	closed  bool
}

// NewListController creates an empty list controller.
func NewListController[T any](cfg ListConfig) *ListController[T] {
	return &ListController[T]{cfg: cfg, hasMore: true}
}

// Refresh discards everything and loads page 1.
func (l *ListController[T]) Refresh(ctx context.Context) Outcome {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return OutcomeDiscarded
	}
	if l.loading {
		l.mu.Unlock()
		return OutcomeBusy
	}
	l.loading = true
	l.mu.Unlock()

	return l.fetch(ctx, 1, true)
}

// LoadMore appends the next page. It is a no-op once the backend
// reports no further pages.
func (l *ListController[T]) LoadMore(ctx context.Context) Outcome {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return OutcomeDiscarded
	}
	if l.loading {
		l.mu.Unlock()
		return OutcomeBusy
	}
	if !l.hasMore {
		l.mu.Unlock()
		return OutcomeSuccess
	}
	next := l.page + 1
	l.loading = true
	l.mu.Unlock()

	return l.fetch(ctx, next, false)
}

func (l *ListController[T]) fetch(ctx context.Context, page int, reset bool) Outcome {
	res := l.cfg.Fetch(ctx, page)

	l.mu.Lock()
	l.loading = false
	if l.closed {
		l.mu.Unlock()
		return OutcomeDiscarded
	}
	l.mu.Unlock()

	if res.NetworkError {
		l.raise(Alert{Kind: AlertNetwork, Message: l.cfg.Locale.T(locale.KeyConnectionError)})
		return OutcomeAlert
	}
	if !res.Success {
		message := res.Message
		if message == "" {
			message = l.cfg.Locale.T(locale.KeyGenericError)
		}
		l.raise(Alert{Kind: AlertBusiness, Message: message})
		return OutcomeAlert
	}

	pg, err := apiclient.DecodeData[apiclient.Page[T]](res)
	if err != nil {
		logger.Warnw("page decode failed", "page", page, "error", err)
		l.raise(Alert{Kind: AlertNetwork, Message: l.cfg.Locale.T(locale.KeyConnectionError)})
		return OutcomeAlert
	}

	l.mu.Lock()
	if reset {
		l.items = pg.Data
	} else {
		l.items = append(l.items, pg.Data...)
	}
	l.page = pg.CurrentPage
	l.hasMore = pg.HasMore()
	l.mu.Unlock()
	return OutcomeSuccess
}

// Delete removes a record after confirm approves it, then refetches
// page 1 so the list reflects the backend, not a local guess.
func (l *ListController[T]) Delete(ctx context.Context, id string, confirm func() bool) Outcome {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return OutcomeDiscarded
	}
	if l.cfg.Remove == nil || l.loading {
		l.mu.Unlock()
		return OutcomeBusy
	}
	l.mu.Unlock()

	if confirm != nil && !confirm() {
		return OutcomeDiscarded
	}

	res := l.cfg.Remove(ctx, id)
	if res.NetworkError {
		l.raise(Alert{Kind: AlertNetwork, Message: l.cfg.Locale.T(locale.KeyConnectionError)})
		return OutcomeAlert
	}
	if !res.Success {
		message := res.Message
		if message == "" {
			message = l.cfg.Locale.T(locale.KeyGenericError)
		}
		l.raise(Alert{Kind: AlertBusiness, Message: message})
		return OutcomeAlert
	}

	return l.Refresh(ctx)
}

// Items returns a copy of the loaded records.
func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Page returns the last loaded page number, 0 before any load.
func (l *ListController[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// HasMore reports whether the backend advertised a further page.
func (l *ListController[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Alert returns the pending alert, if any.
func (l *ListController[T]) Alert() (Alert, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.alert == nil {
		return Alert{}, false
	}
	return *l.alert, true
}

// DismissAlert clears the pending alert.
func (l *ListController[T]) DismissAlert() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alert = nil
}

// Close marks the list unmounted.
func (l *ListController[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *ListController[T]) raise(a Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.alert = &a
}
