package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"go.uber.org/zap"
)

// Async runs a synchronous fetcher on its own goroutine per request.
// It implements domain.ArtworkFetcher.
type Async struct {
	logger  *zap.Logger
	fetcher domain.Fetcher
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAsync wraps f. Every request is bounded by timeout.
func NewAsync(logger *zap.Logger, f domain.Fetcher, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Async{
		logger:  logger,
		fetcher: f,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Fetch starts a download. Exactly one callback runs, on the request goroutine.
func (a *Async) Fetch(url string, onLoaded func(bitmap []byte), onFailed func(err error)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
		defer cancel()

		data, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			onFailed(err)
			return
		}
		onLoaded(data)
	}()
}

// Close cancels in-flight requests and waits for their callbacks
func (a *Async) Close() {
	a.cancel()
	a.wg.Wait()
	a.logger.Debug("Artwork fetcher closed")
}
