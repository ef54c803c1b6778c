package texture

import (
	"context"
	"image"
	"log/slog"
	"sync"
)

// Result is a finished load for one frame slot.
type Result struct {
	Slot  int
	Gen   uint64
	Src   Source
	Image *image.NRGBA
	Err   error
}

// Loader runs photo loads in the background. Finished loads queue up until
// the render loop collects them with Poll; nothing is applied mid-tick.
type Loader struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
	cache   *Cache

	wg   sync.WaitGroup
	mu   sync.Mutex
	done []Result
}

// NewLoader returns a loader using fetcher. A nil cache disables caching.
func NewLoader(ctx context.Context, fetcher Fetcher, cache *Cache) *Loader {
	ctx, cancel := context.WithCancel(ctx)
	return &Loader{ctx: ctx, cancel: cancel, fetcher: fetcher, cache: cache}
}

// Request starts loading src for slot. gen is echoed back in the Result so
// the receiver can drop loads that were superseded in the meantime.
func (l *Loader) Request(slot int, gen uint64, src Source) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.load(src)
		if err != nil {
			slog.Debug("texture: load failed", "slot", slot, "src", src.String(), "err", err)
		}
		l.mu.Lock()
		l.done = append(l.done, Result{Slot: slot, Gen: gen, Src: src, Image: img, Err: err})
		l.mu.Unlock()
	}()
}

func (l *Loader) load(src Source) (*image.NRGBA, error) {
	if l.cache != nil {
		if img, ok := l.cache.Get(src); ok {
			return img, nil
		}
	}
	data, err := l.fetcher.Fetch(l.ctx, src)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, src.Ref)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Put(src, img)
	}
	return img, nil
}

// Poll returns every load finished since the previous call without blocking.
func (l *Loader) Poll() []Result {
	l.mu.Lock()
	out := l.done
	l.done = nil
	l.mu.Unlock()
	return out
}

// Wait blocks until every requested load has finished. Composers may call it
// before their loop starts; the tick itself never does.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding fetches and waits for their goroutines.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
