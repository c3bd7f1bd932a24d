// Package lookup implements fetch-on-input state machines.
//
// A Lookup holds the three-field state (data, loading, error) for one key.
// Every Set issues exactly one asynchronous fetch and bumps a generation
// counter; a completion is applied only when its generation is still the
// latest one, so a slow response for a superseded key can never overwrite
// fresher state.
package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the observable state of a lookup
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// FetchFunc performs the request for key
type FetchFunc[K comparable, T any] func(ctx context.Context, key K) (T, error)

// Options configures a Lookup
type Options[K comparable] struct {
	// Skip reports keys that must not issue a request. Defaults to the zero key.
	Skip func(K) bool
	// Dispatch runs completions; the UI passes its event loop here.
	// Defaults to running them on the fetching goroutine.
	Dispatch func(func())
	// OnChange is called after every state transition, outside the lock.
	OnChange func()
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// Lookup is a fetch-on-input state machine keyed by K
type Lookup[K comparable, T any] struct {
	name     string
	fetch    FetchFunc[K, T]
	skip     func(K) bool
	dispatch func(func())
	onChange func()
	timeout  time.Duration
	log      logrus.FieldLogger

	mu     sync.Mutex
	key    K
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
}

// New creates a lookup that fetches with fn
func New[K comparable, T any](name string, fn FetchFunc[K, T], opts Options[K]) *Lookup[K, T] {
	l := &Lookup[K, T]{
		name:     name,
		fetch:    fn,
		skip:     opts.Skip,
		dispatch: opts.Dispatch,
		onChange: opts.OnChange,
		timeout:  opts.Timeout,
		log:      opts.Logger,
	}

	if l.skip == nil {
		l.skip = func(key K) bool {
			var zero K
			return key == zero
		}
	}
	if l.dispatch == nil {
		l.dispatch = func(fn func()) { fn() }
	}
	if l.log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		l.log = logger
	}

	return l
}

// Set moves the lookup to key. A skipped key clears the state without a
// request; any other key discards the current data, enters loading and
// issues a new fetch, even when key equals the previous one.
func (l *Lookup[K, T]) Set(key K) {
	l.mu.Lock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.key = key
	gen := l.gen

	if l.skip(key) {
		l.state = State[T]{}
		l.mu.Unlock()
		l.notify()
		return
	}

	ctx, cancel := l.newContext()
	l.cancel = cancel
	l.state = State[T]{Loading: true}
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{
		"lookup":     l.name,
		"key":        key,
		"generation": gen,
	}).Debug("request issued")

	l.notify()
	go l.run(ctx, cancel, gen, key)
}

// Reset clears the state and abandons any request in flight
func (l *Lookup[K, T]) Reset() {
	var zero K
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.key = zero
	l.state = State[T]{}
	l.mu.Unlock()
	l.notify()
}

// Retry re-issues the request for the current key
func (l *Lookup[K, T]) Retry() {
	l.mu.Lock()
	key := l.key
	l.mu.Unlock()
	l.Set(key)
}

// Key returns the current key
func (l *Lookup[K, T]) Key() K {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.key
}

// State returns a copy of the current state
func (l *Lookup[K, T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Current returns the key and its state, read atomically
func (l *Lookup[K, T]) Current() (K, State[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.key, l.state
}

// Generation returns the number of requests issued or abandoned so far
func (l *Lookup[K, T]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

func (l *Lookup[K, T]) newContext() (context.Context, context.CancelFunc) {
	if l.timeout > 0 {
		return context.WithTimeout(context.Background(), l.timeout)
	}
	return context.WithCancel(context.Background())
}

func (l *Lookup[K, T]) run(ctx context.Context, cancel context.CancelFunc, gen uint64, key K) {
	defer cancel()

	data, err := l.fetch(ctx, key)
	l.dispatch(func() {
		l.complete(gen, key, data, err)
	})
}

func (l *Lookup[K, T]) complete(gen uint64, key K, data T, err error) {
	logger := l.log.WithFields(logrus.Fields{
		"lookup":     l.name,
		"key":        key,
		"generation": gen,
	})

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		logger.Debug("stale response discarded")
		return
	}

	l.cancel = nil
	if err != nil {
		l.state = State[T]{Err: err}
	} else {
		l.state = State[T]{Data: data}
	}
	l.mu.Unlock()

	if err != nil {
		logger.WithError(err).Info("request failed")
	} else {
		logger.Debug("request completed")
	}
	l.notify()
}

func (l *Lookup[K, T]) notify() {
	if l.onChange != nil {
		l.onChange()
	}
}
