package arc

import (
	"sync/atomic"
	"unsafe"

	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

// control is the shared allocation behind every Arc and Weak handle to one
// value. Counts and the pointee slot are atomic, so handles may be used from
// any goroutine. The block stays reachable for as long as any handle exists,
// which keeps identity tokens stable after the pointee is destroyed.
type control[T any] struct {
	value  atomic.Pointer[T] // nil once the last strong handle is dropped
	strong atomic.Int64
	weak   atomic.Int64
}

func (c *control[T]) token() identity.Token {
	return identity.Of(unsafe.Pointer(c))
}

// Arc is an atomically reference-counted strong handle to a value of type
// T: the thread-safe counterpart of rc.Rc. A handle and all keys derived
// from it may be shared freely across goroutines; Equal, Compare and Hash
// on derived keys are pure reads with no data races.
type Arc[T any] struct {
	ctl     *control[T]
	dropped atomic.Bool
}

// New allocates a fresh control block holding value and returns the first
// strong handle to it.
func New[T any](value T) *Arc[T] {
	ctl := &control[T]{}
	ctl.value.Store(&value)
	ctl.strong.Store(1)
	return &Arc[T]{ctl: ctl}
}

// Clone returns a new strong handle sharing the same control block,
// incrementing the strong count.
func (a *Arc[T]) Clone() *Arc[T] {
	a.mustLive()
	a.ctl.strong.Add(1)
	return &Arc[T]{ctl: a.ctl}
}

// Get returns the pointee. A live strong handle guarantees a live pointee,
// so Get never fails.
func (a *Arc[T]) Get() *T {
	a.mustLive()
	return a.ctl.value.Load()
}

// Drop releases the handle. Releasing the last strong handle destroys the
// pointee; weak handles to the same control block remain valid as dangling.
// Panics if the handle was already dropped.
func (a *Arc[T]) Drop() {
	if a.dropped.Swap(true) {
		panic("arc: use of a dropped handle")
	}
	if a.ctl.strong.Add(-1) == 0 {
		a.ctl.value.Store(nil)
	}
}

// Downgrade returns a weak handle to the same control block, incrementing
// the weak count.
func (a *Arc[T]) Downgrade() *Weak[T] {
	a.mustLive()
	a.ctl.weak.Add(1)
	return &Weak[T]{ctl: a.ctl}
}

// Upgrade returns a clone of the handle and true. It exists so strong and
// weak handles expose one capability set; for a strong handle it cannot
// fail.
func (a *Arc[T]) Upgrade() (*Arc[T], bool) {
	return a.Clone(), true
}

// Token returns the identity token of the underlying control block.
func (a *Arc[T]) Token() identity.Token {
	return a.ctl.token()
}

// StrongCount returns the number of live strong handles to the control
// block at the moment of the call.
func (a *Arc[T]) StrongCount() int64 {
	return a.ctl.strong.Load()
}

// WeakCount returns the number of live weak handles to the control block at
// the moment of the call.
func (a *Arc[T]) WeakCount() int64 {
	return a.ctl.weak.Load()
}

func (a *Arc[T]) mustLive() {
	if a.dropped.Load() {
		panic("arc: use of a dropped handle")
	}
}
