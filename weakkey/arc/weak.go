package arc

import (
	"sync/atomic"

	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

// Weak is a non-owning handle to a value managed by Arc handles. It may
// outlive the pointee, in which case it is dangling: Upgrade fails but the
// handle, its clones and its identity token all remain valid. Safe for
// concurrent use.
type Weak[T any] struct {
	ctl     *control[T]
	dropped atomic.Bool
}

// Clone returns a new weak handle sharing the same control block,
// incrementing the weak count.
func (w *Weak[T]) Clone() *Weak[T] {
	w.mustLive()
	w.ctl.weak.Add(1)
	return &Weak[T]{ctl: w.ctl}
}

// Drop releases the handle. It has no effect on the pointee's lifetime.
// Panics if the handle was already dropped.
func (w *Weak[T]) Drop() {
	if w.dropped.Swap(true) {
		panic("arc: use of a dropped handle")
	}
	w.ctl.weak.Add(-1)
}

// Upgrade attempts to obtain a strong handle, delaying destruction of the
// pointee if it succeeds. The strong count is raised with a compare-and-swap
// loop so an upgrade can never resurrect a pointee that a concurrent Drop
// already destroyed.
func (w *Weak[T]) Upgrade() (*Arc[T], bool) {
	w.mustLive()
	for {
		n := w.ctl.strong.Load()
		if n == 0 {
			return nil, false
		}
		if w.ctl.strong.CompareAndSwap(n, n+1) {
			return &Arc[T]{ctl: w.ctl}, true
		}
	}
}

// Token returns the identity token of the underlying control block. It
// reads only the block's address: no upgrade is attempted and the pointee
// need not be live.
func (w *Weak[T]) Token() identity.Token {
	return w.ctl.token()
}

// StrongCount returns the number of live strong handles to the control
// block at the moment of the call. Zero means the pointee has been
// destroyed.
func (w *Weak[T]) StrongCount() int64 {
	return w.ctl.strong.Load()
}

func (w *Weak[T]) mustLive() {
	if w.dropped.Load() {
		panic("arc: use of a dropped handle")
	}
}
