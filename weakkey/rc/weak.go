package rc

import (
	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

// Weak is a non-owning handle to a value managed by Rc handles. It may
// outlive the pointee, in which case it is dangling: Upgrade fails but the
// handle, its clones and its identity token all remain valid.
type Weak[T any] struct {
	ctl     *control[T]
	dropped bool
}

// Clone returns a new weak handle sharing the same control block,
// incrementing the weak count.
func (w *Weak[T]) Clone() *Weak[T] {
	w.mustLive()
	w.ctl.weak++
	return &Weak[T]{ctl: w.ctl}
}

// Drop releases the handle. It has no effect on the pointee's lifetime.
// Panics if the handle was already dropped.
func (w *Weak[T]) Drop() {
	w.mustLive()
	w.dropped = true
	w.ctl.weak--
}

// Upgrade attempts to obtain a strong handle, delaying destruction of the
// pointee if it succeeds. It fails once the last strong handle has been
// dropped.
func (w *Weak[T]) Upgrade() (*Rc[T], bool) {
	w.mustLive()
	if w.ctl.strong == 0 {
		return nil, false
	}
	w.ctl.strong++
	return &Rc[T]{ctl: w.ctl}, true
}

// Token returns the identity token of the underlying control block. It
// reads only the block's address: no upgrade is attempted and the pointee
// need not be live.
func (w *Weak[T]) Token() identity.Token {
	return w.ctl.token()
}

// StrongCount returns the number of live strong handles to the control
// block. Zero means the pointee has been destroyed.
func (w *Weak[T]) StrongCount() uint64 {
	return w.ctl.strong
}

func (w *Weak[T]) mustLive() {
	if w.dropped {
		panic("rc: use of a dropped handle")
	}
}
