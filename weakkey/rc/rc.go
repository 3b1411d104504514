package rc

import (
	"unsafe"

	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

// control is the shared allocation behind every Rc and Weak handle to one
// value: the pointee slot plus the strong and weak handle counts. It stays
// reachable for as long as any handle exists, which is what keeps identity
// tokens stable after the pointee is destroyed.
type control[T any] struct {
	value  *T // nil once the last strong handle is dropped
	strong uint64
	weak   uint64
}

func (c *control[T]) token() identity.Token {
	return identity.Of(unsafe.Pointer(c))
}

// Rc is a single-threaded reference-counted strong handle to a value of
// type T. Handles are created with New, duplicated with Clone and released
// with Drop; the pointee lives exactly as long as at least one strong handle
// does.
//
// Rc is not safe for concurrent use. See the arc package for the atomic
// counterpart.
type Rc[T any] struct {
	ctl     *control[T]
	dropped bool
}

// New allocates a fresh control block holding value and returns the first
// strong handle to it.
func New[T any](value T) *Rc[T] {
	return &Rc[T]{ctl: &control[T]{value: &value, strong: 1}}
}

// Clone returns a new strong handle sharing the same control block,
// incrementing the strong count.
func (r *Rc[T]) Clone() *Rc[T] {
	r.mustLive()
	r.ctl.strong++
	return &Rc[T]{ctl: r.ctl}
}

// Get returns the pointee. A live strong handle guarantees a live pointee,
// so Get never fails.
func (r *Rc[T]) Get() *T {
	r.mustLive()
	return r.ctl.value
}

// Drop releases the handle. Releasing the last strong handle destroys the
// pointee; weak handles to the same control block remain valid as dangling.
// Panics if the handle was already dropped.
func (r *Rc[T]) Drop() {
	r.mustLive()
	r.dropped = true
	r.ctl.strong--
	if r.ctl.strong == 0 {
		r.ctl.value = nil
	}
}

// Downgrade returns a weak handle to the same control block, incrementing
// the weak count.
func (r *Rc[T]) Downgrade() *Weak[T] {
	r.mustLive()
	r.ctl.weak++
	return &Weak[T]{ctl: r.ctl}
}

// Upgrade returns a clone of the handle and true. It exists so strong and
// weak handles expose one capability set; for a strong handle it cannot
// fail.
func (r *Rc[T]) Upgrade() (*Rc[T], bool) {
	return r.Clone(), true
}

// Token returns the identity token of the underlying control block.
func (r *Rc[T]) Token() identity.Token {
	return r.ctl.token()
}

// StrongCount returns the number of live strong handles to the control
// block.
func (r *Rc[T]) StrongCount() uint64 {
	return r.ctl.strong
}

// WeakCount returns the number of live weak handles to the control block.
func (r *Rc[T]) WeakCount() uint64 {
	return r.ctl.weak
}

func (r *Rc[T]) mustLive() {
	if r.dropped {
		panic("rc: use of a dropped handle")
	}
}
