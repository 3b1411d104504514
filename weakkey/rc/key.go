package rc

import (
	"github.com/krew-solutions/weakkey-go/weakkey/identity"
	"github.com/krew-solutions/weakkey-go/weakkey/keyed"
)

// RcKey wraps an Rc for use as a key in associative containers.
//
// Equality, ordering and hashing follow the identity of the shared control
// block, never the pointee's value: two keys compare equal only if their
// handles share one allocation, even when the pointees are equal in content.
// Order and hash values are process-local.
type RcKey[T any] struct {
	inner keyed.Key[*Rc[T], *Rc[T]]
}

var _ keyed.MapKey[RcKey[struct{}]] = RcKey[struct{}]{}

// NewRcKey clones the referenced handle into a new key. The caller's handle
// stays valid and usable; construction never fails.
func NewRcKey[T any](r *Rc[T]) RcKey[T] {
	return RcKey[T]{inner: keyed.New[*Rc[T], *Rc[T]](r)}
}

// Equal reports whether both keys share one control block.
func (k RcKey[T]) Equal(other RcKey[T]) bool {
	return k.inner.Equal(other.inner)
}

// Compare orders keys by identity token.
func (k RcKey[T]) Compare(other RcKey[T]) int {
	return k.inner.Compare(other.inner)
}

// Hash returns the identity token's hash.
func (k RcKey[T]) Hash() uint64 {
	return k.inner.Hash()
}

// Token returns the identity token the key was constructed with.
func (k RcKey[T]) Token() identity.Token {
	return k.inner.Token()
}

// Inner returns the strong handle the key owns.
func (k RcKey[T]) Inner() *Rc[T] {
	return k.inner.Inner()
}

// Get returns the pointee. The key's own strong handle keeps it live for the
// key's entire lifetime.
func (k RcKey[T]) Get() *T {
	return k.inner.Inner().Get()
}

// Clone returns an equal key over a fresh handle clone.
func (k RcKey[T]) Clone() RcKey[T] {
	return RcKey[T]{inner: k.inner.Clone()}
}

// Drop releases the key's handle. The key must not be used after.
func (k RcKey[T]) Drop() {
	k.inner.Drop()
}

// WeakKey wraps a Weak for use as a key in associative containers.
//
// The identity token is captured once, at construction, without upgrading
// and without requiring the pointee to be live. A dangling WeakKey keeps
// participating correctly in lookups, insertions and removals.
type WeakKey[T any] struct {
	inner keyed.Key[*Weak[T], *Rc[T]]
}

var _ keyed.MapKey[WeakKey[struct{}]] = WeakKey[struct{}]{}

// NewWeakKey clones the referenced weak handle into a new key. The caller's
// handle stays valid; construction never fails, whether or not the pointee
// is still live.
func NewWeakKey[T any](w *Weak[T]) WeakKey[T] {
	return WeakKey[T]{inner: keyed.New[*Weak[T], *Rc[T]](w)}
}

// Equal reports whether both keys share one control block. Liveness of the
// pointee plays no part.
func (k WeakKey[T]) Equal(other WeakKey[T]) bool {
	return k.inner.Equal(other.inner)
}

// Compare orders keys by identity token.
func (k WeakKey[T]) Compare(other WeakKey[T]) int {
	return k.inner.Compare(other.inner)
}

// Hash returns the identity token's hash.
func (k WeakKey[T]) Hash() uint64 {
	return k.inner.Hash()
}

// Token returns the identity token frozen at construction.
func (k WeakKey[T]) Token() identity.Token {
	return k.inner.Token()
}

// Inner returns the weak handle the key owns.
func (k WeakKey[T]) Inner() *Weak[T] {
	return k.inner.Inner()
}

// Upgrade attempts to obtain a strong handle to the pointee. This is the
// only place liveness matters; it is never consulted by Equal, Compare or
// Hash.
func (k WeakKey[T]) Upgrade() (*Rc[T], bool) {
	return k.inner.Upgrade()
}

// Clone returns an equal key over a fresh handle clone, keeping the frozen
// token even when the pointee is already gone.
func (k WeakKey[T]) Clone() WeakKey[T] {
	return WeakKey[T]{inner: k.inner.Clone()}
}

// Drop releases the key's handle. The key must not be used after.
func (k WeakKey[T]) Drop() {
	k.inner.Drop()
}
