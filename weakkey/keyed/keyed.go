package keyed

import (
	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

// Pointer is the capability set a reference-counting handle must provide to
// be wrapped by a Key. P is the handle type itself, S the strong handle type
// of its family. A strong handle upgrades infallibly to a clone of itself; a
// weak handle upgrades only while the pointee is live.
type Pointer[P, S any] interface {
	Clone() P
	Drop()
	Token() identity.Token
	Upgrade() (S, bool)
}

// Key wraps a reference-counting handle for use as a key in associative
// containers.
//
// Equality, ordering and hashing are implemented over the identity token
// captured when the Key was created. They agree with each other, ignore the
// pointee's value, and stay stable after the pointee is destroyed: the token
// is frozen at construction and never re-derived.
type Key[P Pointer[P, S], S any] struct {
	_     [0]func() // Key must be compared with Equal, not ==.
	inner P
	token identity.Token
}

// New clones the referenced handle and freezes its identity token. The
// caller's handle stays valid; the Key owns only its own clone. Never fails,
// whether or not the pointee is live.
//
// Both type arguments are usually spelled out at the call site: Go cannot
// infer S from the Upgrade method of the constraint.
func New[P Pointer[P, S], S any](inner P) Key[P, S] {
	clone := inner.Clone()
	return Key[P, S]{inner: clone, token: clone.Token()}
}

// Inner returns the handle the Key owns.
func (k Key[P, S]) Inner() P {
	return k.inner
}

// Token returns the frozen identity token.
func (k Key[P, S]) Token() identity.Token {
	return k.token
}

// Equal reports whether both keys were derived from handles sharing one
// control block.
func (k Key[P, S]) Equal(other Key[P, S]) bool {
	return k.token == other.token
}

// Compare orders keys by their tokens. The order is process-local and only
// suitable for container placement.
func (k Key[P, S]) Compare(other Key[P, S]) int {
	return k.token.Compare(other.token)
}

// Hash returns the token's hash. Equal keys always hash identically.
func (k Key[P, S]) Hash() uint64 {
	return k.token.Hash()
}

// Upgrade attempts to obtain a strong handle from the wrapped one. For a key
// over a strong handle it always succeeds.
func (k Key[P, S]) Upgrade() (S, bool) {
	return k.inner.Upgrade()
}

// Clone returns a key over a fresh clone of the handle. The token is copied,
// not re-derived, so a clone of a dangling weak key keeps its identity.
func (k Key[P, S]) Clone() Key[P, S] {
	return Key[P, S]{inner: k.inner.Clone(), token: k.token}
}

// Drop releases the handle the Key owns. The Key must not be used after.
func (k Key[P, S]) Drop() {
	k.inner.Drop()
}
