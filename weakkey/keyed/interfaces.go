package keyed

// Equaler is the equality capability containers require of a key type.
// Implementations must be reflexive, symmetric and transitive.
type Equaler[K any] interface {
	Equal(K) bool
}

// Ordered is the total-order capability. Compare returns a negative, zero or
// positive value; the order must be antisymmetric, transitive and consistent
// with Equal (Compare returns zero exactly when Equal reports true).
type Ordered[K any] interface {
	Compare(K) int
}

// Hasher is the hashing capability. Equal keys must hash identically within
// one process run; unequal keys may collide.
type Hasher interface {
	Hash() uint64
}

// MapKey is the full capability set hash-based and ordered containers
// consume. A container depending on MapKey can hold any key type in this
// module without knowing which pointer family backs it.
type MapKey[K any] interface {
	Equaler[K]
	Ordered[K]
	Hasher
}
