package identity

import (
	"fmt"
	"hash/maphash"
	"unsafe"
)

// Token identifies the shared allocation (control block) behind a
// reference-counted handle. Two tokens are equal exactly when they were
// derived from handles sharing one control block; the pointee's value and
// liveness play no part.
//
// A token stays meaningful for as long as some handle keeps its control
// block reachable. Once the last handle is gone the allocator may reuse the
// address, so tokens must not be compared past that point.
//
// Order and hash values are process-local. They must not be persisted or
// compared across runs.
type Token struct {
	addr uintptr
}

var hashSeed = maphash.MakeSeed()

// Of derives a Token from a control block pointer. It reads only the
// address: no dereference, no allocation, no effect on reference counts.
func Of(ctl unsafe.Pointer) Token {
	return Token{addr: uintptr(ctl)}
}

// Compare returns -1, 0 or 1. The order is a strict total order with ties
// only on true identity; it has no meaning beyond container placement.
func (t Token) Compare(other Token) int {
	switch {
	case t.addr < other.addr:
		return -1
	case t.addr > other.addr:
		return 1
	default:
		return 0
	}
}

// Hash returns a hash of the token, seeded once per process. Equal tokens
// always hash equally.
func (t Token) Hash() uint64 {
	return maphash.Comparable(hashSeed, t.addr)
}

// String implements fmt.Stringer. For debugging only.
func (t Token) String() string {
	return fmt.Sprintf("Token(0x%x)", t.addr)
}
