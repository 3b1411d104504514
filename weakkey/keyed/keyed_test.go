package keyed

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/weakkey-go/weakkey/identity"
)

type stubBlock struct {
	refs int
	live bool
}

// stub is a minimal handle implementing Pointer, with enough bookkeeping to
// observe cloning and dropping.
type stub struct {
	block *stubBlock
}

func newStub() *stub {
	return &stub{block: &stubBlock{refs: 1, live: true}}
}

func (s *stub) Clone() *stub {
	s.block.refs++
	return &stub{block: s.block}
}

func (s *stub) Drop() {
	s.block.refs--
}

func (s *stub) Token() identity.Token {
	return identity.Of(unsafe.Pointer(s.block))
}

func (s *stub) Upgrade() (*stub, bool) {
	if !s.block.live {
		return nil, false
	}
	return s.Clone(), true
}

func newStubKey(s *stub) Key[*stub, *stub] {
	return New[*stub, *stub](s)
}

func TestNew(t *testing.T) {
	t.Run("clones without consuming the caller's handle", func(t *testing.T) {
		h := newStub()
		key := newStubKey(h)
		assert.Equal(t, 2, h.block.refs)
		assert.NotSame(t, h, key.Inner())
		assert.Same(t, h.block, key.Inner().block)
	})

	t.Run("freezes the token at construction", func(t *testing.T) {
		h := newStub()
		key := newStubKey(h)
		assert.Equal(t, h.Token(), key.Token())
	})
}

func TestEqual(t *testing.T) {
	t.Run("same block", func(t *testing.T) {
		h := newStub()
		a := newStubKey(h)
		b := newStubKey(h.Clone())
		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
		assert.True(t, a.Equal(a))
	})

	t.Run("distinct blocks", func(t *testing.T) {
		a := newStubKey(newStub())
		b := newStubKey(newStub())
		assert.False(t, a.Equal(b))
	})

	t.Run("agrees with compare and hash", func(t *testing.T) {
		h := newStub()
		a := newStubKey(h)
		b := newStubKey(h)
		c := newStubKey(newStub())
		assert.Zero(t, a.Compare(b))
		assert.Equal(t, a.Hash(), b.Hash())
		assert.NotZero(t, a.Compare(c))
	})
}

func TestUpgrade(t *testing.T) {
	t.Run("passes through to the handle", func(t *testing.T) {
		h := newStub()
		key := newStubKey(h)
		strong, ok := key.Upgrade()
		require.True(t, ok)
		assert.Same(t, h.block, strong.block)
	})

	t.Run("dead block fails but key still compares", func(t *testing.T) {
		h := newStub()
		key := newStubKey(h)
		h.block.live = false
		_, ok := key.Upgrade()
		assert.False(t, ok)
		assert.True(t, key.Equal(newStubKey(h)))
	})
}

func TestClone(t *testing.T) {
	h := newStub()
	key := newStubKey(h)
	clone := key.Clone()
	assert.True(t, key.Equal(clone))
	assert.Equal(t, key.Token(), clone.Token())
	assert.Equal(t, 3, h.block.refs)
}

func TestDrop(t *testing.T) {
	h := newStub()
	key := newStubKey(h)
	key.Drop()
	assert.Equal(t, 1, h.block.refs)
}
