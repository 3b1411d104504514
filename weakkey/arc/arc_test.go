package arc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New("hello")
	assert.Equal(t, int64(1), a.StrongCount())
	assert.Equal(t, int64(0), a.WeakCount())
	assert.Equal(t, "hello", *a.Get())
}

func TestClone(t *testing.T) {
	a := New(42)
	clone := a.Clone()
	assert.Equal(t, int64(2), a.StrongCount())
	assert.Same(t, a.Get(), clone.Get())
	assert.Equal(t, a.Token(), clone.Token())
}

func TestDrop(t *testing.T) {
	t.Run("last strong handle destroys the pointee", func(t *testing.T) {
		a := New(42)
		w := a.Downgrade()
		a.Drop()
		_, ok := w.Upgrade()
		assert.False(t, ok)
	})

	t.Run("double drop panics", func(t *testing.T) {
		a := New(42)
		a.Drop()
		assert.PanicsWithValue(t, "arc: use of a dropped handle", func() {
			a.Drop()
		})
	})
}

func TestUpgrade(t *testing.T) {
	t.Run("weak handle upgrades while live", func(t *testing.T) {
		a := New(42)
		w := a.Downgrade()
		strong, ok := w.Upgrade()
		require.True(t, ok)
		assert.Equal(t, int64(2), a.StrongCount())
		assert.Equal(t, 42, *strong.Get())
	})

	t.Run("weak handle fails after death", func(t *testing.T) {
		a := New(42)
		w := a.Downgrade()
		a.Drop()
		_, ok := w.Upgrade()
		assert.False(t, ok)
	})

	t.Run("token survives pointee destruction", func(t *testing.T) {
		a := New(42)
		w := a.Downgrade()
		before := w.Token()
		a.Drop()
		assert.Equal(t, before, w.Token())
	})
}

func TestConcurrentClones(t *testing.T) {
	const workers = 32

	a := New("shared")
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			clone := a.Clone()
			assert.Equal(t, "shared", *clone.Get())
			clone.Drop()
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), a.StrongCount())
}

func TestConcurrentUpgradeAndDrop(t *testing.T) {
	const workers = 32

	a := New(42)
	w := a.Downgrade()

	var wg sync.WaitGroup
	wg.Add(workers + 1)
	go func() {
		defer wg.Done()
		a.Drop()
	}()
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			weak := w.Clone()
			if strong, ok := weak.Upgrade(); ok {
				// An upgrade that won the race must observe a live pointee.
				assert.Equal(t, 42, *strong.Get())
				strong.Drop()
			}
			weak.Drop()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(0), w.StrongCount())
	_, ok := w.Upgrade()
	assert.False(t, ok)
}
