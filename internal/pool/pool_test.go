package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	name string
}

func TestObtainFreeReuse(t *testing.T) {
	resets := 0
	p := New(func(it *item) {
		it.name = ""
		resets++
	})

	a, ha := p.Obtain()
	a.name = "a"
	assert.Same(t, a, p.Get(ha))
	assert.Equal(t, 1, p.Len())

	assert.True(t, p.Free(ha))
	assert.Equal(t, 1, resets)
	assert.Empty(t, a.name)
	assert.Nil(t, p.Get(ha), "freed handle must not resolve")
	assert.False(t, p.Free(ha), "double free is rejected")

	b, hb := p.Obtain()
	assert.Same(t, a, b, "storage is reused")
	assert.Nil(t, p.Get(ha), "stale handle must not resolve to the reused object")
	assert.Same(t, b, p.Get(hb))
}

func TestZeroHandle(t *testing.T) {
	p := New[item](nil)
	var h Handle
	assert.True(t, h.IsZero())
	assert.Nil(t, p.Get(h))
	assert.False(t, p.Free(h))

	_, h = p.Obtain()
	assert.False(t, h.IsZero())
}
