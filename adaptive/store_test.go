package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAttachAndSwap(t *testing.T) {
	assert := assert.New(t)
	var s Store
	root := s.Alloc(0, 10, None)
	a := s.Alloc(0, 8, root)
	b := s.Alloc(0, 9, root)
	s.Attach(root, a, b)
	c := s.Alloc(0, 6, a)
	d := s.Alloc(0, 7, a)
	s.Attach(a, c, d)

	assert.Equal(5, s.Len())
	assert.True(s.IsLeaf(b))
	assert.False(s.IsLeaf(a))

	// Siblings trade slots under the same parent
	s.Swap(a, b)
	assert.Equal(b, s.Left(root))
	assert.Equal(a, s.Right(root))
	assert.Equal(root, s.Parent(a))

	// Cousins trade parents, links stay mutual
	s.Swap(c, b)
	assert.Equal(c, s.Left(root))
	assert.Equal(b, s.Left(a))
	assert.Equal(root, s.Parent(c))
	assert.Equal(a, s.Parent(b))
	assert.Equal(d, s.Right(a))
}

func TestStoreRelease(t *testing.T) {
	require := require.New(t)
	var s Store
	root := s.Alloc(0, 4, None)
	l := s.Alloc(0, 2, root)
	r := s.Alloc(0, 3, root)
	s.Attach(root, l, r)

	require.Equal(3, s.Release(root))
	require.Equal(0, s.Len())
	// Second release finds nothing live
	require.Equal(0, s.Release(root))
	require.Equal(0, s.Release(None))

	// Freed slots are reused before the arena grows
	before := len(s.nodes)
	for i := 0; i < 3; i++ {
		s.Alloc(0, i, None)
	}
	require.Equal(before, len(s.nodes))
	require.Equal(3, s.Len())
}
