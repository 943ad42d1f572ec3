package adaptive

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skewed draws mostly small symbols so leaves get reused and swapped a lot
func skewed(rng *rand.Rand, alphabet int) int64 {
	return int64(rng.IntN(1 + rng.IntN(alphabet)))
}

func TestEmptyTree(t *testing.T) {
	assert := assert.New(t)
	tree := NewTree()
	assert.Equal(tree.Root(), tree.NYT())
	assert.True(tree.IsNYT(tree.Root()))
	assert.Equal(TopOrder, tree.Order(tree.Root()))
	assert.Equal(uint64(0), tree.Weight(tree.Root()))
	assert.Empty(tree.PathTo(tree.NYT(), nil))
	_, ok := tree.FindLeaf(65)
	assert.False(ok)
	assert.NoError(tree.Check())
}

func TestSplit(t *testing.T) {
	assert := assert.New(t)
	tree := NewTree()
	old := tree.NYT()
	leaf := tree.Split(7)

	assert.False(tree.IsNYT(old))
	assert.False(tree.IsLeaf(old))
	assert.Equal(TopOrder-1, tree.Order(leaf))
	assert.Equal(TopOrder-2, tree.Order(tree.NYT()))
	assert.Equal([]byte{0}, tree.PathTo(tree.NYT(), nil))
	assert.Equal([]byte{1}, tree.PathTo(leaf, nil))
	got, ok := tree.FindLeaf(7)
	assert.True(ok)
	assert.Equal(leaf, got)
}

func TestTreeScenarioABA(t *testing.T) {
	require := require.New(t)
	tree := NewTree()

	tree.Update(65)
	require.NoError(tree.Check())
	a, _ := tree.FindLeaf(65)
	require.Equal([]byte{1}, tree.PathTo(a, nil))
	require.Equal([]byte{0}, tree.PathTo(tree.NYT(), nil))

	tree.Update(66)
	require.NoError(tree.Check())
	b, _ := tree.FindLeaf(66)
	require.Equal([]byte{0, 1}, tree.PathTo(b, nil))
	require.Equal([]byte{0, 0}, tree.PathTo(tree.NYT(), nil))

	tree.Update(65)
	require.NoError(tree.Check())
	require.Equal([]byte{1}, tree.PathTo(a, nil))
	require.Equal(uint64(2), tree.Weight(a))
	require.Equal(uint64(3), tree.Weight(tree.Root()))
}

func TestSlideSwapsLeaves(t *testing.T) {
	require := require.New(t)
	tree := NewTree()
	tree.Update(1)
	tree.Update(2)
	b, _ := tree.FindLeaf(2)
	require.Equal([]byte{0, 1}, tree.PathTo(b, nil))

	// 2 catches up with 1 and is promoted into its slot
	tree.Update(2)
	require.NoError(tree.Check())
	require.Equal([]byte{1}, tree.PathTo(b, nil))
	a, _ := tree.FindLeaf(1)
	require.Equal([]byte{0, 1}, tree.PathTo(a, nil))
}

func TestUpdateKeepsSiblingProperty(t *testing.T) {
	for _, alphabet := range []int{2, 5, 40, 300} {
		for seed := uint64(1); seed <= 8; seed++ {
			rng := rand.New(rand.NewPCG(seed, uint64(alphabet)))
			tree := NewTree()
			counts := make(map[int64]uint64)
			for i := 0; i < 1500; i++ {
				symbol := skewed(rng, alphabet)
				leaf := tree.Update(symbol)
				counts[symbol]++
				// One occurrence is exactly one unit of weight
				require.Equal(t, counts[symbol], tree.Weight(leaf))
				require.Equal(t, uint64(i+1), tree.Weight(tree.Root()))
				require.NoError(t, tree.Check(), "alphabet %d seed %d step %d", alphabet, seed, i)
			}
			require.Equal(t, len(counts), tree.Symbols())
			require.Equal(t, 2*len(counts)+1, tree.Nodes())
		}
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	tree := NewTree()
	for _, s := range []int64{1, 2, 3, 1, 1} {
		tree.Update(s)
	}
	require.NoError(t, tree.Check())
	leaf, _ := tree.FindLeaf(3)
	tree.store.nodes[leaf].weight += 5
	assert.Error(t, tree.Check())
}

func TestTreeClose(t *testing.T) {
	tree := NewTree()
	for _, s := range []int64{4, 5, 6} {
		tree.Update(s)
	}
	store := &tree.store
	tree.Close()
	assert.Equal(t, 0, store.Len())
	assert.Error(t, tree.Check())
}
