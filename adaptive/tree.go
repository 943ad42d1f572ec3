package adaptive

// TopOrder is the order number of the initial root. Every split hands out the
// next two lower numbers, so orders are dense below it (and may go negative
// for alphabets with more than a few hundred distinct symbols).
const TopOrder = 512

// Tree is the online Huffman model shared, step for step, by an encoder and
// its decoder. It always satisfies the sibling property between updates.
type Tree struct {
	store  Store
	root   NodeID
	nyt    NodeID
	leaves map[int64]NodeID
	// byRank[TopOrder-order] is the node currently holding that order number
	byRank []NodeID
	// tops maps each weight in the tree to the lowest rank holding it
	tops map[uint64]int
}

// NewTree returns an empty model: a lone root that is also the NYT leaf.
func NewTree() *Tree {
	t := &Tree{leaves: make(map[int64]NodeID), tops: map[uint64]int{0: 0}}
	t.root = t.store.Alloc(0, TopOrder, None)
	t.store.nodes[t.root].nyt = true
	t.nyt = t.root
	t.byRank = append(t.byRank, t.root)
	return t
}

func (t *Tree) Root() NodeID { return t.root }

// NYT is the current not-yet-transmitted leaf.
func (t *Tree) NYT() NodeID { return t.nyt }

// FindLeaf looks a symbol up. false means it has not been seen in this stream.
func (t *Tree) FindLeaf(symbol int64) (NodeID, bool) {
	id, ok := t.leaves[symbol]
	return id, ok
}

func (t *Tree) Weight(id NodeID) uint64 { return t.store.nodes[id].weight }
func (t *Tree) Order(id NodeID) int     { return t.store.nodes[id].order }
func (t *Tree) Parent(id NodeID) NodeID { return t.store.Parent(id) }
func (t *Tree) IsLeaf(id NodeID) bool   { return t.store.IsLeaf(id) }
func (t *Tree) IsNYT(id NodeID) bool    { return t.store.nodes[id].nyt }

// Symbol is only meaningful for non-NYT leaves.
func (t *Tree) Symbol(id NodeID) int64 { return t.store.nodes[id].symbol }

// Child follows one step of a code: 0 goes left, 1 goes right.
func (t *Tree) Child(id NodeID, right bool) NodeID {
	if right {
		return t.store.Right(id)
	}
	return t.store.Left(id)
}

// Symbols is the number of distinct symbols seen so far.
func (t *Tree) Symbols() int { return len(t.leaves) }

// Nodes is the number of live nodes in the tree.
func (t *Tree) Nodes() int { return t.store.Len() }

// PathTo appends the root-to-id code to buf[:0] as 0/1 bytes (left=0, right=1).
func (t *Tree) PathTo(id NodeID, buf []byte) []byte {
	buf = buf[:0]
	for id != t.root {
		parent := t.store.Parent(id)
		if t.store.Left(parent) == id {
			buf = append(buf, 0)
		} else {
			buf = append(buf, 1)
		}
		id = parent
	}
	// Collected leaf to root
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// Split turns the NYT leaf into an internal node with a fresh NYT on the left
// and a zero-weight leaf for symbol on the right, and returns that leaf.
func (t *Tree) Split(symbol int64) NodeID {
	old := t.nyt
	order := t.store.nodes[old].order
	nyt := t.store.Alloc(0, order-2, old)
	leaf := t.store.Alloc(0, order-1, old)
	t.store.Attach(old, nyt, leaf)

	t.store.nodes[old].nyt = false
	t.store.nodes[old].symbol = 0
	t.store.nodes[nyt].nyt = true
	t.store.nodes[leaf].symbol = symbol

	// Ranks grow by one per order step down, so the new pair lands at the end.
	// The old NYT stays the top of the zero-weight block.
	t.byRank = append(t.byRank, leaf, nyt)
	t.nyt = nyt
	t.leaves[symbol] = leaf
	return leaf
}

func (t *Tree) rank(id NodeID) int { return TopOrder - t.store.nodes[id].order }

// Close releases every node. The tree must not be used afterwards.
func (t *Tree) Close() {
	t.store.Release(t.root)
	t.root, t.nyt = None, None
	t.leaves = nil
	t.byRank = nil
	t.tops = nil
}
