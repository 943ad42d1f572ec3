package adaptive

// Update folds one occurrence of symbol into the model: split NYT if the
// symbol is new, then slide-and-increment from its leaf up to the root.
// It returns the symbol's leaf.
func (t *Tree) Update(symbol int64) NodeID {
	leaf, ok := t.leaves[symbol]
	if !ok {
		leaf = t.Split(symbol)
	}
	t.slideAndIncrement(leaf)
	return leaf
}

func (t *Tree) slideAndIncrement(id NodeID) {
	for id != None {
		if leader := t.blockLeader(id); leader != id {
			t.swap(id, leader)
		}
		t.increment(id)
		id = t.store.Parent(id)
	}
}

// blockLeader returns the highest-order node sharing id's weight that is not
// one of id's ancestors, or id itself.
// Only the NYT leaf weighs zero, so the parent is the one ancestor that can
// share id's weight, and then only as the block top with id's sibling being
// NYT. The next rank down is the leader in that case.
func (t *Tree) blockLeader(id NodeID) NodeID {
	top := t.tops[t.store.nodes[id].weight]
	leader := t.byRank[top]
	if leader == t.store.Parent(id) {
		leader = t.byRank[top+1]
	}
	return leader
}

// increment raises id's weight by one. id must already be the top of its
// block, or sit just below its parent at the top.
func (t *Tree) increment(id NodeID) {
	n := &t.store.nodes[id]
	w, r := n.weight, t.rank(id)
	n.weight++

	if t.tops[w] == r {
		// Step past anything already heavier; that is at most the node that
		// was just incremented below its parent.
		next := r + 1
		for next < len(t.byRank) && t.store.nodes[t.byRank[next]].weight > w {
			next++
		}
		if next < len(t.byRank) && t.store.nodes[t.byRank[next]].weight == w {
			t.tops[w] = next
		} else {
			delete(t.tops, w)
		}
	}
	if top, ok := t.tops[w+1]; !ok || r < top {
		t.tops[w+1] = r
	}
}

// swap exchanges the positions and order numbers of a and b. Weights and
// symbols stay with their nodes.
func (t *Tree) swap(a, b NodeID) {
	ra, rb := t.rank(a), t.rank(b)
	t.store.Swap(a, b)
	na, nb := &t.store.nodes[a], &t.store.nodes[b]
	na.order, nb.order = nb.order, na.order
	t.byRank[ra], t.byRank[rb] = b, a
}
