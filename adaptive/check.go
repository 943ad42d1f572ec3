package adaptive

import "fmt"

// Check verifies the whole tree against the sibling property and the model's
// own bookkeeping. It is O(n) and meant for tests and debugging.
func (t *Tree) Check() error {
	if t.root == None {
		return fmt.Errorf("tree is closed")
	}
	if t.store.Parent(t.root) != None {
		return fmt.Errorf("root %d has a parent", t.root)
	}
	if t.Order(t.root) != TopOrder {
		return fmt.Errorf("root order %d, want %d", t.Order(t.root), TopOrder)
	}

	reached := 0
	nyts := 0
	leaves := 0
	stack := []NodeID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		n := t.store.nodes[id]
		if !n.live {
			return fmt.Errorf("node %d reachable but released", id)
		}
		if r := t.rank(id); r < 0 || r >= len(t.byRank) || t.byRank[r] != id {
			return fmt.Errorf("node %d order %d not indexed", id, n.order)
		}

		if (n.left == None) != (n.right == None) {
			return fmt.Errorf("node %d has a single child", id)
		}
		if n.left == None {
			leaves++
			if n.nyt {
				nyts++
				if id != t.nyt {
					return fmt.Errorf("stray NYT leaf %d", id)
				}
				if n.weight != 0 {
					return fmt.Errorf("NYT weight %d", n.weight)
				}
				continue
			}
			if got, ok := t.leaves[n.symbol]; !ok || got != id {
				return fmt.Errorf("leaf %d symbol %d not mapped to it", id, n.symbol)
			}
			continue
		}

		if n.nyt {
			return fmt.Errorf("internal node %d flagged NYT", id)
		}
		l, r := t.store.nodes[n.left], t.store.nodes[n.right]
		if l.parent != id || r.parent != id {
			return fmt.Errorf("children of %d do not point back", id)
		}
		if n.weight != l.weight+r.weight {
			return fmt.Errorf("node %d weight %d != %d+%d", id, n.weight, l.weight, r.weight)
		}
		if n.order <= l.order || n.order <= r.order {
			return fmt.Errorf("node %d order %d not above children %d,%d", id, n.order, l.order, r.order)
		}
		if d := l.order - r.order; d != 1 && d != -1 {
			return fmt.Errorf("siblings %d,%d orders %d,%d not adjacent", n.left, n.right, l.order, r.order)
		}
		stack = append(stack, n.left, n.right)
	}

	if nyts != 1 {
		return fmt.Errorf("%d NYT leaves", nyts)
	}
	if reached != len(t.byRank) || reached != t.store.Len() {
		return fmt.Errorf("reached %d nodes, indexed %d, live %d", reached, len(t.byRank), t.store.Len())
	}
	if leaves-1 != len(t.leaves) {
		return fmt.Errorf("%d symbol leaves, %d mapped symbols", leaves-1, len(t.leaves))
	}
	if t.byRank[len(t.byRank)-1] != t.nyt {
		return fmt.Errorf("NYT does not hold the lowest order")
	}

	// Walk orders upward: weights must never decrease
	for r := len(t.byRank) - 1; r > 0; r-- {
		lo, hi := t.byRank[r], t.byRank[r-1]
		if t.Weight(lo) > t.Weight(hi) {
			return fmt.Errorf("order %d weight %d above order %d weight %d",
				t.Order(lo), t.Weight(lo), t.Order(hi), t.Weight(hi))
		}
	}

	// Block tops
	blocks := 0
	for r, id := range t.byRank {
		w := t.Weight(id)
		if r > 0 && t.Weight(t.byRank[r-1]) == w {
			continue
		}
		blocks++
		if top, ok := t.tops[w]; !ok || top != r {
			return fmt.Errorf("weight %d block starts at rank %d, indexed at %d (%v)", w, r, top, ok)
		}
	}
	if blocks != len(t.tops) {
		return fmt.Errorf("%d blocks, %d indexed", blocks, len(t.tops))
	}
	return nil
}
