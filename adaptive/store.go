package adaptive

// NodeID addresses a node slot in a Store
type NodeID int32

// None is the absent link (no parent, no child)
const None NodeID = -1

type node struct {
	symbol int64
	weight uint64
	order  int
	parent NodeID
	left   NodeID
	right  NodeID
	nyt    bool
	live   bool
}

// Store is an arena owning every node of one tree. Links are slot indices,
// so a swap is an exchange of index fields and never leaves a dangling pointer.
// Released slots go on a free list and are handed out again by Alloc.
type Store struct {
	nodes []node
	free  []NodeID
	live  int
}

// Alloc creates a childless node and returns its id.
func (s *Store) Alloc(weight uint64, order int, parent NodeID) NodeID {
	n := node{weight: weight, order: order, parent: parent, left: None, right: None, live: true}
	s.live++
	if len(s.free) > 0 {
		id := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.nodes[id] = n
		return id
	}
	s.nodes = append(s.nodes, n)
	return NodeID(len(s.nodes) - 1)
}

func (s *Store) Parent(id NodeID) NodeID { return s.nodes[id].parent }
func (s *Store) Left(id NodeID) NodeID   { return s.nodes[id].left }
func (s *Store) Right(id NodeID) NodeID  { return s.nodes[id].right }
func (s *Store) IsLeaf(id NodeID) bool   { return s.nodes[id].left == None && s.nodes[id].right == None }

// Len is the number of live nodes.
func (s *Store) Len() int { return s.live }

// Attach makes left and right the children of parent, fixing both directions.
func (s *Store) Attach(parent, left, right NodeID) {
	s.nodes[parent].left = left
	s.nodes[parent].right = right
	s.nodes[left].parent = parent
	s.nodes[right].parent = parent
}

// childSlot returns the link field in parent that currently points at child.
func (s *Store) childSlot(parent, child NodeID) *NodeID {
	p := &s.nodes[parent]
	if p.left == child {
		return &p.left
	}
	return &p.right
}

// Swap exchanges the tree positions of a and b. Neither may be the root and
// neither may be an ancestor of the other; the caller checks that.
func (s *Store) Swap(a, b NodeID) {
	pa, pb := s.nodes[a].parent, s.nodes[b].parent
	slotA := s.childSlot(pa, a)
	slotB := s.childSlot(pb, b)
	*slotA, *slotB = b, a
	s.nodes[a].parent, s.nodes[b].parent = pb, pa
}

// Release frees every node reachable from root and returns how many were freed.
// Nodes already released are skipped, so calling it twice is harmless.
func (s *Store) Release(root NodeID) int {
	if root == None || int(root) >= len(s.nodes) || !s.nodes[root].live {
		return 0
	}
	released := 0
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &s.nodes[id]
		if !n.live {
			continue
		}
		if n.left != None {
			stack = append(stack, n.left)
		}
		if n.right != None {
			stack = append(stack, n.right)
		}
		*n = node{parent: None, left: None, right: None}
		s.free = append(s.free, id)
		s.live--
		released++
	}
	return released
}
