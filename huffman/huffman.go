package huffman

import (
	"container/heap"
	"sort"

	"github.com/icza/bitio"
)

type Node struct {
	Value       int64 // The symbol, for leaves
	Freq        int64 // How often it appeared
	Left, Right *Node
	seq         int // Creation order, breaks frequency ties
}

func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// The compressed representation
type BitCode struct {
	Bits   uint64 // The actual bit pattern
	Length int    // How many bits used
}

// Write emits the code MSB first
func (bc BitCode) Write(w *bitio.Writer) error {
	if bc.Length == 0 {
		return nil
	}
	return w.WriteBits(bc.Bits, uint8(bc.Length))
}

type PriorityQueue []*Node

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Freq != pq[j].Freq {
		return pq[i].Freq < pq[j].Freq
	}
	return pq[i].seq < pq[j].seq
}
func (pq PriorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*Node)) }
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// BuildHuffmanTree returns nil for an empty map. The same frequencies always
// give the same tree, which is what lets a decoder rebuild it from the table.
func BuildHuffmanTree(freqs map[int64]int64) *Node {
	if len(freqs) == 0 {
		return nil
	}
	values := make([]int64, 0, len(freqs))
	for val := range freqs {
		values = append(values, val)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	pq := make(PriorityQueue, 0, len(freqs))
	seq := 0
	for _, val := range values {
		pq = append(pq, &Node{Value: val, Freq: freqs[val], seq: seq})
		seq++
	}
	heap.Init(&pq)

	for pq.Len() > 1 {
		left := heap.Pop(&pq).(*Node)
		right := heap.Pop(&pq).(*Node)

		// Create a parent with sum of frequencies
		parent := &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			seq:   seq,
		}
		seq++
		heap.Push(&pq, parent)
	}
	return heap.Pop(&pq).(*Node)
}

// GenerateBitCodes fills table with one code per leaf. A tree that is a
// single leaf gets a zero-length code. Codes deeper than 64 bits are not
// representable in a BitCode.
func GenerateBitCodes(node *Node, currentBits uint64, depth int, table map[int64]BitCode) {
	if node.IsLeaf() {
		// Leaf node - store the result
		table[node.Value] = BitCode{Bits: currentBits, Length: depth}
		return
	}
	// Left = 0, Right = 1
	if node.Left != nil {
		GenerateBitCodes(node.Left, currentBits<<1, depth+1, table)
	}
	if node.Right != nil {
		GenerateBitCodes(node.Right, (currentBits<<1)|1, depth+1, table)
	}
}

// ReadValue walks the tree one bit at a time down to a leaf
func ReadValue(r *bitio.Reader, root *Node) (int64, error) {
	current := root
	for !current.IsLeaf() {
		right, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if right {
			current = current.Right
		} else {
			current = current.Left
		}
	}
	return current.Value, nil
}
