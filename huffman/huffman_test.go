package huffman

import (
	"encoding/binary"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHuffmanTreeCodes(t *testing.T) {
	assert := assert.New(t)
	root := BuildHuffmanTree(map[int64]int64{'a': 5, 'b': 2, 'c': 1, 'd': 1})
	codes := make(map[int64]BitCode)
	GenerateBitCodes(root, 0, 0, codes)

	assert.Equal(int64(9), root.Freq)
	assert.Equal(1, codes['a'].Length)
	assert.Equal(2, codes['b'].Length)
	assert.Equal(3, codes['c'].Length)
	assert.Equal(3, codes['d'].Length)

	// Prefix free
	for x, cx := range codes {
		for y, cy := range codes {
			if x == y || cx.Length > cy.Length {
				continue
			}
			assert.NotEqual(cx.Bits, cy.Bits>>(cy.Length-cx.Length), "%c prefixes %c", x, y)
		}
	}
}

func TestBuildHuffmanTreeDeterministic(t *testing.T) {
	freqs := map[int64]int64{}
	for i := int64(0); i < 200; i++ {
		freqs[i] = 1 + i%5
	}
	first := make(map[int64]BitCode)
	GenerateBitCodes(BuildHuffmanTree(freqs), 0, 0, first)
	for i := 0; i < 10; i++ {
		again := make(map[int64]BitCode)
		GenerateBitCodes(BuildHuffmanTree(freqs), 0, 0, again)
		require.Equal(t, first, again)
	}
	assert.Nil(t, BuildHuffmanTree(nil))
}

func TestStaticRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	cases := map[string][]int64{
		"empty":  {},
		"single": {42},
		"same":   {7, 7, 7, 7, 7},
		"two":    {0, 1, 1, 0, 1},
		"signed": {-5, 3, -5, 1 << 40, 0},
	}
	random := make([]int64, 4000)
	for i := range random {
		random[i] = int64(rng.IntN(1 + rng.IntN(256)))
	}
	cases["random"] = random

	for name, symbols := range cases {
		t.Run(name, func(t *testing.T) {
			data, bits, err := Encode(symbols)
			require.NoError(t, err)
			out, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, len(symbols), len(out))
			if len(symbols) > 0 {
				assert.Equal(t, symbols, out)
			}
			if len(Frequencies(symbols)) <= 1 {
				assert.Zero(t, bits)
			}
		})
	}
}

func TestStaticPayloadBits(t *testing.T) {
	symbols := []int64{'a', 'a', 'a', 'a', 'a', 'b', 'b', 'c', 'd'}
	_, bits, err := Encode(symbols)
	require.NoError(t, err)
	// 5*1 + 2*2 + 3 + 3
	assert.Equal(t, uint64(15), bits)
}

func TestStaticDecodeErrors(t *testing.T) {
	data, _, err := Encode([]int64{1, 2, 3, 1, 2, 1})
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrTruncated)
	_, err = Decode(data[:1])
	assert.ErrorIs(t, err, ErrTruncated)
	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrTruncated)

	// Count says 9 but the table sums to 6
	bad := append([]byte{9}, data[1:]...)
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrCorrupt)
}

// table builds a frequency table header by hand, followed by payload
func table(count uint64, pairs [][2]uint64, payload ...byte) []byte {
	data := binary.AppendUvarint(nil, count)
	data = binary.AppendUvarint(data, uint64(len(pairs)))
	for _, p := range pairs {
		data = binary.AppendVarint(data, int64(p[0]))
		data = binary.AppendUvarint(data, p[1])
	}
	return append(data, payload...)
}

func TestStaticDecodeRejectsHostileTables(t *testing.T) {
	cases := map[string]struct {
		data []byte
		want error
	}{
		"huge single symbol run": {table(1<<40, [][2]uint64{{7, 1 << 40}}), ErrTooLarge},
		"frequency past int64":   {table(3, [][2]uint64{{1, 1 << 63}, {2, 3}}, 0xff), ErrCorrupt},
		"zero frequency":         {table(3, [][2]uint64{{1, 0}, {2, 3}}, 0xff), ErrCorrupt},
		"duplicate symbol":       {table(6, [][2]uint64{{1, 3}, {1, 3}}, 0xff), ErrCorrupt},
		"count beyond payload":   {table(1000, [][2]uint64{{1, 500}, {2, 500}}, 0x00), ErrTruncated},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := Decode(c.data)
			assert.ErrorIs(t, err, c.want)
			assert.Empty(t, out)
		})
	}

	// A long run of one symbol is legitimately all table
	out, err := Decode(table(5000, [][2]uint64{{9, 5000}}))
	require.NoError(t, err)
	assert.Len(t, out, 5000)
	assert.Equal(t, int64(9), out[4999])
}
