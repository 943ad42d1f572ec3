package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/icza/bitio"
)

var (
	ErrTruncated = errors.New("huffman: truncated stream")
	ErrCorrupt   = errors.New("huffman: corrupt table")
	ErrTooLarge  = errors.New("huffman: too many symbols")
)

// MaxSymbols bounds one encoded sequence. A single distinct symbol codes in
// zero bits, so the table alone can claim any count.
const MaxSymbols = 1 << 30

// Frequencies is the first pass: how often each symbol occurs
func Frequencies(symbols []int64) map[int64]int64 {
	freqs := make(map[int64]int64)
	for _, s := range symbols {
		freqs[s]++
	}
	return freqs
}

// Encode is the two-pass static codec. The output is a frequency table
// (count, entries, then (symbol, frequency) varint pairs sorted by symbol)
// followed by the MSB-first payload. payloadBits excludes the table.
func Encode(symbols []int64) (data []byte, payloadBits uint64, err error) {
	if len(symbols) > MaxSymbols {
		return nil, 0, fmt.Errorf("%w: %d", ErrTooLarge, len(symbols))
	}
	freqs := Frequencies(symbols)

	header := binary.AppendUvarint(nil, uint64(len(symbols)))
	header = binary.AppendUvarint(header, uint64(len(freqs)))
	values := make([]int64, 0, len(freqs))
	for v := range freqs {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for _, v := range values {
		header = binary.AppendVarint(header, v)
		header = binary.AppendUvarint(header, uint64(freqs[v]))
	}

	buf := bytes.NewBuffer(header)
	root := BuildHuffmanTree(freqs)
	if root == nil {
		return buf.Bytes(), 0, nil
	}
	codes := make(map[int64]BitCode, len(freqs))
	GenerateBitCodes(root, 0, 0, codes)

	w := bitio.NewWriter(buf)
	for _, s := range symbols {
		code := codes[s]
		if err := code.Write(w); err != nil {
			return nil, 0, err
		}
		payloadBits += uint64(code.Length)
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), payloadBits, nil
}

// Decode rebuilds the tree from the table and walks the payload.
func Decode(data []byte) ([]int64, error) {
	r := bytes.NewReader(data)
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, tableErr(err)
	}
	entries, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, tableErr(err)
	}
	// Every entry takes at least two bytes
	if entries > uint64(len(data)) || (count == 0) != (entries == 0) {
		return nil, fmt.Errorf("%w: %d symbols over %d entries", ErrCorrupt, count, entries)
	}
	if count > MaxSymbols {
		return nil, fmt.Errorf("%w: %d", ErrTooLarge, count)
	}

	freqs := make(map[int64]int64, entries)
	var total uint64
	for i := uint64(0); i < entries; i++ {
		v, err := binary.ReadVarint(r)
		if err != nil {
			return nil, tableErr(err)
		}
		f, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, tableErr(err)
		}
		if f == 0 || f > count {
			return nil, fmt.Errorf("%w: symbol %d frequency %d of %d", ErrCorrupt, v, f, count)
		}
		freqs[v] = int64(f)
		total += f
	}
	if total != count || uint64(len(freqs)) != entries {
		return nil, fmt.Errorf("%w: frequencies sum to %d, want %d", ErrCorrupt, total, count)
	}
	// With two or more codes every symbol costs at least a bit
	if entries > 1 && count > 8*uint64(r.Len()) {
		return nil, fmt.Errorf("%w: %d symbols in %d payload bytes", ErrTruncated, count, r.Len())
	}

	out := make([]int64, 0, min(count, 1<<20))
	root := BuildHuffmanTree(freqs)
	if root == nil {
		return out, nil
	}
	br := bitio.NewReader(r)
	for uint64(len(out)) < count {
		v, err := ReadValue(br, root)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return out, ErrTruncated
			}
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

func tableErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return fmt.Errorf("%w: %v", ErrCorrupt, err)
}
