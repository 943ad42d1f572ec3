package adaptive

import (
	"fmt"

	"github.com/KitchenMishap/adaptive-huffman/compress"
	"github.com/icza/bitio"
)

// BitWriter is the sink an Encoder emits into. *bitio.Writer satisfies it.
type BitWriter interface {
	WriteBool(b bool) error
	WriteBits(r uint64, n uint8) error
}

// Check that implements
var _ BitWriter = (*bitio.Writer)(nil)

// Encoder turns symbols into adaptive Huffman codes, one at a time.
// It must be closed to emit the end-of-stream symbol.
type Encoder struct {
	w      BitWriter
	cfg    Config
	tree   *Tree
	path   []byte
	stats  compress.CompressionStats
	closed bool
}

func NewEncoder(w BitWriter, cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{w: w, cfg: cfg, tree: NewTree(), path: make([]byte, 0, 64)}, nil
}

// Encode emits the code for one data symbol and updates the model.
func (e *Encoder) Encode(symbol int64) error {
	if e.closed {
		return ErrClosed
	}
	if !e.cfg.InAlphabet(symbol) {
		return fmt.Errorf("%w: %d with width %d", ErrSymbolOutOfRange, symbol, e.cfg.Width)
	}
	if err := e.encode(symbol); err != nil {
		return err
	}
	e.stats.Symbols++
	return nil
}

// Close encodes the end-of-stream symbol exactly once and releases the model.
// It does not flush w.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	err := e.encode(e.cfg.EOF)
	e.tree.Close()
	return err
}

func (e *Encoder) Stats() compress.CompressionStats { return e.stats }

func (e *Encoder) encode(symbol int64) error {
	if leaf, ok := e.tree.FindLeaf(symbol); ok {
		n, err := e.writePath(leaf)
		if err != nil {
			return err
		}
		e.stats.TotalBits += n
		e.stats.CodeHits++
	} else {
		// First occurrence: escape through NYT, then the literal
		n, err := e.writePath(e.tree.NYT())
		if err != nil {
			return err
		}
		if err := e.w.WriteBits(uint64(symbol), e.cfg.RawWidth()); err != nil {
			return fmt.Errorf("writing literal: %w", err)
		}
		n += uint64(e.cfg.RawWidth())
		e.stats.TotalBits += n
		e.stats.LiteralBits += n
		if symbol != e.cfg.EOF {
			e.stats.LiteralHits++
		}
	}
	e.tree.Update(symbol)
	return nil
}

func (e *Encoder) writePath(id NodeID) (uint64, error) {
	e.path = e.tree.PathTo(id, e.path)
	for _, bit := range e.path {
		if err := e.w.WriteBool(bit == 1); err != nil {
			return 0, fmt.Errorf("writing path: %w", err)
		}
	}
	return uint64(len(e.path)), nil
}
