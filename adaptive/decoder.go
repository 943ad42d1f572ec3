package adaptive

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// BitReader is the source a Decoder consumes. *bitio.Reader satisfies it.
type BitReader interface {
	ReadBool() (bool, error)
	ReadBits(n uint8) (uint64, error)
}

// Check that implements
var _ BitReader = (*bitio.Reader)(nil)

// Decoder replays the encoder's model symbol by symbol.
type Decoder struct {
	r    BitReader
	cfg  Config
	tree *Tree
	done bool
}

func NewDecoder(r BitReader, cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{r: r, cfg: cfg, tree: NewTree()}, nil
}

// Decode returns the next data symbol, or io.EOF once the end-of-stream
// symbol has been read.
func (d *Decoder) Decode() (int64, error) {
	if d.done {
		return 0, io.EOF
	}
	id := d.tree.Root()
	for !d.tree.IsLeaf(id) {
		right, err := d.r.ReadBool()
		if err != nil {
			return 0, readErr(err, "path")
		}
		id = d.tree.Child(id, right)
	}

	var symbol int64
	if d.tree.IsNYT(id) {
		raw, err := d.r.ReadBits(d.cfg.RawWidth())
		if err != nil {
			return 0, readErr(err, "literal")
		}
		symbol = int64(raw)
		// An encoder never escapes a symbol it already has a leaf for
		if _, seen := d.tree.FindLeaf(symbol); seen {
			return 0, fmt.Errorf("%w: literal %d already in the model", ErrUnknownSymbol, symbol)
		}
		if !d.cfg.InAlphabet(symbol) && symbol != d.cfg.EOF {
			return 0, fmt.Errorf("%w: literal %d outside a %d-bit alphabet", ErrUnknownSymbol, symbol, d.cfg.Width)
		}
	} else {
		symbol = d.tree.Symbol(id)
	}

	d.tree.Update(symbol)
	if symbol == d.cfg.EOF {
		d.done = true
		d.tree.Close()
		return 0, io.EOF
	}
	return symbol, nil
}

// DecodeAll decodes up to the end-of-stream symbol. On a fatal error the
// symbols decoded so far are returned with it; they are still valid.
func (d *Decoder) DecodeAll() ([]int64, error) {
	var out []int64
	for {
		symbol, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, symbol)
	}
}
