package jobs

import (
	"bytes"

	"github.com/KitchenMishap/adaptive-huffman/adaptive"
	"github.com/KitchenMishap/adaptive-huffman/compress"
	"github.com/KitchenMishap/adaptive-huffman/huffman"
)

// Encoded is one chunk after compression
type Encoded struct {
	Data  []byte
	Bits  uint64 // Payload bits, headers and tables excluded
	Stats compress.CompressionStats
}

// Codec compresses one independent chunk. Implementations hold no state
// between calls, so one value can serve every worker.
type Codec interface {
	Name() string
	Encode(symbols []int64) (Encoded, error)
	Decode(enc Encoded) ([]int64, error)
}

// Check that implements
var _ Codec = Adaptive{}
var _ Codec = Static{}

// Adaptive is the one-pass codec; every call starts from an empty model
type Adaptive struct {
	Config adaptive.Config
}

func (a Adaptive) Name() string { return "adaptive" }

func (a Adaptive) Encode(symbols []int64) (Encoded, error) {
	var buf bytes.Buffer
	stats, err := adaptive.WriteStream(&buf, a.Config, symbols)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Data: buf.Bytes(), Bits: stats.TotalBits, Stats: stats}, nil
}

func (a Adaptive) Decode(enc Encoded) ([]int64, error) {
	return adaptive.ReadStream(bytes.NewReader(enc.Data), a.Config)
}

// Static is the two-pass codec
type Static struct{}

func (Static) Name() string { return "static" }

func (Static) Encode(symbols []int64) (Encoded, error) {
	data, bits, err := huffman.Encode(symbols)
	if err != nil {
		return Encoded{}, err
	}
	stats := compress.CompressionStats{
		TotalBits: bits,
		Symbols:   uint64(len(symbols)),
		CodeHits:  uint64(len(symbols)),
	}
	return Encoded{Data: data, Bits: bits, Stats: stats}, nil
}

func (Static) Decode(enc Encoded) ([]int64, error) {
	return huffman.Decode(enc.Data)
}

// NewCodec picks a codec by name for an alphabet of the given width
func NewCodec(name string, width uint8) (Codec, bool) {
	switch name {
	case "adaptive":
		return Adaptive{Config: adaptive.NewConfig(width)}, true
	case "static":
		return Static{}, true
	}
	return nil, false
}
