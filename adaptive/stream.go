package adaptive

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/KitchenMishap/adaptive-huffman/compress"
	"github.com/icza/bitio"
)

// Stream layout:
//
//	"AHUF" | version (1 byte) | width (1 byte) | EOF (8 bytes, big-endian) | bits...
//
// Bits are packed MSB-first and the last byte is zero-padded.
const (
	streamVersion = 1
	HeaderSize    = 14
)

var streamMagic = [4]byte{'A', 'H', 'U', 'F'}

func WriteHeader(w io.Writer, cfg Config) error {
	var hdr [HeaderSize]byte
	copy(hdr[:4], streamMagic[:])
	hdr[4] = streamVersion
	hdr[5] = cfg.Width
	binary.BigEndian.PutUint64(hdr[6:], uint64(cfg.EOF))
	_, err := w.Write(hdr[:])
	return err
}

// ReadHeader reads the config a stream was written with.
func ReadHeader(r io.Reader) (Config, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Config{}, readErr(err, "header")
	}
	if [4]byte(hdr[:4]) != streamMagic {
		return Config{}, fmt.Errorf("%w: not an adaptive huffman stream", ErrConfigurationMismatch)
	}
	if hdr[4] != streamVersion {
		return Config{}, fmt.Errorf("%w: stream version %d", ErrConfigurationMismatch, hdr[4])
	}
	return Config{Width: hdr[5], EOF: int64(binary.BigEndian.Uint64(hdr[6:]))}, nil
}

// WriteStream writes a header and the whole encoded sequence, end-of-stream
// symbol included, then flushes the final partial byte.
func WriteStream(w io.Writer, cfg Config, symbols []int64) (compress.CompressionStats, error) {
	if err := cfg.Validate(); err != nil {
		return compress.CompressionStats{}, err
	}
	if err := WriteHeader(w, cfg); err != nil {
		return compress.CompressionStats{}, err
	}
	bw := bitio.NewWriter(w)
	enc, err := NewEncoder(bw, cfg)
	if err != nil {
		return compress.CompressionStats{}, err
	}
	for _, s := range symbols {
		if err := enc.Encode(s); err != nil {
			return enc.Stats(), err
		}
	}
	if err := enc.Close(); err != nil {
		return enc.Stats(), err
	}
	return enc.Stats(), bw.Close()
}

// ReadStream checks the header against cfg before touching any payload bit,
// then decodes to the end-of-stream symbol.
func ReadStream(r io.Reader, cfg Config) ([]int64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	got, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if got != cfg {
		return nil, fmt.Errorf("%w: stream has width %d eof %d, decoder has width %d eof %d",
			ErrConfigurationMismatch, got.Width, got.EOF, cfg.Width, cfg.EOF)
	}
	dec, err := NewDecoder(bitio.NewReader(r), cfg)
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll()
}
