// Package dataset reads and writes flat fixed-width binary volumes as
// sequences of symbols. A symbol is the unsigned bit pattern of one value.
package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

type Kind int

const (
	Uint8 Kind = iota
	Int16
	Uint16
	Float32
)

var kindNames = map[Kind]string{
	Uint8:   "uint8",
	Int16:   "int16",
	Uint16:  "uint16",
	Float32: "float32",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Size is the number of bytes per value
func (k Kind) Size() int { return int(k.Width()) / 8 }

// Width is the alphabet width in bits
func (k Kind) Width() uint8 {
	switch k {
	case Uint8:
		return 8
	case Int16, Uint16:
		return 16
	default:
		return 32
	}
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown dataset kind %q", name)
}

// KindFromName reads the kind off a catalog style file name such as
// "bonsai_256x256x256_uint8.raw".
func KindFromName(path string) (Kind, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	idx := strings.LastIndexByte(base, '_')
	if idx < 0 {
		return 0, fmt.Errorf("no kind suffix in %q", path)
	}
	return ParseKind(base[idx+1:])
}

// IngestionError is a dataset that could not be read. The codec is never
// invoked for it.
type IngestionError struct {
	Path string
	Err  error
}

func (e *IngestionError) Error() string { return fmt.Sprintf("ingesting %s: %v", e.Path, e.Err) }
func (e *IngestionError) Unwrap() error { return e.Err }

// Read loads the whole file as little-endian values. A trailing partial value
// is ignored.
func Read(path string, kind Kind) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IngestionError{Path: path, Err: err}
	}
	return Decode(data, kind), nil
}

// Decode converts raw little-endian bytes into symbols
func Decode(data []byte, kind Kind) []int64 {
	size := kind.Size()
	out := make([]int64, len(data)/size)
	for i := range out {
		b := data[i*size : (i+1)*size]
		switch kind {
		case Uint8:
			out[i] = int64(b[0])
		case Int16, Uint16:
			out[i] = int64(binary.LittleEndian.Uint16(b))
		default:
			out[i] = int64(binary.LittleEndian.Uint32(b))
		}
	}
	return out
}

// Write stores symbols back in the file layout Read understands
func Write(w io.Writer, kind Kind, symbols []int64) error {
	size := kind.Size()
	buf := make([]byte, len(symbols)*size)
	for i, s := range symbols {
		b := buf[i*size : (i+1)*size]
		switch kind {
		case Uint8:
			b[0] = byte(s)
		case Int16, Uint16:
			binary.LittleEndian.PutUint16(b, uint16(s))
		default:
			binary.LittleEndian.PutUint32(b, uint32(s))
		}
	}
	_, err := w.Write(buf)
	return err
}

// Float32Symbol is the symbol for a float32 value
func Float32Symbol(f float32) int64 { return int64(math.Float32bits(f)) }

// Int16Symbol is the symbol for an int16 value (its two's complement pattern)
func Int16Symbol(v int16) int64 { return int64(uint16(v)) }
