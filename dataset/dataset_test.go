package dataset

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(8), Uint8.Width())
	assert.Equal(2, Int16.Size())
	assert.Equal(4, Float32.Size())
	assert.Equal("uint16", Uint16.String())

	k, err := ParseKind("FLOAT32")
	assert.NoError(err)
	assert.Equal(Float32, k)
	_, err = ParseKind("int64")
	assert.Error(err)
}

func TestKindFromName(t *testing.T) {
	for _, e := range Catalog {
		k, err := KindFromName(e.Path("/data"))
		require.NoError(t, err, e.File)
		assert.Equal(t, e.Kind, k, e.File)
	}
	_, err := KindFromName("plain.raw")
	assert.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cases := map[Kind][]int64{
		Uint8:   {0, 1, 255, 128},
		Int16:   {Int16Symbol(-1), Int16Symbol(-32768), 0, 32767},
		Uint16:  {65535, 0, 1},
		Float32: {Float32Symbol(1.5), Float32Symbol(-0.25), 0},
	}
	for kind, symbols := range cases {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, kind, symbols))
		// Trailing partial value is dropped
		buf.WriteByte(0xAB)
		path := filepath.Join(dir, kind.String()+".raw")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		got, err := Read(path, kind)
		require.NoError(t, err)
		if kind == Uint8 {
			assert.Equal(t, append(symbols, 0xAB), got)
		} else {
			assert.Equal(t, symbols, got)
		}
	}
}

func TestDecodeLittleEndian(t *testing.T) {
	assert.Equal(t, []int64{0x0201, 0x0403}, Decode([]byte{1, 2, 3, 4}, Uint16))
	assert.Equal(t, []int64{0x04030201}, Decode([]byte{1, 2, 3, 4, 5}, Float32))
	assert.Equal(t, uint32(0xBF800000), uint32(Float32Symbol(-1)))
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.raw"), Uint8)
	var ie *IngestionError
	require.True(t, errors.As(err, &ie))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("vertebra")
	assert.True(t, ok)
	assert.Equal(t, Uint16, e.Kind)
	_, ok = Lookup("nope")
	assert.False(t, ok)
}
