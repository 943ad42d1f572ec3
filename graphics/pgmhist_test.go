package graphics

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgmHistPlots(t *testing.T) {
	assert := assert.New(t)
	ph := NewPgmHist(10, 4)
	ph.PlotVertical(0.5)
	ph.PlotHorizontal(0.5)

	assert.Equal(uint16(1), ph.Pixel(5, 0))
	assert.Equal(uint16(2), ph.Pixel(5, 2))
	assert.Equal(uint16(1), ph.Pixel(0, 2))
	assert.Equal(uint16(0), ph.Pixel(0, 0))

	// Off-canvas plots are dropped
	ph.PlotPixel(-1, 0)
	ph.PlotPixel(10, 3)
	ph.PlotPoint(2, 2)
}

func TestPgmHistColumn(t *testing.T) {
	ph := NewPgmHist(4, 4)
	ph.PlotColumn(0, 0.5)
	for y := 0; y < 4; y++ {
		want := uint16(0)
		if y >= 2 {
			want = 1
		}
		assert.Equal(t, want, ph.Pixel(0, y), "row %d", y)
	}
}

func TestPgmHistWriteTo(t *testing.T) {
	ph := NewPgmHist(3, 2)
	ph.PlotPixel(0, 0)
	ph.PlotPixel(0, 0)
	ph.PlotPixel(2, 1)

	var buf bytes.Buffer
	n, err := ph.WriteTo(&buf)
	require.NoError(t, err)
	header := fmt.Sprintf("P5 %d %d 65535\n", 3, 2)
	require.Equal(t, int64(len(header)+12), n)
	require.Equal(t, int(n), buf.Len())

	px := buf.Bytes()[len(header):]
	assert.Equal(t, []byte{0xff, 0xff}, px[0:2])
	assert.Equal(t, []byte{0x00, 0x00}, px[2:4])
	// Half the peak
	assert.Equal(t, []byte{0x7f, 0xff}, px[10:12])
}

func TestSymbolHistogram(t *testing.T) {
	ph := NewPgmHist(256, 100)
	SymbolHistogram(map[int64]int64{0: 1000, 128: 1}, 8, ph)

	// The most common symbol reaches the top
	assert.Equal(t, uint16(1), ph.Pixel(0, 0))
	assert.Equal(t, uint16(1), ph.Pixel(0, 99))
	// A single occurrence is a short bar
	assert.Equal(t, uint16(0), ph.Pixel(128, 50))
	assert.Equal(t, uint16(1), ph.Pixel(128, 99))
	assert.Equal(t, uint16(0), ph.Pixel(64, 99))

	empty := NewPgmHist(4, 4)
	SymbolHistogram(nil, 8, empty)
	assert.Equal(t, uint16(0), empty.Pixel(0, 3))
}
