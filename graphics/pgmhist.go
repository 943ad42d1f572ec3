package graphics

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// PgmHist is a greyscale canvas; each plot adds one to the pixels it touches
// and the brightest pixel comes out white.
type PgmHist struct {
	width  int
	height int
	data   []uint16 // Row major, y=0 at the top
}

func NewPgmHist(width, height int) *PgmHist {
	if width < 1 {
		width = DefaultWidth
	}
	if height < 1 {
		height = DefaultHeight
	}
	return &PgmHist{width: width, height: height, data: make([]uint16, width*height)}
}

func (ph *PgmHist) Size() (int, int) { return ph.width, ph.height }

// PlotPoint marks a small cross. x and y run from 0 to 1, y upwards.
func (ph *PgmHist) PlotPoint(x float64, y float64) {
	pixelX := int(float64(ph.width) * x)
	pixelY := int(float64(ph.height) * (1 - y))
	ph.PlotPixel(pixelX, pixelY)
	ph.PlotPixel(pixelX-1, pixelY)
	ph.PlotPixel(pixelX+1, pixelY)
	ph.PlotPixel(pixelX, pixelY+1)
	ph.PlotPixel(pixelX, pixelY-1)
}

func (ph *PgmHist) PlotVertical(x float64) {
	pixelX := int(float64(ph.width) * x)
	for y := range ph.height {
		ph.PlotPixel(pixelX, y)
	}
}

func (ph *PgmHist) PlotHorizontal(y float64) {
	pixelY := int(float64(ph.height) * (1 - y))
	for x := range ph.width {
		ph.PlotPixel(x, pixelY)
	}
}

// PlotColumn fills the column at x from the bottom edge up to height y.
func (ph *PgmHist) PlotColumn(x float64, y float64) {
	pixelX := int(float64(ph.width) * x)
	top := int(float64(ph.height) * (1 - y))
	for pixelY := ph.height - 1; pixelY >= top; pixelY-- {
		ph.PlotPixel(pixelX, pixelY)
	}
}

func (ph *PgmHist) PlotPixel(x int, y int) {
	if x >= 0 && x < ph.width && y >= 0 && y < ph.height {
		if v := &ph.data[y*ph.width+x]; *v < math.MaxUint16 {
			*v++
		}
	}
}

func (ph *PgmHist) Pixel(x, y int) uint16 { return ph.data[y*ph.width+x] }

// WriteTo writes a binary (P5) PGM with 16-bit big-endian samples.
func (ph *PgmHist) WriteTo(w io.Writer) (int64, error) {
	peak := uint16(1)
	for _, v := range ph.data {
		peak = max(peak, v)
	}
	bw := bufio.NewWriter(w)
	n, err := fmt.Fprintf(bw, "P5 %d %d 65535\n", ph.width, ph.height)
	written := int64(n)
	if err != nil {
		return written, err
	}
	for _, v := range ph.data {
		scaled := uint32(v) * math.MaxUint16 / uint32(peak)
		if err := bw.WriteByte(byte(scaled >> 8)); err != nil {
			return written, err
		}
		if err := bw.WriteByte(byte(scaled)); err != nil {
			return written, err
		}
		written += 2
	}
	return written, bw.Flush()
}

// SymbolHistogram plots one column per distinct symbol of a width-bit
// alphabet, with height log(1+count) relative to the most common symbol.
func SymbolHistogram(freqs map[int64]int64, width uint8, ph *PgmHist) {
	alphabet := math.Ldexp(1, int(width))
	peak := int64(0)
	for _, c := range freqs {
		peak = max(peak, c)
	}
	if peak == 0 {
		return
	}
	top := math.Log1p(float64(peak))
	for s, c := range freqs {
		ph.PlotColumn(float64(s)/alphabet, math.Log1p(float64(c))/top)
	}
}
