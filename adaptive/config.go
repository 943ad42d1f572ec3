package adaptive

import "fmt"

// MaxWidth is the widest alphabet supported (float32 bit patterns).
const MaxWidth = 32

// Config must be identical on both ends of a stream. Nothing about it is
// negotiated in-band; the stream header only lets the decoder reject a mismatch.
type Config struct {
	// Width is the alphabet bit width: symbols are 0 .. 1<<Width-1
	Width uint8
	// EOF is the reserved end-of-stream symbol, outside the alphabet
	EOF int64
}

// NewConfig returns the config for an alphabet of the given width with the
// sentinel just past the last data symbol.
func NewConfig(width uint8) Config {
	return Config{Width: width, EOF: int64(1) << width}
}

// RawWidth is the width of an escaped literal. One bit wider than the
// alphabet so the sentinel fits.
func (c Config) RawWidth() uint8 { return c.Width + 1 }

// InAlphabet reports whether symbol is a data symbol.
func (c Config) InAlphabet(symbol int64) bool {
	return symbol >= 0 && symbol < int64(1)<<c.Width
}

func (c Config) Validate() error {
	if c.Width == 0 || c.Width > MaxWidth {
		return fmt.Errorf("%w: width %d not in 1..%d", ErrConfigurationMismatch, c.Width, MaxWidth)
	}
	if c.EOF < int64(1)<<c.Width || c.EOF >= int64(1)<<c.RawWidth() {
		return fmt.Errorf("%w: end-of-stream %d not representable outside a %d-bit alphabet",
			ErrConfigurationMismatch, c.EOF, c.Width)
	}
	return nil
}
