package compress

// CompressionStats accumulates what one stream (or several, via Add) cost.
type CompressionStats struct {
	TotalBits   uint64 // Every bit emitted, end-of-stream code included
	Symbols     uint64 // Data symbols, the end-of-stream symbol excluded
	CodeHits    uint64 // Symbols sent as a path to their own leaf
	LiteralHits uint64 // Symbols sent as escape + raw literal (first occurrences)
	LiteralBits uint64 // Bits spent on escapes and literals
}

func (s *CompressionStats) Add(other CompressionStats) {
	s.TotalBits += other.TotalBits
	s.Symbols += other.Symbols
	s.CodeHits += other.CodeHits
	s.LiteralHits += other.LiteralHits
	s.LiteralBits += other.LiteralBits
}

// Ratio is (symbols * width) / encoded bits; 0 when nothing was encoded.
func (s CompressionStats) Ratio(width uint8) float64 {
	return Ratio(s.Symbols, width, s.TotalBits)
}

func Ratio(symbols uint64, width uint8, bits uint64) float64 {
	if bits == 0 {
		return 0
	}
	return float64(symbols*uint64(width)) / float64(bits)
}

// BitsPerSymbol is the mean code length; 0 when there were no symbols.
func (s CompressionStats) BitsPerSymbol() float64 {
	if s.Symbols == 0 {
		return 0
	}
	return float64(s.TotalBits) / float64(s.Symbols)
}
