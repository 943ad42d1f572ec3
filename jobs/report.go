package jobs

import (
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintReport writes a human summary of one run
func PrintReport(w io.Writer, res *Result, width uint8) {
	p := message.NewPrinter(language.English) // For commas between thousands
	original := uint64(res.Symbols) * uint64(width) / 8
	p.Fprintf(w, "Codec: %s (%d workers, %d chunks)\n", res.Codec, res.Workers, len(res.PerChunk))
	p.Fprintf(w, "Symbols: %d (%s raw)\n", res.Symbols, humanize.Bytes(original))
	p.Fprintf(w, "Encoded: %d bits payload, %s on the wire\n", res.Bits, humanize.Bytes(uint64(res.Bytes)))
	p.Fprintf(w, "Literal hits: %d\n", res.Stats.LiteralHits)
	p.Fprintf(w, "Code hits: %d\n", res.Stats.CodeHits)
	p.Fprintf(w, "Compression Ratio: %.4f\n", res.Ratio)
	p.Fprintf(w, "[%8.3f s] encode (summed over chunks)\n", res.Encode.Seconds())
	p.Fprintf(w, "[%8.3f s] decode (summed over chunks)\n", res.Decode.Seconds())
	p.Fprintf(w, "[%8.3f s] wall\n", res.Wall.Seconds())
}
