package adaptive

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncatedStream means the bits ran out mid-path or mid-raw-code.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrUnknownSymbol means the decoder reached a state the encoder could not have produced.
	ErrUnknownSymbol = errors.New("unknown symbol on decode")
	// ErrConfigurationMismatch covers invalid configs and streams written with a different one.
	ErrConfigurationMismatch = errors.New("configuration mismatch")
	// ErrSymbolOutOfRange is returned by Encode for values outside the alphabet.
	ErrSymbolOutOfRange = errors.New("symbol out of range")
	// ErrClosed is returned when encoding after the end-of-stream symbol.
	ErrClosed = errors.New("stream closed")
)

// readErr maps short reads onto ErrTruncatedStream.
func readErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedStream, what)
	}
	return fmt.Errorf("reading %s: %w", what, err)
}
