package jobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
)

// Sink receives every finished benchmark run
type Sink interface {
	Record(res *Result) error
}

// Check that implements
var _ Sink = (*LogSink)(nil)
var _ Sink = (*CSVSink)(nil)
var _ Sink = MultiSink(nil)

type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Record(res *Result) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("benchmark run",
		"codec", res.Codec,
		"workers", res.Workers,
		"symbols", res.Symbols,
		"bytes", res.Bytes,
		"bits", res.Bits,
		"ratio", res.Ratio,
		"encode", res.Encode,
		"decode", res.Decode,
		"wall", res.Wall,
	)
	return nil
}

var csvHeader = []string{"codec", "workers", "chunks", "symbols", "bytes", "bits", "ratio",
	"literals", "encode_ms", "decode_ms", "wall_ms"}

// CSVSink writes one row per run, header first
type CSVSink struct {
	w      *csv.Writer
	header bool
}

func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

func (s *CSVSink) Record(res *Result) error {
	if !s.header {
		if err := s.w.Write(csvHeader); err != nil {
			return err
		}
		s.header = true
	}
	row := []string{
		res.Codec,
		fmt.Sprintf("%d", res.Workers),
		fmt.Sprintf("%d", len(res.PerChunk)),
		fmt.Sprintf("%d", res.Symbols),
		fmt.Sprintf("%d", res.Bytes),
		fmt.Sprintf("%d", res.Bits),
		fmt.Sprintf("%.4f", res.Ratio),
		fmt.Sprintf("%d", res.Stats.LiteralHits),
		fmt.Sprintf("%.3f", float64(res.Encode.Microseconds())/1000),
		fmt.Sprintf("%.3f", float64(res.Decode.Microseconds())/1000),
		fmt.Sprintf("%.3f", float64(res.Wall.Microseconds())/1000),
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// MultiSink hands each run to every sink in turn
type MultiSink []Sink

func (m MultiSink) Record(res *Result) error {
	for _, s := range m {
		if err := s.Record(res); err != nil {
			return err
		}
	}
	return nil
}
