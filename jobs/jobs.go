package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/KitchenMishap/adaptive-huffman/compress"
	"github.com/KitchenMishap/adaptive-huffman/verify"
	"golang.org/x/sync/errgroup"
)

// Split cuts symbols into n contiguous chunks whose lengths differ by at most
// one. Fewer chunks come back when there are fewer symbols than n.
func Split(symbols []int64, n int) [][]int64 {
	if n < 1 {
		n = 1
	}
	if n > len(symbols) {
		n = max(len(symbols), 1)
	}
	chunks := make([][]int64, n)
	size, extra := len(symbols)/n, len(symbols)%n
	start := 0
	for i := range chunks {
		end := start + size
		if i < extra {
			end++
		}
		chunks[i] = symbols[start:end:end]
		start = end
	}
	return chunks
}

// Join concatenates chunks back in chunk order
func Join(chunks [][]int64) []int64 {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]int64, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

// DefaultWorkers leaves a couple of cores for the OS on bigger machines
func DefaultWorkers() int {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > 4 {
		numWorkers -= 2 // Some spare for the OS
	}
	return numWorkers
}

type Options struct {
	Codec   Codec
	Width   uint8 // Alphabet width, for the compression ratio
	Workers int   // Defaults to DefaultWorkers()
	Chunks  int   // Defaults to Workers
	Timeout time.Duration
	Metrics *Metrics
	Logger  *slog.Logger
}

type ChunkResult struct {
	Index   int
	Symbols int
	Bytes   int
	Bits    uint64
	Stats   compress.CompressionStats
	Encode  time.Duration
	Decode  time.Duration
}

type Result struct {
	Codec    string
	Workers  int
	Symbols  int
	Bytes    int    // Everything the chunks serialized to
	Bits     uint64 // Payload bits only
	Ratio    float64
	Stats    compress.CompressionStats
	Encode   time.Duration // Summed over chunks
	Decode   time.Duration // Summed over chunks
	Wall     time.Duration
	Decoded  []int64
	PerChunk []ChunkResult
}

// Run compresses and decompresses symbols as independent chunks on a pool of
// workers, checks every chunk round-trips, and joins the decoded chunks back in
// order. Each chunk gets a fresh model; workers share nothing but the inputs.
func Run(ctx context.Context, symbols []int64, opts Options) (*Result, error) {
	if opts.Codec == nil {
		return nil, errors.New("jobs: no codec")
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers()
	}
	if opts.Chunks < 1 {
		opts.Chunks = opts.Workers
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	chunks := Split(symbols, opts.Chunks)
	decoded := make([][]int64, len(chunks))
	results := make([]ChunkResult, len(chunks))
	completed := int64(0) // Atomic int

	// Feed chunk ids to the pool; results land in slots owned by the chunk id
	chunkChan := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			for id := range chunkChan {
				// Check if another worker already failed
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				res, out, err := runChunk(opts.Codec, id, chunks[id])
				if err != nil {
					return fmt.Errorf("chunk %d: %w", id, err)
				}
				results[id] = res
				decoded[id] = out
				opts.Metrics.observe(opts.Codec.Name(), res)

				done := atomic.AddInt64(&completed, 1)
				logger.Debug("chunk done", "codec", opts.Codec.Name(), "chunk", id,
					"completed", done, "of", len(chunks), "bits", res.Bits)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(chunkChan) // Workers stop when the channel is empty and closed
		for id := range chunks {
			select {
			case chunkChan <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Codec:    opts.Codec.Name(),
		Workers:  opts.Workers,
		Symbols:  len(symbols),
		Decoded:  Join(decoded),
		PerChunk: results,
	}
	for _, r := range results {
		result.Bytes += r.Bytes
		result.Bits += r.Bits
		result.Stats.Add(r.Stats)
		result.Encode += r.Encode
		result.Decode += r.Decode
	}
	if err := verify.Sequences(symbols, result.Decoded); err != nil {
		return nil, fmt.Errorf("joined output: %w", err)
	}
	result.Ratio = compress.Ratio(uint64(len(symbols)), opts.Width, result.Bits)
	result.Wall = time.Since(startTime)
	return result, nil
}

func runChunk(codec Codec, id int, chunk []int64) (ChunkResult, []int64, error) {
	res := ChunkResult{Index: id, Symbols: len(chunk)}

	start := time.Now()
	enc, err := codec.Encode(chunk)
	if err != nil {
		return res, nil, fmt.Errorf("encode: %w", err)
	}
	res.Encode = time.Since(start)
	res.Bytes = len(enc.Data)
	res.Bits = enc.Bits
	res.Stats = enc.Stats

	start = time.Now()
	out, err := codec.Decode(enc)
	if err != nil {
		return res, nil, fmt.Errorf("decode: %w", err)
	}
	res.Decode = time.Since(start)

	if err := verify.Sequences(chunk, out); err != nil {
		return res, nil, fmt.Errorf("round trip: %w", err)
	}
	return res, out, nil
}

// Sweep runs every codec at 1, 1+step, ... workers up to maxWorkers (chunks
// follow the worker count) and hands each result to sink.
func Sweep(ctx context.Context, symbols []int64, codecs []Codec, maxWorkers, step int, base Options, sink Sink) error {
	if step < 1 {
		step = 1
	}
	for _, codec := range codecs {
		for workers := 1; workers <= maxWorkers; workers += step {
			opts := base
			opts.Codec = codec
			opts.Workers = workers
			opts.Chunks = workers
			res, err := Run(ctx, symbols, opts)
			if err != nil {
				return fmt.Errorf("%s with %d workers: %w", codec.Name(), workers, err)
			}
			if err := sink.Record(res); err != nil {
				return err
			}
		}
	}
	return nil
}
