package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/KitchenMishap/adaptive-huffman/adaptive"
	"github.com/KitchenMishap/adaptive-huffman/dataset"
	"github.com/KitchenMishap/adaptive-huffman/graphics"
	"github.com/KitchenMishap/adaptive-huffman/huffman"
	"github.com/KitchenMishap/adaptive-huffman/jobs"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

var kindFlag = &cli.StringFlag{
	Name:    "kind",
	Usage:   "value type of the dataset (uint8, int16, uint16, float32); inferred from the file name when empty",
	EnvVars: []string{"AHUFF_KIND"},
}

var eofFlag = &cli.Int64Flag{
	Name:    "eof",
	Usage:   "end-of-stream symbol; defaults to 1<<width",
	EnvVars: []string{"AHUFF_EOF"},
}

func resolveKind(cctx *cli.Context, path string) (dataset.Kind, error) {
	if name := cctx.String("kind"); name != "" {
		return dataset.ParseKind(name)
	}
	return dataset.KindFromName(path)
}

func streamConfig(cctx *cli.Context, kind dataset.Kind) adaptive.Config {
	cfg := adaptive.NewConfig(kind.Width())
	if cctx.IsSet("eof") {
		cfg.EOF = cctx.Int64("eof")
	}
	return cfg
}

var cmdEncode = &cli.Command{
	Name:      "encode",
	Usage:     "compress a raw dataset into an adaptive Huffman stream",
	ArgsUsage: "<input.raw> <output.ahuf>",
	Flags:     []cli.Flag{kindFlag, eofFlag},
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 2 {
			return fmt.Errorf("need input and output paths")
		}
		in, out := cctx.Args().Get(0), cctx.Args().Get(1)
		kind, err := resolveKind(cctx, in)
		if err != nil {
			return err
		}
		cfg := streamConfig(cctx, kind)
		if err := cfg.Validate(); err != nil {
			return err
		}

		symbols, err := dataset.Read(in, kind)
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w := bufio.NewWriter(f)

		start := time.Now()
		stats, err := adaptive.WriteStream(w, cfg, symbols)
		if err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		slog.Info("encoded",
			"symbols", stats.Symbols,
			"distinct", stats.LiteralHits,
			"size", humanize.Bytes(uint64(adaptive.HeaderSize)+(stats.TotalBits+7)/8),
			"ratio", stats.Ratio(cfg.Width),
			"elapsed", time.Since(start),
		)
		return f.Close()
	},
}

var cmdDecode = &cli.Command{
	Name:      "decode",
	Usage:     "decompress an adaptive Huffman stream back into a raw dataset",
	ArgsUsage: "<input.ahuf> <output.raw>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "kind",
			Usage:    "value type to write (uint8, int16, uint16, float32)",
			Required: true,
			EnvVars:  []string{"AHUFF_KIND"},
		},
		eofFlag,
	},
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 2 {
			return fmt.Errorf("need input and output paths")
		}
		in, out := cctx.Args().Get(0), cctx.Args().Get(1)
		kind, err := dataset.ParseKind(cctx.String("kind"))
		if err != nil {
			return err
		}
		cfg := streamConfig(cctx, kind)

		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer f.Close()

		start := time.Now()
		symbols, err := adaptive.ReadStream(bufio.NewReader(f), cfg)
		if err != nil {
			// Whatever decoded before the failure is still written out
			slog.Error("decode failed", "decoded", len(symbols), "err", err)
		}
		o, werr := os.Create(out)
		if werr != nil {
			return errors.Join(err, werr)
		}
		defer o.Close()
		w := bufio.NewWriter(o)
		if werr := dataset.Write(w, kind, symbols); werr != nil {
			return errors.Join(err, werr)
		}
		if werr := w.Flush(); werr != nil {
			return errors.Join(err, werr)
		}
		if err != nil {
			return err
		}
		slog.Info("decoded", "symbols", len(symbols), "elapsed", time.Since(start))
		return o.Close()
	},
}

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "encode, decode and verify a dataset in parallel chunks and report compression",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dataset",
			Usage:   "catalog dataset name (see 'datasets')",
			EnvVars: []string{"AHUFF_DATASET"},
		},
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "directory holding the catalog datasets",
			Value:   "../datasets",
			EnvVars: []string{"AHUFF_DATASET_DIR"},
		},
		&cli.StringFlag{
			Name:    "file",
			Usage:   "raw dataset file, instead of a catalog name",
			EnvVars: []string{"AHUFF_FILE"},
		},
		kindFlag,
		eofFlag,
		&cli.StringSliceFlag{
			Name:    "codec",
			Usage:   "codecs to run (adaptive, static)",
			Value:   cli.NewStringSlice("adaptive", "static"),
			EnvVars: []string{"AHUFF_CODECS"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "number of parallel workers (and chunks)",
			Value:   jobs.DefaultWorkers(),
			EnvVars: []string{"AHUFF_WORKERS"},
		},
		&cli.IntFlag{
			Name:  "max-workers",
			Usage: "sweep worker counts from 1 up to this many; 0 runs --workers only",
		},
		&cli.IntFlag{
			Name:  "step",
			Usage: "worker count increment for a sweep",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "only use the first N symbols of the dataset (0 for all)",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "give up on a run after this long (0 for no limit)",
			EnvVars: []string{"AHUFF_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "append one CSV row per run to this file",
		},
		&cli.StringFlag{
			Name:  "metrics-out",
			Usage: "write prometheus metrics in text format to this file when done",
		},
	},
	Action: runBench,
}

func benchInput(cctx *cli.Context) (string, dataset.Kind, error) {
	if path := cctx.String("file"); path != "" {
		kind, err := resolveKind(cctx, path)
		return path, kind, err
	}
	name := cctx.String("dataset")
	if name == "" {
		return "", 0, fmt.Errorf("need --dataset or --file")
	}
	entry, ok := dataset.Lookup(name)
	if !ok {
		return "", 0, fmt.Errorf("no dataset named %q", name)
	}
	return entry.Path(cctx.String("dir")), entry.Kind, nil
}

func runBench(cctx *cli.Context) error {
	path, kind, err := benchInput(cctx)
	if err != nil {
		return err
	}
	cfg := streamConfig(cctx, kind)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var codecs []jobs.Codec
	for _, name := range cctx.StringSlice("codec") {
		codec, ok := jobs.NewCodec(name, kind.Width())
		if !ok {
			return fmt.Errorf("unknown codec %q", name)
		}
		if a, isAdaptive := codec.(jobs.Adaptive); isAdaptive {
			a.Config = cfg
			codec = a
		}
		codecs = append(codecs, codec)
	}

	slog.Info("reading dataset", "path", path, "kind", kind)
	symbols, err := dataset.Read(path, kind)
	if err != nil {
		return err
	}
	if limit := cctx.Int("limit"); limit > 0 && limit < len(symbols) {
		symbols = symbols[:limit]
	}

	registry := prometheus.NewRegistry()
	metrics, err := jobs.NewMetrics(registry)
	if err != nil {
		return err
	}
	base := jobs.Options{
		Width:   kind.Width(),
		Timeout: cctx.Duration("timeout"),
		Metrics: metrics,
	}

	sinks := jobs.MultiSink{&jobs.LogSink{}, reportSink{width: kind.Width()}}
	if csvPath := cctx.String("csv"); csvPath != "" {
		f, err := os.OpenFile(csvPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		sinks = append(sinks, jobs.NewCSVSink(f))
	}

	ctx := context.Background()
	if maxWorkers := cctx.Int("max-workers"); maxWorkers > 0 {
		if err := jobs.Sweep(ctx, symbols, codecs, maxWorkers, cctx.Int("step"), base, sinks); err != nil {
			return err
		}
	} else {
		for _, codec := range codecs {
			opts := base
			opts.Codec = codec
			opts.Workers = cctx.Int("workers")
			res, err := jobs.Run(ctx, symbols, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", codec.Name(), err)
			}
			if err := sinks.Record(res); err != nil {
				return err
			}
		}
	}

	if out := cctx.String("metrics-out"); out != "" {
		return prometheus.WriteToTextfile(out, registry)
	}
	return nil
}

// reportSink prints the human summary for each run on stdout
type reportSink struct {
	width uint8
}

func (r reportSink) Record(res *jobs.Result) error {
	jobs.PrintReport(os.Stdout, res, r.width)
	fmt.Println()
	return nil
}

var cmdHist = &cli.Command{
	Name:      "hist",
	Usage:     "plot the symbol frequencies of a dataset as a PGM image",
	ArgsUsage: "<output.pgm>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dataset",
			Usage:   "catalog dataset name (see 'datasets')",
			EnvVars: []string{"AHUFF_DATASET"},
		},
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "directory holding the catalog datasets",
			Value:   "../datasets",
			EnvVars: []string{"AHUFF_DATASET_DIR"},
		},
		&cli.StringFlag{
			Name:    "file",
			Usage:   "raw dataset file, instead of a catalog name",
			EnvVars: []string{"AHUFF_FILE"},
		},
		kindFlag,
		&cli.IntFlag{Name: "width", Value: graphics.DefaultWidth},
		&cli.IntFlag{Name: "height", Value: graphics.DefaultHeight},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 1 {
			return fmt.Errorf("need an output path")
		}
		path, kind, err := benchInput(cctx)
		if err != nil {
			return err
		}
		symbols, err := dataset.Read(path, kind)
		if err != nil {
			return err
		}
		freqs := huffman.Frequencies(symbols)
		ph := graphics.NewPgmHist(cctx.Int("width"), cctx.Int("height"))
		graphics.SymbolHistogram(freqs, kind.Width(), ph)

		f, err := os.Create(cctx.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := ph.WriteTo(f); err != nil {
			return err
		}
		slog.Info("histogram written", "path", cctx.Args().First(), "symbols", len(symbols), "distinct", len(freqs))
		return f.Close()
	},
}

var cmdDatasets = &cli.Command{
	Name:  "datasets",
	Usage: "list the catalog datasets",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "directory holding the catalog datasets",
			Value:   "../datasets",
			EnvVars: []string{"AHUFF_DATASET_DIR"},
		},
	},
	Action: func(cctx *cli.Context) error {
		for i, e := range dataset.Catalog {
			status := "missing"
			if fi, err := os.Stat(e.Path(cctx.String("dir"))); err == nil {
				status = humanize.Bytes(uint64(fi.Size()))
			}
			fmt.Printf("%d. %-22s %-8s %s (%s)\n", i+1, e.Name, e.Kind, e.File, status)
		}
		return nil
	},
}
