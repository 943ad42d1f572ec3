package jobs

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are per-codec counters fed by every finished chunk. A nil *Metrics
// records nothing.
type Metrics struct {
	symbols       *prometheus.CounterVec
	bits          *prometheus.CounterVec
	literals      *prometheus.CounterVec
	chunks        *prometheus.CounterVec
	chunkDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on registry. Calling it again with the
// same registry hands back the collectors already registered there.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	const ns, sub = "ahuff", "codec"
	labels := []string{"codec"}

	var m Metrics
	var err error
	if m.symbols, err = register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "symbols_total",
		Help:      "The number of data symbols encoded",
	}, labels)); err != nil {
		return nil, err
	}
	if m.bits, err = register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "encoded_bits_total",
		Help:      "Payload bits produced by the encoder",
	}, labels)); err != nil {
		return nil, err
	}
	if m.literals, err = register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "literals_total",
		Help:      "Symbols sent as an escape plus raw literal",
	}, labels)); err != nil {
		return nil, err
	}
	if m.chunks, err = register(registry, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "chunks_total",
		Help:      "Chunks encoded, decoded and verified",
	}, labels)); err != nil {
		return nil, err
	}
	if m.chunkDuration, err = register(registry, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "chunk_duration_seconds",
		Help:      "Time spent on one chunk, by phase",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"codec", "phase"})); err != nil {
		return nil, err
	}
	return &m, nil
}

func register[T prometheus.Collector](registry prometheus.Registerer, c T) (T, error) {
	if err := registry.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(codec string, res ChunkResult) {
	if m == nil {
		return
	}
	m.symbols.WithLabelValues(codec).Add(float64(res.Stats.Symbols))
	m.bits.WithLabelValues(codec).Add(float64(res.Bits))
	m.literals.WithLabelValues(codec).Add(float64(res.Stats.LiteralHits))
	m.chunks.WithLabelValues(codec).Inc()
	m.chunkDuration.WithLabelValues(codec, "encode").Observe(res.Encode.Seconds())
	m.chunkDuration.WithLabelValues(codec, "decode").Observe(res.Decode.Seconds())
}
