package evaluation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "tpot"
	metricsSubsystem = "evaluation"
)

// Metrics counts what the engine sees. All counters cover the engine lifetime.
type Metrics struct {
	EventsProcessed prometheus.Counter
	EventsSkipped   prometheus.Counter
	PacketsMissing  prometheus.Counter
	Taggers         prometheus.Counter
	Lvl1Markers     prometheus.Counter
	Records         prometheus.Counter
	InvalidChannels prometheus.Counter
	InvalidAdc      prometheus.Counter
	Samples         prometheus.Counter
	Waveforms       prometheus.Counter
	SignalWaveforms prometheus.Counter
	CacheHits       prometheus.Counter
	MarkersConsumed prometheus.Counter
	OrphanRecords   prometheus.Counter
	registry        prometheus.Gatherer
}

// NewMetrics registers the counters on a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

func NewMetricsWithRegistry(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)
	counter := func(name string, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		EventsProcessed: counter("events_processed_total", "Events processed"),
		EventsSkipped:   counter("events_skipped_total", "Non physics events skipped"),
		PacketsMissing:  counter("packets_missing_total", "Expected packets absent from an event"),
		Taggers:         counter("taggers_total", "Tagger records read"),
		Lvl1Markers:     counter("lvl1_markers_total", "LVL1 tagger BCOs harvested"),
		Records:         counter("waveform_records_total", "Waveform records accepted"),
		InvalidChannels: counter("invalid_channel_records_total", "Waveform records rejected for an out of range channel"),
		InvalidAdc:      counter("invalid_adc_samples_total", "Time samples dropped for an invalid adc"),
		Samples:         counter("samples_total", "Samples produced"),
		Waveforms:       counter("waveforms_total", "Waveforms produced"),
		SignalWaveforms: counter("signal_waveforms_total", "Waveforms classified as signal"),
		CacheHits:       counter("bco_cache_hits_total", "Records resolved from the running FEE BCO cache"),
		MarkersConsumed: counter("bco_markers_consumed_total", "LVL1 markers consumed from pending queues"),
		OrphanRecords:   counter("bco_orphan_records_total", "Records with no LVL1 marker left"),
		registry:        registry,
	}
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteToTextfile dumps all counters in the node exporter textfile format.
func (m *Metrics) WriteToTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}
