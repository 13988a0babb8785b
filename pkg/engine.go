package evaluation

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
)

type EventSource interface {
	// NextEvent returns io.EOF once the source is exhausted
	NextEvent() (Event, error)
}

//go:generate mockgen -destination=mocks/mock_writer.go -package=mocks github.com/next-exp/tpot_eval/pkg EventWriter
type EventWriter interface {
	WriteEvent(container *Container) error
}

type Option func(*Engine)

func WithMetrics(metrics *Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// Engine runs the evaluation of one event at a time. The FEE BCO matching
// state carries over from one event to the next.
type Engine struct {
	verbosity  int
	flags      EvalFlags
	packetIDs  []int
	correlator *BcoCorrelator
	builder    *SampleBuilder
	selector   WaveformSelector
	metrics    *Metrics
	container  Container
}

func NewEngine(config Configuration, calibration CalibrationTable, mapping ChannelMapper, opts ...Option) *Engine {
	e := &Engine{
		verbosity: config.Verbosity,
		flags:     config.Flags(),
		packetIDs: slices.Clone(config.Packets()),
		selector:  NewWaveformSelector(config),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = NewMetrics()
	}
	e.correlator = NewBcoCorrelator(config.MatchEpsilon, config.Verbosity, e.metrics)
	e.builder = NewSampleBuilder(config, calibration, mapping, e.correlator, e.metrics)
	return e
}

func ValidEvent(eventType int) bool {
	return eventType < NonPhysicsEventType
}

// ProcessEvent evaluates one event. Non physics events are skipped without
// touching the container and false is returned.
func (e *Engine) ProcessEvent(event Event) (*Container, bool) {
	if !ValidEvent(event.EventType()) {
		e.metrics.EventsSkipped.Inc()
		if e.verbosity > 1 {
			message := fmt.Sprintf("skipping event %d of type %d", event.EventNumber(), event.EventType())
			logger.Info(message, "engine")
		}
		return nil, false
	}

	e.container.Reset()
	e.container.EventNumber = event.EventNumber()
	e.correlator.StartEvent()

	evalRecords := e.flags.Has(EvalSample) || e.flags.Has(EvalWaveform)
	for _, packetID := range e.packetIDs {
		packet, ok := event.Packet(packetID)
		if !ok {
			e.metrics.PacketsMissing.Inc()
			if e.verbosity > 1 {
				message := fmt.Sprintf("packet %d not found", packetID)
				logger.Info(message, "engine")
			}
			continue
		}
		e.processPacket(packetID, packet, evalRecords)
	}

	slices.SortStableFunc(e.container.Samples, func(a, b Sample) int {
		return cmp.Compare(a.Lvl1Bco, b.Lvl1Bco)
	})
	slices.SortStableFunc(e.container.Waveforms, func(a, b Waveform) int {
		return cmp.Compare(a.Lvl1Bco, b.Lvl1Bco)
	})

	e.metrics.EventsProcessed.Inc()
	return &e.container, true
}

func (e *Engine) processPacket(packetID int, packet Packet, evalRecords bool) {
	// Each packet matches its records against its own LVL1 list
	e.correlator.StartPacket()

	taggers, lvl1Bcos := ReadTaggers(packetID, packet, e.verbosity)
	e.metrics.Taggers.Add(float64(len(taggers)))
	e.metrics.Lvl1Markers.Add(float64(len(lvl1Bcos)))
	if e.flags.Has(EvalTagger) {
		e.container.Taggers = append(e.container.Taggers, taggers...)
	}
	if !evalRecords {
		lvl1Bcos = nil
	}

	nWaveform := int(packet.IValue(0, FieldNWaveforms))
	if e.verbosity > 0 {
		message := fmt.Sprintf("packet: %d taggers: %d n_lvl1_bco: %d n_waveform: %d",
			packetID, len(taggers), len(lvl1Bcos), nWaveform)
		logger.Info(message, "engine")
		if len(lvl1Bcos) > 0 {
			message = fmt.Sprintf("packet: %d bco: %s", packetID, formatBcoList(lvl1Bcos))
			logger.Info(message, "engine")
		}
	}
	if !evalRecords {
		return
	}

	for iwf := 0; iwf < nWaveform; iwf++ {
		samples, ok := e.builder.Build(packetID, packet, iwf, lvl1Bcos)
		if !ok {
			continue
		}
		if e.flags.Has(EvalSample) {
			e.container.Samples = append(e.container.Samples, samples...)
		}
		if e.flags.Has(EvalWaveform) {
			waveform, ok := e.selector.Select(samples)
			if !ok {
				continue
			}
			e.metrics.Waveforms.Inc()
			if waveform.IsSignal {
				e.metrics.SignalWaveforms.Inc()
			}
			e.container.Waveforms = append(e.container.Waveforms, waveform)
		}
	}
}

// ProcessEvents evaluates every event of source and hands each processed
// container to writer. It returns the number of processed events.
func (e *Engine) ProcessEvents(source EventSource, writer EventWriter) (int, error) {
	processed := 0
	for {
		event, err := source.NextEvent()
		if errors.Is(err, io.EOF) {
			return processed, nil
		}
		if err != nil {
			return processed, fmt.Errorf("error reading event: %w", err)
		}

		container, ok := e.safeProcessEvent(event)
		if !ok {
			continue
		}
		processed++
		if writer == nil {
			continue
		}
		if err := writer.WriteEvent(container); err != nil {
			return processed, fmt.Errorf("error writing event %d: %w", container.EventNumber, err)
		}
	}
}

func (e *Engine) safeProcessEvent(event Event) (container *Container, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("engine recovered from panic on event %d: %v", event.EventNumber(), r)
			logger.Error(errMessage.Error())
			message := fmt.Sprintf("discarding event %d", event.EventNumber())
			logger.Error(message)
			container, ok = nil, false
		}
	}()
	return e.ProcessEvent(event)
}

// End reports the records seen per LVL1 BCO over the run.
func (e *Engine) End() {
	if e.verbosity == 0 {
		return
	}
	counts := e.builder.BcoCounts()
	bcos := e.Lvl1BcoList()
	for _, bco := range bcos {
		message := fmt.Sprintf("bco: %d, nwaveforms: %d", bco, counts[bco])
		logger.Info(message, "engine")
	}
	message := fmt.Sprintf("lvl1_bco_list = %s", formatBcoList(bcos))
	logger.Info(message, "engine")
}

// BcoCounts returns the number of waveform records per LVL1 BCO over the run.
// Unmatched records are counted under 0.
func (e *Engine) BcoCounts() map[uint64]int {
	return e.builder.BcoCounts()
}

// Lvl1BcoList returns the sorted LVL1 BCOs seen over the run.
func (e *Engine) Lvl1BcoList() []uint64 {
	counts := e.builder.BcoCounts()
	bcos := make([]uint64, 0, len(counts))
	for bco := range counts {
		bcos = append(bcos, bco)
	}
	slices.Sort(bcos)
	return bcos
}

func (e *Engine) Correlator() *BcoCorrelator {
	return e.correlator
}

func (e *Engine) Metrics() *Metrics {
	return e.metrics
}
