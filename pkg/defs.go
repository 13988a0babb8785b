package evaluation

/* ---------- TPOT readout ---------- */

// Packet ids of the two TPOT EBDCs
var DefaultPacketIDs = []int{5001, 5002}

const ChannelsPerFee = 256

// ADC value flagging a sample dropped by the zero suppression
const AdcInvalid uint16 = 65000

// Hard cap on the time samples read per waveform record
const MaxSamplesPerRecord = 1024

/* ---------- BCO matching ---------- */

// Max FEE BCO difference for two records to belong to the same LVL1 trigger
const MatchEpsilon uint32 = 10

const Lvl1BcoMask uint64 = 0xFFFFF

/* ---------- Event type ---------- */

// Event types at or above this value are not physics events
const NonPhysicsEventType = 8

/* ---------- Evaluation flags ---------- */
type EvalFlags uint8

const (
	EvalTagger EvalFlags = 1 << iota
	EvalSample
	EvalWaveform
)

func (f EvalFlags) Has(flag EvalFlags) bool {
	return f&flag != 0
}
