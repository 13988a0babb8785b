package evaluation

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// FeeBcoMatching is the last (FEE BCO, LVL1 BCO) pair resolved for a fee.
type FeeBcoMatching struct {
	FeeBco   uint32
	Lvl1Bco  uint64
	Resolved bool
}

type orphanKey struct {
	fee    int
	feeBco uint32
}

// BcoCorrelator assigns LVL1 BCOs to FEE BCOs.
//
// Each fee reports its triggers in order, so the n-th new FEE BCO seen for a
// fee takes the n-th LVL1 BCO of the event. Records whose FEE BCO is close to
// the last resolved one belong to the same trigger and reuse its LVL1 BCO.
//
// The running matching pairs live as long as the correlator. Pending queues
// and orphans belong to one packet and are reset by StartPacket. Not safe for
// concurrent use.
type BcoCorrelator struct {
	epsilon   uint32
	verbosity int
	metrics   *Metrics

	matching map[int]FeeBcoMatching
	pending  map[int][]uint64
	orphans  map[orphanKey]struct{}
}

func NewBcoCorrelator(epsilon uint32, verbosity int, metrics *Metrics) *BcoCorrelator {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &BcoCorrelator{
		epsilon:   epsilon,
		verbosity: verbosity,
		metrics:   metrics,
		matching:  make(map[int]FeeBcoMatching),
		pending:   make(map[int][]uint64),
		orphans:   make(map[orphanKey]struct{}),
	}
}

func bcoDiff[T constraints.Unsigned](first T, second T) T {
	if first < second {
		return second - first
	}
	return first - second
}

// StartPacket drops the pending queues and orphans of the previous packet.
// The next Resolve of each fee seeds its queue from the new packet's markers.
func (c *BcoCorrelator) StartPacket() {
	clear(c.pending)
	clear(c.orphans)
}

// StartEvent drops the pending queues and orphans of the previous event.
func (c *BcoCorrelator) StartEvent() {
	c.StartPacket()
}

// Resolve returns the LVL1 BCO matching feeBco for feeID. markers is the
// ordered LVL1 BCO list of the current packet; it seeds the fee's pending
// queue the first time the fee needs a new marker in this packet and is never
// modified.
func (c *BcoCorrelator) Resolve(feeID int, feeBco uint32, markers []uint64) (uint64, bool) {
	current := c.matching[feeID]
	if current.Resolved && bcoDiff(feeBco, current.FeeBco) < c.epsilon {
		c.metrics.CacheHits.Inc()
		return current.Lvl1Bco, true
	}

	queue, ok := c.pending[feeID]
	if !ok {
		queue = slices.Clone(markers)
	}

	if len(queue) == 0 {
		c.pending[feeID] = queue
		c.metrics.OrphanRecords.Inc()
		c.reportOrphan(feeID, feeBco)
		return 0, false
	}

	lvl1Bco := queue[0]
	c.pending[feeID] = queue[1:]
	c.matching[feeID] = FeeBcoMatching{FeeBco: feeBco, Lvl1Bco: lvl1Bco, Resolved: true}
	c.metrics.MarkersConsumed.Inc()

	if c.verbosity > 0 {
		message := fmt.Sprintf("fee_id: %d fee_bco: 0x%x gtm_bco: 0x%x", feeID, feeBco, lvl1Bco)
		logger.Info(message, "correlator")
	}
	return lvl1Bco, true
}

func (c *BcoCorrelator) reportOrphan(feeID int, feeBco uint32) {
	key := orphanKey{fee: feeID, feeBco: feeBco}
	if _, seen := c.orphans[key]; seen {
		return
	}
	c.orphans[key] = struct{}{}
	if c.verbosity > 0 {
		message := fmt.Sprintf("fee_id: %d fee_bco: 0x%x gtm_bco: none", feeID, feeBco)
		logger.Info(message, "correlator")
	}
}

// Matching returns the running pair of a fee.
func (c *BcoCorrelator) Matching(feeID int) (FeeBcoMatching, bool) {
	m, ok := c.matching[feeID]
	return m, ok
}

// Snapshot copies the running pairs of all fees.
func (c *BcoCorrelator) Snapshot() map[int]FeeBcoMatching {
	return maps.Clone(c.matching)
}

// Pending returns a copy of the markers still queued for a fee in this packet.
func (c *BcoCorrelator) Pending(feeID int) []uint64 {
	return slices.Clone(c.pending[feeID])
}

// Orphans returns the number of distinct orphan (fee, FEE BCO) pairs in this packet.
func (c *BcoCorrelator) Orphans() int {
	return len(c.orphans)
}
