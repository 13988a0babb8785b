package evaluation

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// SampleBuilder turns one waveform record of a packet into Samples.
type SampleBuilder struct {
	MaxChannel  int
	MaxSamples  int
	Verbosity   int
	Calibration CalibrationTable
	Mapping     ChannelMapper
	Correlator  *BcoCorrelator
	Metrics     *Metrics

	// records per resolved LVL1 BCO, kept for the whole run
	bcoCounts map[uint64]int
}

func NewSampleBuilder(config Configuration, calibration CalibrationTable, mapping ChannelMapper,
	correlator *BcoCorrelator, metrics *Metrics) *SampleBuilder {
	maxChannel := config.MaxChannelPerFee
	if maxChannel <= 0 || maxChannel > ChannelsPerFee {
		maxChannel = ChannelsPerFee
	}
	maxSamples := config.MaxSamplesPerRecord
	if maxSamples <= 0 || maxSamples > MaxSamplesPerRecord {
		maxSamples = MaxSamplesPerRecord
	}
	return &SampleBuilder{
		MaxChannel:  maxChannel,
		MaxSamples:  maxSamples,
		Verbosity:   config.Verbosity,
		Calibration: calibration,
		Mapping:     mapping,
		Correlator:  correlator,
		Metrics:     metrics,
		bcoCounts:   make(map[uint64]int),
	}
}

// Build reads waveform record iwf. It returns false when the record is
// rejected, in which case no sample is produced and no marker is consumed.
// A record whose time samples are all invalid is still accepted, with no
// samples.
func (b *SampleBuilder) Build(packetID int, packet Packet, iwf int, markers []uint64) ([]Sample, bool) {
	sample := Sample{PacketID: packetID}
	sample.FeeID = int(packet.IValue(iwf, FieldFee))
	hitsetkey := b.Mapping.HitSetKey(sample.FeeID)
	sample.Layer = LayerOf(hitsetkey)
	sample.Tile = TileOf(hitsetkey)

	sample.Channel = int(packet.IValue(iwf, FieldChannel))
	if sample.Channel < 0 || sample.Channel >= b.MaxChannel {
		b.Metrics.InvalidChannels.Inc()
		if b.Verbosity > 0 {
			message := fmt.Sprintf("invalid channel: %d, fee: %d, packet: %d", sample.Channel, sample.FeeID, packetID)
			logger.Info(message, "samples")
		}
		return nil, false
	}
	b.Metrics.Records.Inc()

	// One resolution for the whole record
	sample.FeeBco = uint32(packet.IValue(iwf, FieldBco))
	sample.Lvl1Bco, sample.Matched = b.Correlator.Resolve(sample.FeeID, sample.FeeBco, markers)
	sample.Lvl1BcoMasked = sample.Lvl1Bco & Lvl1BcoMask

	sample.Checksum = uint16(packet.IValue(iwf, FieldChecksum))
	sample.ChecksumError = uint16(packet.IValue(iwf, FieldChecksumError))

	b.bcoCounts[sample.Lvl1Bco]++

	sample.SampaAddress = uint16(packet.IValue(iwf, FieldSampaAddress))
	sample.SampaChannel = uint16(packet.IValue(iwf, FieldSampaChannel))
	sample.Strip = b.Mapping.PhysicalStrip(sample.FeeID, sample.Channel)

	sample.Pedestal = b.Calibration.Pedestal(sample.FeeID, sample.Channel)
	sample.Rms = b.Calibration.Rms(sample.FeeID, sample.Channel)

	nSamples := int(packet.IValue(iwf, FieldSamples))
	if b.Verbosity > 1 {
		message := fmt.Sprintf("fee: %d layer: %d tile: %d lvl1_bco: 0x%x fee_bco: 0x%x error: %d channel: %d strip: %d samples: %d",
			sample.FeeID, sample.Layer, sample.Tile, sample.Lvl1Bco, sample.FeeBco,
			sample.ChecksumError, sample.Channel, sample.Strip, nSamples)
		logger.Info(message, "samples")
	}
	nSamples = min(nSamples, b.MaxSamples)

	samples := make([]Sample, 0, max(nSamples, 0))
	for is := 0; is < nSamples; is++ {
		adc := uint16(packet.SampleValue(iwf, is))
		if adc == AdcInvalid {
			b.Metrics.InvalidAdc.Inc()
			continue
		}
		sample.Sample = uint16(is)
		sample.Adc = adc
		samples = append(samples, sample)
	}
	b.Metrics.Samples.Add(float64(len(samples)))
	return samples, true
}

// BcoCounts returns a copy of the number of records seen per LVL1 BCO.
func (b *SampleBuilder) BcoCounts() map[uint64]int {
	return maps.Clone(b.bcoCounts)
}
