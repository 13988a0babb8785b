package evaluation

type TaggerInformation struct {
	PacketID   int
	TaggerType uint16
	IsLvl1     bool
	IsEndat    bool
	Bco        uint64
	LastBco    uint64
	Lvl1Count  uint32
	EndatCount uint32
}

type Sample struct {
	PacketID      int
	FeeID         int
	Layer         int
	Tile          int
	Channel       int
	Strip         int
	FeeBco        uint32
	Lvl1Bco       uint64
	Lvl1BcoMasked uint64
	// Lvl1Bco is only meaningful when Matched is set
	Matched       bool
	Checksum      uint16
	ChecksumError uint16
	SampaAddress  uint16
	SampaChannel  uint16
	Sample        uint16
	Adc           uint16
	Pedestal      float64
	Rms           float64
}

type Waveform struct {
	PacketID      int
	FeeID         int
	Layer         int
	Tile          int
	Channel       int
	Strip         int
	FeeBco        uint32
	Lvl1Bco       uint64
	Lvl1BcoMasked uint64
	Matched       bool
	Checksum      uint16
	ChecksumError uint16
	SampaAddress  uint16
	SampaChannel  uint16
	SampleMax     uint16
	AdcMax        uint16
	Pedestal      float64
	Rms           float64
	IsSignal      bool
}

func newWaveform(sample Sample) Waveform {
	return Waveform{
		PacketID:      sample.PacketID,
		FeeID:         sample.FeeID,
		Layer:         sample.Layer,
		Tile:          sample.Tile,
		Channel:       sample.Channel,
		Strip:         sample.Strip,
		FeeBco:        sample.FeeBco,
		Lvl1Bco:       sample.Lvl1Bco,
		Lvl1BcoMasked: sample.Lvl1BcoMasked,
		Matched:       sample.Matched,
		Checksum:      sample.Checksum,
		ChecksumError: sample.ChecksumError,
		SampaAddress:  sample.SampaAddress,
		SampaChannel:  sample.SampaChannel,
		SampleMax:     sample.Sample,
		AdcMax:        sample.Adc,
		Pedestal:      sample.Pedestal,
		Rms:           sample.Rms,
	}
}

// Container holds everything produced for one event. It is reused from
// one event to the next, consumers must copy what they want to keep.
type Container struct {
	EventNumber int
	Samples     []Sample
	Waveforms   []Waveform
	Taggers     []TaggerInformation
}

func (c *Container) Reset() {
	c.EventNumber = 0
	c.Samples = c.Samples[:0]
	c.Waveforms = c.Waveforms[:0]
	c.Taggers = c.Taggers[:0]
}
