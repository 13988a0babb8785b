package evaluation

// Field names used by the upstream decoder
const (
	FieldNTagger         = "N_TAGGER"
	FieldTaggerType      = "TAGGER_TYPE"
	FieldIsLevel1Trigger = "IS_LEVEL1_TRIGGER"
	FieldIsEndat         = "IS_ENDAT"
	FieldBco             = "BCO"
	FieldLastBco         = "LAST_BCO"
	FieldLevel1Count     = "LEVEL1_COUNT"
	FieldEndatCount      = "ENDAT_COUNT"

	FieldNWaveforms    = "NR_WF"
	FieldFee           = "FEE"
	FieldChannel       = "CHANNEL"
	FieldChecksum      = "CHECKSUM"
	FieldChecksumError = "CHECKSUMERROR"
	FieldSampaAddress  = "SAMPAADDRESS"
	FieldSampaChannel  = "SAMPACHANNEL"
	FieldSamples       = "SAMPLES"
)

// Packet gives keyed access to the fields of one decoded packet.
// Unknown fields and out of range indices read as zero.
type Packet interface {
	LValue(index int, field string) int64
	IValue(index int, field string) int64
	// SampleValue returns the adc of time sample sample in waveform record wf
	SampleValue(wf int, sample int) int64
}

type Event interface {
	EventType() int
	EventNumber() int
	Packet(id int) (Packet, bool)
}

type TaggerRecord struct {
	TaggerType uint16 `json:"tagger_type"`
	IsLvl1     bool   `json:"is_lvl1"`
	IsEndat    bool   `json:"is_endat"`
	Bco        uint64 `json:"bco"`
	LastBco    uint64 `json:"last_bco"`
	Lvl1Count  uint32 `json:"lvl1_count"`
	EndatCount uint32 `json:"endat_count"`
}

type WaveformRecord struct {
	Fee           int    `json:"fee"`
	Channel       int    `json:"channel"`
	Bco           uint32 `json:"bco"`
	Checksum      uint16 `json:"checksum"`
	ChecksumError uint16 `json:"checksum_error"`
	SampaAddress  uint16 `json:"sampa_address"`
	SampaChannel  uint16 `json:"sampa_channel"`
	// Declared number of samples, may differ from len(Adc)
	Samples int      `json:"samples"`
	Adc     []uint16 `json:"adc"`
}

// MemoryPacket is a Packet backed by already decoded records.
type MemoryPacket struct {
	Taggers   []TaggerRecord   `json:"taggers"`
	Waveforms []WaveformRecord `json:"waveforms"`
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (p *MemoryPacket) LValue(index int, field string) int64 {
	if field == FieldNTagger {
		return int64(len(p.Taggers))
	}
	if index < 0 || index >= len(p.Taggers) {
		return 0
	}
	tagger := p.Taggers[index]
	switch field {
	case FieldTaggerType:
		return int64(tagger.TaggerType)
	case FieldIsLevel1Trigger:
		return boolValue(tagger.IsLvl1)
	case FieldIsEndat:
		return boolValue(tagger.IsEndat)
	case FieldBco:
		return int64(tagger.Bco)
	case FieldLastBco:
		return int64(tagger.LastBco)
	case FieldLevel1Count:
		return int64(tagger.Lvl1Count)
	case FieldEndatCount:
		return int64(tagger.EndatCount)
	}
	return 0
}

func (p *MemoryPacket) IValue(index int, field string) int64 {
	if field == FieldNWaveforms {
		return int64(len(p.Waveforms))
	}
	if index < 0 || index >= len(p.Waveforms) {
		return 0
	}
	wf := p.Waveforms[index]
	switch field {
	case FieldFee:
		return int64(wf.Fee)
	case FieldChannel:
		return int64(wf.Channel)
	case FieldBco:
		return int64(wf.Bco)
	case FieldChecksum:
		return int64(wf.Checksum)
	case FieldChecksumError:
		return int64(wf.ChecksumError)
	case FieldSampaAddress:
		return int64(wf.SampaAddress)
	case FieldSampaChannel:
		return int64(wf.SampaChannel)
	case FieldSamples:
		return int64(wf.Samples)
	}
	return 0
}

func (p *MemoryPacket) SampleValue(wf int, sample int) int64 {
	if wf < 0 || wf >= len(p.Waveforms) {
		return 0
	}
	adc := p.Waveforms[wf].Adc
	if sample < 0 || sample >= len(adc) {
		return 0
	}
	return int64(adc[sample])
}

// MemoryEvent is an Event backed by MemoryPackets, keyed by packet id.
type MemoryEvent struct {
	Type    int                   `json:"type"`
	Number  int                   `json:"number"`
	Packets map[int]*MemoryPacket `json:"packets"`
}

func (e *MemoryEvent) EventType() int {
	return e.Type
}

func (e *MemoryEvent) EventNumber() int {
	return e.Number
}

func (e *MemoryEvent) Packet(id int) (Packet, bool) {
	packet, ok := e.Packets[id]
	if !ok || packet == nil {
		return nil, false
	}
	return packet, true
}
