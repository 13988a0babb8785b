package evaluation

type Configuration struct {
	MaxEvents           int     `json:"max_events"`
	Skip                int     `json:"skip"`
	Verbosity           int     `json:"verbosity"`
	FileIn              string  `json:"file_in"`
	FileOut             string  `json:"file_out"`
	MetricsFile         string  `json:"metrics_file"`
	RunNumber           int     `json:"run_number"`
	NoDB                bool    `json:"no_db"`
	Host                string  `json:"host"`
	User                string  `json:"user"`
	Passwd              string  `json:"pass"`
	DBName              string  `json:"dbname"`
	WriteData           bool    `json:"write_data"`
	CompressionLevel    int     `json:"compression_level"`
	PacketIDs           []int   `json:"packet_ids"`
	EvalTaggers         bool    `json:"eval_taggers"`
	EvalSamples         bool    `json:"eval_samples"`
	EvalWaveforms       bool    `json:"eval_waveforms"`
	MatchEpsilon        uint32  `json:"match_epsilon"`
	MaxChannelPerFee    int     `json:"max_channel_per_fee"`
	MaxSamplesPerRecord int     `json:"max_samples_per_record"`
	MinAdc              float64 `json:"min_adc"`
	SampleMin           int     `json:"sample_min"`
	SampleMax           int     `json:"sample_max"`
	NSigma              float64 `json:"n_sigma"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		MaxEvents:           1000000000,
		Skip:                0,
		Verbosity:           0,
		NoDB:                false,
		Host:                "sphnxdbmaster.sdcc.bnl.gov",
		User:                "tpotreader",
		Passwd:              "readonly",
		DBName:              "TPOT",
		WriteData:           true,
		CompressionLevel:    4,
		EvalTaggers:         true,
		EvalSamples:         true,
		EvalWaveforms:       true,
		MatchEpsilon:        MatchEpsilon,
		MaxChannelPerFee:    ChannelsPerFee,
		MaxSamplesPerRecord: MaxSamplesPerRecord,
		MinAdc:              50,
		SampleMin:           0,
		SampleMax:           100,
		NSigma:              5,
	}
}

// Flags converts the eval_* switches into the engine's bit mask.
func (c Configuration) Flags() EvalFlags {
	var flags EvalFlags
	if c.EvalTaggers {
		flags |= EvalTagger
	}
	if c.EvalSamples {
		flags |= EvalSample
	}
	if c.EvalWaveforms {
		flags |= EvalWaveform
	}
	return flags
}

// Packets returns the packet ids to scan, falling back to the TPOT ones.
func (c Configuration) Packets() []int {
	if len(c.PacketIDs) == 0 {
		return DefaultPacketIDs
	}
	return c.PacketIDs
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
