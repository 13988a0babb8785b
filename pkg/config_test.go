package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationFlags(t *testing.T) {
	config := DefaultConfiguration()
	assert.Equal(t, EvalTagger|EvalSample|EvalWaveform, config.Flags())

	config.EvalSamples = false
	flags := config.Flags()
	assert.True(t, flags.Has(EvalTagger))
	assert.False(t, flags.Has(EvalSample))
	assert.True(t, flags.Has(EvalWaveform))

	config.EvalTaggers = false
	config.EvalWaveforms = false
	assert.Equal(t, EvalFlags(0), config.Flags())
}

func TestConfigurationPackets(t *testing.T) {
	config := DefaultConfiguration()
	assert.Equal(t, []int{5001, 5002}, config.Packets())

	config.PacketIDs = []int{5002}
	assert.Equal(t, []int{5002}, config.Packets())
}

func TestSetConfiguration(t *testing.T) {
	previous := GetConfiguration()
	t.Cleanup(func() { SetConfiguration(previous) })

	config := DefaultConfiguration()
	config.Verbosity = 3
	SetConfiguration(config)
	assert.Equal(t, 3, GetConfiguration().Verbosity)
}
