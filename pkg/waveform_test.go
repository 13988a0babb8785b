package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesWithAdc(adc ...uint16) []Sample {
	samples := make([]Sample, len(adc))
	for i, a := range adc {
		samples[i] = Sample{FeeID: testFee, Channel: 10, Sample: uint16(i), Adc: a, Pedestal: 50, Rms: 2}
	}
	return samples
}

func TestSelectMaximum(t *testing.T) {
	selector := NewWaveformSelector(DefaultConfiguration())

	waveform, ok := selector.Select(samplesWithAdc(55, 90, 70))
	require.True(t, ok)
	assert.Equal(t, uint16(1), waveform.SampleMax)
	assert.Equal(t, uint16(90), waveform.AdcMax)
	assert.Equal(t, testFee, waveform.FeeID)
	assert.Equal(t, 50.0, waveform.Pedestal)
}

func TestSelectTieKeepsEarliest(t *testing.T) {
	selector := NewWaveformSelector(DefaultConfiguration())

	waveform, ok := selector.Select(samplesWithAdc(5, 9, 9, 3))
	require.True(t, ok)
	assert.Equal(t, uint16(1), waveform.SampleMax)
}

func TestSelectNoSamples(t *testing.T) {
	selector := NewWaveformSelector(DefaultConfiguration())

	_, ok := selector.Select(nil)
	assert.False(t, ok)
}

func TestIsSignal(t *testing.T) {
	selector := WaveformSelector{MinAdc: 80, SampleMin: 2, SampleMax: 10, NSigma: 5}

	tests := []struct {
		name      string
		sampleMax uint16
		adcMax    uint16
		rms       float64
		expected  bool
	}{
		{"above threshold", 5, 90, 2, true},
		{"below min adc", 5, 55, 2, false},
		{"at min adc", 5, 80, 2, true},
		{"too close to pedestal", 5, 85, 8, false},
		{"no rms", 5, 90, 0, false},
		{"before window", 1, 90, 2, false},
		{"first sample of window", 2, 90, 2, true},
		{"end of window", 10, 90, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waveform := Waveform{SampleMax: tt.sampleMax, AdcMax: tt.adcMax, Pedestal: 50, Rms: tt.rms}
			assert.Equal(t, tt.expected, selector.IsSignal(waveform))
		})
	}
}
