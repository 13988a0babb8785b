package evaluation

// WaveformSelector reduces the samples of one record to its maximum and
// decides whether it is a signal.
type WaveformSelector struct {
	MinAdc    float64
	SampleMin int
	SampleMax int
	NSigma    float64
}

func NewWaveformSelector(config Configuration) WaveformSelector {
	return WaveformSelector{
		MinAdc:    config.MinAdc,
		SampleMin: config.SampleMin,
		SampleMax: config.SampleMax,
		NSigma:    config.NSigma,
	}
}

// Select returns the waveform built from the sample with the largest adc.
// On ties the earliest sample wins. No samples, no waveform.
func (s WaveformSelector) Select(samples []Sample) (Waveform, bool) {
	if len(samples) == 0 {
		return Waveform{}, false
	}
	maxIndex := 0
	for i := 1; i < len(samples); i++ {
		if samples[i].Adc > samples[maxIndex].Adc {
			maxIndex = i
		}
	}
	waveform := newWaveform(samples[maxIndex])
	waveform.IsSignal = s.IsSignal(waveform)
	return waveform, true
}

func (s WaveformSelector) IsSignal(w Waveform) bool {
	adcMax := float64(w.AdcMax)
	sampleMax := int(w.SampleMax)
	return w.Rms > 0 &&
		adcMax >= s.MinAdc &&
		sampleMax >= s.SampleMin &&
		sampleMax < s.SampleMax &&
		adcMax > w.Pedestal+s.NSigma*w.Rms
}
