package evaluation

import "testing"

type recordingLogger struct {
	infos  []string
	errors []string
}

func (l *recordingLogger) Info(message string, module string) {
	l.infos = append(l.infos, module+": "+message)
}

func (l *recordingLogger) Error(message string) {
	l.errors = append(l.errors, message)
}

func useRecordingLogger(t *testing.T) *recordingLogger {
	l := &recordingLogger{}
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })
	return l
}

func lvl1Tagger(bco uint64) TaggerRecord {
	return TaggerRecord{TaggerType: 0x87, IsLvl1: true, Bco: bco, LastBco: bco - 1}
}

func endatTagger(bco uint64) TaggerRecord {
	return TaggerRecord{TaggerType: 0x88, IsEndat: true, Bco: bco}
}

func record(fee int, channel int, feeBco uint32, adc ...uint16) WaveformRecord {
	return WaveformRecord{
		Fee:     fee,
		Channel: channel,
		Bco:     feeBco,
		Samples: len(adc),
		Adc:     adc,
	}
}

func physicsEvent(number int, packets map[int]*MemoryPacket) *MemoryEvent {
	return &MemoryEvent{Type: 1, Number: number, Packets: packets}
}
