package evaluation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmbenlloch/go-hdf5"
)

// Writer stores the evaluation containers in an HDF5 file.
type Writer struct {
	File          *hdf5.File
	Filename      string
	RunGroup      *hdf5.Group
	EvalGroup     *hdf5.Group
	RunInfoTable  *table
	EventTable    *table
	TaggerTable   *table
	SampleTable   *table
	WaveformTable *table
	BcoCountTable *table
	EvtCounter    int
}

func NewWriter(filename string) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating file: %s", filename)
		logger.Info(message, "writer")
	}
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return writer.abort(err)
	}
	if writer.EvalGroup, err = createGroup(writer.File, "Evaluation"); err != nil {
		return writer.abort(err)
	}

	tables := []struct {
		dst      **table
		group    *hdf5.Group
		name     string
		datatype interface{}
	}{
		{&writer.RunInfoTable, writer.RunGroup, "runInfo", RunInfoHDF5{}},
		{&writer.EventTable, writer.RunGroup, "events", EventHDF5{}},
		{&writer.TaggerTable, writer.EvalGroup, "taggers", TaggerHDF5{}},
		{&writer.SampleTable, writer.EvalGroup, "samples", SampleHDF5{}},
		{&writer.WaveformTable, writer.EvalGroup, "waveforms", WaveformHDF5{}},
		{&writer.BcoCountTable, writer.EvalGroup, "bcoCounts", BcoCountHDF5{}},
	}
	for _, t := range tables {
		created, err := createTable(t.group, t.name, t.datatype)
		if err != nil {
			return writer.abort(err)
		}
		*t.dst = created
	}
	return writer, nil
}

// abort releases whatever NewWriter created before failing with err.
func (w *Writer) abort(err error) (*Writer, error) {
	if closeErr := w.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return nil, err
}

// WriteRunInfo stores the run number, the session id and the xxhash digest
// of the input stream.
func (w *Writer) WriteRunInfo(runNumber int, session string, inputHash uint64) error {
	info := []RunInfoHDF5{{
		run_number: int32(runNumber),
		session:    convertToHdf5String(session),
		input_hash: inputHash,
	}}
	return writeArrayToTable(w.RunInfoTable, info)
}

func (w *Writer) WriteEvent(container *Container) error {
	evtNumber := int32(container.EventNumber)

	event := []EventHDF5{{
		evt_number:  evtNumber,
		n_samples:   int32(len(container.Samples)),
		n_waveforms: int32(len(container.Waveforms)),
		n_taggers:   int32(len(container.Taggers)),
	}}
	if err := writeArrayToTable(w.EventTable, event); err != nil {
		return err
	}

	taggers := make([]TaggerHDF5, len(container.Taggers))
	for i, tagger := range container.Taggers {
		taggers[i] = TaggerHDF5{
			evt_number:  evtNumber,
			packet_id:   int32(tagger.PacketID),
			tagger_type: tagger.TaggerType,
			is_lvl1:     boolToUint8(tagger.IsLvl1),
			is_endat:    boolToUint8(tagger.IsEndat),
			bco:         tagger.Bco,
			last_bco:    tagger.LastBco,
			lvl1_count:  tagger.Lvl1Count,
			endat_count: tagger.EndatCount,
		}
	}
	if err := writeArrayToTable(w.TaggerTable, taggers); err != nil {
		return err
	}

	samples := make([]SampleHDF5, len(container.Samples))
	for i, s := range container.Samples {
		samples[i] = SampleHDF5{
			evt_number:      evtNumber,
			packet_id:       int32(s.PacketID),
			fee_id:          int32(s.FeeID),
			layer:           int32(s.Layer),
			tile:            int32(s.Tile),
			channel:         int32(s.Channel),
			strip:           int32(s.Strip),
			fee_bco:         s.FeeBco,
			lvl1_bco:        s.Lvl1Bco,
			lvl1_bco_masked: s.Lvl1BcoMasked,
			matched:         boolToUint8(s.Matched),
			checksum:        s.Checksum,
			checksum_error:  s.ChecksumError,
			sampa_address:   s.SampaAddress,
			sampa_channel:   s.SampaChannel,
			sample:          s.Sample,
			adc:             s.Adc,
			pedestal:        s.Pedestal,
			rms:             s.Rms,
		}
	}
	if err := writeArrayToTable(w.SampleTable, samples); err != nil {
		return err
	}

	waveforms := make([]WaveformHDF5, len(container.Waveforms))
	for i, wf := range container.Waveforms {
		waveforms[i] = WaveformHDF5{
			evt_number:      evtNumber,
			packet_id:       int32(wf.PacketID),
			fee_id:          int32(wf.FeeID),
			layer:           int32(wf.Layer),
			tile:            int32(wf.Tile),
			channel:         int32(wf.Channel),
			strip:           int32(wf.Strip),
			fee_bco:         wf.FeeBco,
			lvl1_bco:        wf.Lvl1Bco,
			lvl1_bco_masked: wf.Lvl1BcoMasked,
			matched:         boolToUint8(wf.Matched),
			checksum:        wf.Checksum,
			checksum_error:  wf.ChecksumError,
			sampa_address:   wf.SampaAddress,
			sampa_channel:   wf.SampaChannel,
			sample_max:      wf.SampleMax,
			adc_max:         wf.AdcMax,
			pedestal:        wf.Pedestal,
			rms:             wf.Rms,
			is_signal:       boolToUint8(wf.IsSignal),
		}
	}
	if err := writeArrayToTable(w.WaveformTable, waveforms); err != nil {
		return err
	}

	w.EvtCounter++
	return nil
}

// WriteBcoCounts stores the records per LVL1 BCO, sorted by BCO.
func (w *Writer) WriteBcoCounts(counts map[uint64]int) error {
	bcos := make([]uint64, 0, len(counts))
	for bco := range counts {
		bcos = append(bcos, bco)
	}
	slices.Sort(bcos)

	entries := make([]BcoCountHDF5, len(bcos))
	for i, bco := range bcos {
		entries[i] = BcoCountHDF5{lvl1_bco: bco, nwaveforms: int32(counts[bco])}
	}
	return writeArrayToTable(w.BcoCountTable, entries)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Closing file %s, %d events written", w.Filename, w.EvtCounter)
		logger.Info(message, "writer")
	}
	var errs []error

	for _, t := range []*table{w.RunInfoTable, w.EventTable, w.TaggerTable,
		w.SampleTable, w.WaveformTable, w.BcoCountTable} {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if w.EvalGroup != nil {
		if err := w.EvalGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing evaluation group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
