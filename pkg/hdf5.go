package evaluation

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type RunInfoHDF5 struct {
	run_number int32
	session    [STRLEN]byte
	input_hash uint64
}

type EventHDF5 struct {
	evt_number  int32
	n_samples   int32
	n_waveforms int32
	n_taggers   int32
}

type TaggerHDF5 struct {
	evt_number  int32
	packet_id   int32
	tagger_type uint16
	is_lvl1     uint8
	is_endat    uint8
	bco         uint64
	last_bco    uint64
	lvl1_count  uint32
	endat_count uint32
}

type SampleHDF5 struct {
	evt_number      int32
	packet_id       int32
	fee_id          int32
	layer           int32
	tile            int32
	channel         int32
	strip           int32
	fee_bco         uint32
	lvl1_bco        uint64
	lvl1_bco_masked uint64
	matched         uint8
	checksum        uint16
	checksum_error  uint16
	sampa_address   uint16
	sampa_channel   uint16
	sample          uint16
	adc             uint16
	pedestal        float64
	rms             float64
}

type WaveformHDF5 struct {
	evt_number      int32
	packet_id       int32
	fee_id          int32
	layer           int32
	tile            int32
	channel         int32
	strip           int32
	fee_bco         uint32
	lvl1_bco        uint64
	lvl1_bco_masked uint64
	matched         uint8
	checksum        uint16
	checksum_error  uint16
	sampa_address   uint16
	sampa_channel   uint16
	sample_max      uint16
	adc_max         uint16
	pedestal        float64
	rms             float64
	is_signal       uint8
}

type BcoCountHDF5 struct {
	lvl1_bco   uint64
	nwaveforms int32
}

const STRLEN = 40

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// table is an extendable one dimensional dataset and the rows written so far
type table struct {
	name    string
	dataset *hdf5.Dataset
	rows    uint
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}) (*table, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer file_space.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// Set compression level
	if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return &table{name: name, dataset: dset}, nil
}

func writeArrayToTable[T any](t *table, data []T) error {
	length := uint(len(data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return &ErrWriteTable{TableName: t.name, Err: err}
	}
	defer dataspace.Close()

	// extend
	newsize := []uint{t.rows + length}
	if err := t.dataset.Resize(newsize); err != nil {
		return &ErrWriteTable{TableName: t.name, Err: err}
	}
	filespace := t.dataset.Space()
	defer filespace.Close()

	start := []uint{t.rows}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return &ErrWriteTable{TableName: t.name, Err: err}
	}

	if err := t.dataset.WriteSubset(&data, dataspace, filespace); err != nil {
		return &ErrWriteTable{TableName: t.name, Err: err}
	}
	t.rows += length
	return nil
}

func (t *table) Close() error {
	if t == nil {
		return nil
	}
	if err := t.dataset.Close(); err != nil {
		return fmt.Errorf("error closing table %s: %w", t.name, err)
	}
	return nil
}
