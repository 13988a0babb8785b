package evaluation

type CalibrationTable interface {
	Pedestal(feeID int, channel int) float64
	Rms(feeID int, channel int) float64
}

type feeChannel struct {
	fee     int
	channel int
}

type channelCalibration struct {
	pedestal float64
	rms      float64
}

// CalibrationData keeps pedestal and rms per (fee, channel).
// Channels without calibration read as -1.
type CalibrationData struct {
	channels map[feeChannel]channelCalibration
}

func NewCalibrationData() *CalibrationData {
	return &CalibrationData{channels: make(map[feeChannel]channelCalibration)}
}

func (c *CalibrationData) Set(feeID int, channel int, pedestal float64, rms float64) {
	c.channels[feeChannel{feeID, channel}] = channelCalibration{pedestal: pedestal, rms: rms}
}

func (c *CalibrationData) Pedestal(feeID int, channel int) float64 {
	if calib, ok := c.channels[feeChannel{feeID, channel}]; ok {
		return calib.pedestal
	}
	return -1
}

func (c *CalibrationData) Rms(feeID int, channel int) float64 {
	if calib, ok := c.channels[feeChannel{feeID, channel}]; ok {
		return calib.rms
	}
	return -1
}

func (c *CalibrationData) Len() int {
	return len(c.channels)
}
