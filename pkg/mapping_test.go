package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitSetKey(t *testing.T) {
	key := MakeHitSetKey(56, 7)
	assert.Equal(t, HitSetKey(0x380007), key)
	assert.Equal(t, 56, LayerOf(key))
	assert.Equal(t, 7, TileOf(key))
}

func TestMappingDefaults(t *testing.T) {
	mapping := NewMapping()
	mapping.SetFee(3, 55, 1)
	mapping.SetStrip(3, 0, 255)

	assert.Equal(t, 55, LayerOf(mapping.HitSetKey(3)))
	assert.Equal(t, HitSetKey(0), mapping.HitSetKey(4))
	assert.Equal(t, 255, mapping.PhysicalStrip(3, 0))
	assert.Equal(t, -1, mapping.PhysicalStrip(4, 0))
}

func TestCalibrationDefaults(t *testing.T) {
	calibration := NewCalibrationData()
	calibration.Set(3, 1, 60, 2.5)

	assert.Equal(t, 60.0, calibration.Pedestal(3, 1))
	assert.Equal(t, 2.5, calibration.Rms(3, 1))
	assert.Equal(t, -1.0, calibration.Pedestal(3, 2))
	assert.Equal(t, -1.0, calibration.Rms(4, 1))
}
