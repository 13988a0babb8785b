package evaluation

// HitSetKey identifies a detector tile.
// Layer is stored in bits 16-23, tile in bits 0-7.
type HitSetKey uint32

func MakeHitSetKey(layer uint8, tile uint8) HitSetKey {
	return HitSetKey(uint32(layer)<<16 | uint32(tile))
}

func LayerOf(key HitSetKey) int {
	return int((key >> 16) & 0xFF)
}

func TileOf(key HitSetKey) int {
	return int(key & 0xFF)
}

type ChannelMapper interface {
	HitSetKey(feeID int) HitSetKey
	PhysicalStrip(feeID int, channel int) int
}

// Mapping is an in memory ChannelMapper. Unknown fees map to key 0,
// unknown channels to strip -1.
type Mapping struct {
	fees   map[int]HitSetKey
	strips map[feeChannel]int
}

func NewMapping() *Mapping {
	return &Mapping{
		fees:   make(map[int]HitSetKey),
		strips: make(map[feeChannel]int),
	}
}

func (m *Mapping) SetFee(feeID int, layer uint8, tile uint8) {
	m.fees[feeID] = MakeHitSetKey(layer, tile)
}

func (m *Mapping) SetStrip(feeID int, channel int, strip int) {
	m.strips[feeChannel{feeID, channel}] = strip
}

func (m *Mapping) HitSetKey(feeID int) HitSetKey {
	return m.fees[feeID]
}

func (m *Mapping) PhysicalStrip(feeID int, channel int) int {
	if strip, ok := m.strips[feeChannel{feeID, channel}]; ok {
		return strip
	}
	return -1
}

func (m *Mapping) NumFees() int {
	return len(m.fees)
}
