package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTaggers(t *testing.T) {
	packet := &MemoryPacket{Taggers: []TaggerRecord{
		lvl1Tagger(0x30),
		endatTagger(0x40),
		lvl1Tagger(0x10),
	}}

	taggers, lvl1Bcos := ReadTaggers(5002, packet, 3)
	assert.Len(t, taggers, 3)
	assert.Equal(t, []uint64{0x30, 0x10}, lvl1Bcos)

	assert.Equal(t, TaggerInformation{
		PacketID:   5002,
		TaggerType: 0x87,
		IsLvl1:     true,
		Bco:        0x30,
		LastBco:    0x2f,
	}, taggers[0])
	assert.True(t, taggers[1].IsEndat)
	assert.False(t, taggers[1].IsLvl1)
	assert.Equal(t, uint64(0x10), taggers[2].Bco)
}

func TestReadTaggersLogsEachTaggerFromVerbosityTwo(t *testing.T) {
	packet := &MemoryPacket{Taggers: []TaggerRecord{lvl1Tagger(0x30), endatTagger(0x40)}}

	l := useRecordingLogger(t)
	ReadTaggers(5001, packet, 1)
	assert.Empty(t, l.infos)

	ReadTaggers(5001, packet, 2)
	assert.Len(t, l.infos, 2)
	assert.Contains(t, l.infos[0], "trigger: packet: 5001 tagger: 0")
	assert.Contains(t, l.infos[1], "endat: true")
}

func TestReadTaggersEmptyPacket(t *testing.T) {
	taggers, lvl1Bcos := ReadTaggers(5001, &MemoryPacket{}, 0)
	assert.Empty(t, taggers)
	assert.Empty(t, lvl1Bcos)
}

func TestFormatBcoList(t *testing.T) {
	assert.Equal(t, "{}", formatBcoList(nil))
	assert.Equal(t, "{ 0xa }", formatBcoList([]uint64{10}))
	assert.Equal(t, "{ 0xa, 0xff }", formatBcoList([]uint64{10, 255}))
}
