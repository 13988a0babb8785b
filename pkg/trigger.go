package evaluation

import (
	"fmt"
)

// ReadTaggers reads all tagger records of a packet, in packet order, and
// returns them along with the BCOs of the LVL1 ones.
func ReadTaggers(packetID int, packet Packet, verbosity int) ([]TaggerInformation, []uint64) {
	nTagger := int(packet.LValue(0, FieldNTagger))
	if nTagger < 0 {
		nTagger = 0
	}

	taggers := make([]TaggerInformation, 0, nTagger)
	lvl1Bcos := make([]uint64, 0, nTagger)
	for t := 0; t < nTagger; t++ {
		tagger := TaggerInformation{
			PacketID:   packetID,
			TaggerType: uint16(packet.LValue(t, FieldTaggerType)),
			IsLvl1:     packet.LValue(t, FieldIsLevel1Trigger) != 0,
			IsEndat:    packet.LValue(t, FieldIsEndat) != 0,
			Bco:        uint64(packet.LValue(t, FieldBco)),
			LastBco:    uint64(packet.LValue(t, FieldLastBco)),
			Lvl1Count:  uint32(packet.LValue(t, FieldLevel1Count)),
			EndatCount: uint32(packet.LValue(t, FieldEndatCount)),
		}
		taggers = append(taggers, tagger)

		if tagger.IsLvl1 {
			lvl1Bcos = append(lvl1Bcos, tagger.Bco)
		}

		if verbosity > 1 {
			message := fmt.Sprintf("packet: %d tagger: %d type: 0x%x lvl1: %t endat: %t bco: 0x%x last_bco: 0x%x lvl1_count: %d endat_count: %d",
				packetID, t, tagger.TaggerType, tagger.IsLvl1, tagger.IsEndat,
				tagger.Bco, tagger.LastBco, tagger.Lvl1Count, tagger.EndatCount)
			logger.Info(message, "trigger")
		}
	}
	return taggers, lvl1Bcos
}

func formatBcoList(bcos []uint64) string {
	if len(bcos) == 0 {
		return "{}"
	}
	message := "{ "
	for i, bco := range bcos {
		if i > 0 {
			message += ", "
		}
		message += fmt.Sprintf("0x%x", bco)
	}
	return message + " }"
}
