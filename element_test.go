package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndefinedLength(t *testing.T) {
	e := &DataElement{Length: undefinedLength}
	assert.True(t, e.UndefinedLength())

	e2 := &DataElement{Length: 10}
	assert.False(t, e2.UndefinedLength())
}

func TestIsSequence(t *testing.T) {
	assert.True(t, (&DataElement{VR: SQ}).IsSequence())
	assert.False(t, (&DataElement{VR: CS}).IsSequence())
}

func TestIsEncapsulatedPixelData(t *testing.T) {
	e := &DataElement{Tag: TagPixelData, Length: undefinedLength}
	assert.True(t, e.IsEncapsulatedPixelData())

	defined := &DataElement{Tag: TagPixelData, Length: 100}
	assert.False(t, defined.IsEncapsulatedPixelData())

	other := &DataElement{Tag: TagPatientName, Length: undefinedLength}
	assert.False(t, other.IsEncapsulatedPixelData())
}

func TestBasicOffsetTable(t *testing.T) {
	bot := make([]byte, 8)
	binary.LittleEndian.PutUint32(bot[0:4], 0)
	binary.LittleEndian.PutUint32(bot[4:8], 1024)

	e := &DataElement{
		Tag:       TagPixelData,
		Length:    undefinedLength,
		Fragments: [][]byte{bot, {0xAA, 0xBB}},
	}
	offsets := e.BasicOffsetTable(binary.LittleEndian)
	assert.Equal(t, []uint32{0, 1024}, offsets)
}

func TestBasicOffsetTableNonEncapsulated(t *testing.T) {
	e := &DataElement{Tag: TagPixelData, Length: 4}
	assert.Nil(t, e.BasicOffsetTable(binary.LittleEndian))
}
