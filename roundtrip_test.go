package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSampleDataSet returns a small but representative DataSet exercising
// text, numeric, and sequence elements, for round-trip testing.
func buildSampleDataSet() *DataSet {
	study := NewDataSet()
	study.SetString(Tag{0x0008, 0x0100}, SH, "1")

	ds := NewDataSet()
	ds.SetString(TagPatientID, LO, "12345")
	ds.SetString(TagPatientName, PN, "Doe^John")
	ds.SetString(TagStudyDate, DA, "20260101")
	ds.SetUint16(TagRows, US, 256)
	ds.SetUint16(TagColumns, US, 256)
	ds.SetSequence(Tag{0x0008, 0x1032}, []*DataSet{study})
	return ds
}

func TestRoundTripPreservesElements(t *testing.T) {
	original := Create(buildSampleDataSet(), WithTransferSyntax(UIDExplicitVRLittleEndian))
	out, err := original.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, UIDExplicitVRLittleEndian, parsed.TransferSyntax)

	id, ok := parsed.DataSet.String(TagPatientID)
	require.True(t, ok)
	assert.Equal(t, "12345", id)

	rows, ok := parsed.DataSet.Uint16(TagRows)
	require.True(t, ok)
	assert.Equal(t, uint16(256), rows)

	item, ok := parsed.DataSet.FirstSequenceItem(Tag{0x0008, 0x1032})
	require.True(t, ok)
	v, _ := item.String(Tag{0x0008, 0x0100})
	assert.Equal(t, "1", v)
}

func TestRoundTripImplicitVRLittleEndian(t *testing.T) {
	original := Create(buildSampleDataSet(), WithTransferSyntax(UIDImplicitVRLittleEndian))
	out, err := original.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)
	assert.Equal(t, UIDImplicitVRLittleEndian, parsed.TransferSyntax)

	name, ok := parsed.DataSet.String(TagPatientName)
	require.True(t, ok)
	assert.Equal(t, "Doe^John", name)
}

func TestRoundTripExplicitVRBigEndian(t *testing.T) {
	original := Create(buildSampleDataSet(), WithTransferSyntax(UIDExplicitVRBigEndian))
	out, err := original.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)
	rows, ok := parsed.DataSet.Uint16(TagRows)
	require.True(t, ok)
	assert.Equal(t, uint16(256), rows)
}

func TestGroupLengthMatchesSerializedMetaBytes(t *testing.T) {
	original := Create(buildSampleDataSet(), WithTransferSyntax(UIDExplicitVRLittleEndian))
	out, err := original.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)

	groupLen, ok := parsed.FileMeta.Uint32(TagFileMetaInformationGroupLength)
	require.True(t, ok)

	// (0002,0000)'s value must equal the byte count of every File Meta
	// element that follows it. bodyStart - (magic end + 12) gives that
	// count directly from the serialized bytes.
	const metaStart = 128 + 4
	const groupLengthElementSize = 12
	bodyStart := metaStart + groupLengthElementSize + int(groupLen)
	assert.Less(t, bodyStart, len(out))
	// The first element of the body must be a plausible tag, confirming
	// groupLen didn't overshoot into the body.
	firstBodyGroup := uint16(out[bodyStart]) | uint16(out[bodyStart+1])<<8
	assert.NotEqual(t, uint16(0x0002), firstBodyGroup)
}

func TestRoundTripEncapsulatedPixelData(t *testing.T) {
	bot := []byte{0x00, 0x00, 0x00, 0x00}
	frag := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	ds := NewDataSet()
	ds.SetString(TagPatientID, LO, "12345")
	ds.Set(&DataElement{
		Tag:       TagPixelData,
		VR:        OB,
		Length:    undefinedLength,
		Fragments: [][]byte{bot, frag},
	})

	f := Create(ds, WithTransferSyntax(UIDExplicitVRLittleEndian))
	out, err := f.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)

	e, ok := parsed.DataSet.Get(TagPixelData)
	require.True(t, ok)
	assert.True(t, e.IsEncapsulatedPixelData())
	require.Len(t, e.Fragments, 2)
	assert.Equal(t, bot, e.Fragments[0])
	assert.Equal(t, frag, e.Fragments[1])

	id, ok := parsed.DataSet.String(TagPatientID)
	require.True(t, ok)
	assert.Equal(t, "12345", id)
}

func TestEvenLengthInvariant(t *testing.T) {
	ds := NewDataSet()
	ds.SetString(TagPatientID, LO, "ODD")
	f := Create(ds, WithTransferSyntax(UIDExplicitVRLittleEndian))
	out, err := f.Write()
	require.NoError(t, err)

	parsed, err := Read(out)
	require.NoError(t, err)
	e, ok := parsed.DataSet.Get(TagPatientID)
	require.True(t, ok)
	assert.Equal(t, 0, len(e.ValueBytes)%2)
}
