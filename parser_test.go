package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicomkit/dicom/dicomio"
)

// writeExplicitElement appends one explicit-VR-LE element (tag, VR, value)
// to w using the same long/short header rule the parser itself applies.
func writeExplicitElement(t *testing.T, w *dicomio.Writer, tag Tag, vr VR, value []byte) {
	t.Helper()
	w.WriteUint16(tag.Group)
	w.WriteUint16(tag.Element)
	w.WriteString(string(vr))
	if vr.IsLongHeader() {
		w.WriteZeros(2)
		w.WriteUint32(uint32(len(value)))
	} else {
		w.WriteUint16(uint16(len(value)))
	}
	w.WriteBytes(value)
}

func writeItemHeader(w *dicomio.Writer, length uint32) {
	w.WriteUint16(TagItem.Group)
	w.WriteUint16(TagItem.Element)
	w.WriteUint32(length)
}

func writeDelimiter(w *dicomio.Writer, tag Tag) {
	w.WriteUint16(tag.Group)
	w.WriteUint16(tag.Element)
	w.WriteUint32(0)
}

func TestParseEmptyExplicitLengthSequence(t *testing.T) {
	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, w, Tag{0x0008, 0x1032}, SQ, nil)

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ExplicitVR)
	ds, warnings, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	e, ok := ds.Get(Tag{0x0008, 0x1032})
	require.True(t, ok)
	assert.True(t, e.IsSequence())
	assert.Empty(t, e.Items)
}

func TestParseOneItemDefinedLengthSequence(t *testing.T) {
	item := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, item, TagPatientName, PN, []byte("Doe^John"))

	seq := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeItemHeader(seq, uint32(item.Len()))
	seq.WriteBytes(item.Bytes())

	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, w, Tag{0x0008, 0x1032}, SQ, seq.Bytes())

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ExplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	e, ok := ds.Get(Tag{0x0008, 0x1032})
	require.True(t, ok)
	require.Len(t, e.Items, 1)
	name, ok := e.Items[0].String(TagPatientName)
	require.True(t, ok)
	assert.Equal(t, "Doe^John", name)
}

func TestParseUndefinedLengthSequenceAndItem(t *testing.T) {
	item := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, item, TagPatientName, PN, []byte("Doe^John"))

	seq := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeItemHeader(seq, undefinedLength)
	seq.WriteBytes(item.Bytes())
	writeDelimiter(seq, TagItemDelimitationItem)

	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	w.WriteUint16(0x0008)
	w.WriteUint16(0x1032)
	w.WriteString(string(SQ))
	w.WriteZeros(2)
	w.WriteUint32(undefinedLength)
	w.WriteBytes(seq.Bytes())
	writeDelimiter(w, TagSequenceDelimitationItem)

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ExplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	e, ok := ds.Get(Tag{0x0008, 0x1032})
	require.True(t, ok)
	assert.True(t, e.UndefinedLength())
	require.Len(t, e.Items, 1)
	name, ok := e.Items[0].String(TagPatientName)
	require.True(t, ok)
	assert.Equal(t, "Doe^John", name)
}

func TestParseImplicitVRNestedSequence(t *testing.T) {
	item := dicomio.NewWriter(binary.LittleEndian, dicomio.ImplicitVR)
	item.WriteUint16(TagPatientName.Group)
	item.WriteUint16(TagPatientName.Element)
	item.WriteUint32(uint32(len("Doe^John")))
	item.WriteString("Doe^John")

	seq := dicomio.NewWriter(binary.LittleEndian, dicomio.ImplicitVR)
	writeItemHeader(seq, uint32(item.Len()))
	seq.WriteBytes(item.Bytes())

	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ImplicitVR)
	w.WriteUint16(0x0008)
	w.WriteUint16(0x1032)
	w.WriteUint32(uint32(seq.Len()))
	w.WriteBytes(seq.Bytes())

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ImplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	e, ok := ds.Get(Tag{0x0008, 0x1032})
	require.True(t, ok)
	assert.Equal(t, SQ, e.VR)
	require.Len(t, e.Items, 1)
	name, ok := e.Items[0].String(TagPatientName)
	require.True(t, ok)
	assert.Equal(t, "Doe^John", name)
}

func TestParseFiveFieldRoundTrip(t *testing.T) {
	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, w, TagPatientID, LO, padEven("12345"))
	writeExplicitElement(t, w, TagPatientName, PN, []byte("Doe^John"))
	writeExplicitElement(t, w, TagStudyDate, DA, []byte("20260101"))
	writeExplicitElement(t, w, TagRows, US, uint16Bytes(512))
	writeExplicitElement(t, w, TagColumns, US, uint16Bytes(512))

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ExplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	assert.Equal(t, 5, ds.Len())
	id, _ := ds.String(TagPatientID)
	assert.Equal(t, "12345", id)
	rows, _ := ds.Uint16(TagRows)
	assert.Equal(t, uint16(512), rows)
}

func TestParseExplicitVRBigEndian(t *testing.T) {
	w := dicomio.NewWriter(binary.BigEndian, dicomio.ExplicitVR)
	writeExplicitElement(t, w, Tag{0x0009, 0x0001}, UL, uint32BytesBE(0x12345678))

	cur := dicomio.NewCursor(w.Bytes(), binary.BigEndian, dicomio.ExplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	v, ok := ds.Uint32(Tag{0x0009, 0x0001})
	require.True(t, ok)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestParseEncapsulatedPixelData(t *testing.T) {
	bot := []byte{0x00, 0x00, 0x00, 0x00} // single-frame image, one offset entry worth zero
	frag := []byte{0xFF, 0xD8, 0xFF, 0xE0} // a plausible compressed-fragment prefix

	w := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	w.WriteUint16(TagPixelData.Group)
	w.WriteUint16(TagPixelData.Element)
	w.WriteString(string(OB))
	w.WriteZeros(2)
	w.WriteUint32(undefinedLength)
	writeItemHeader(w, uint32(len(bot)))
	w.WriteBytes(bot)
	writeItemHeader(w, uint32(len(frag)))
	w.WriteBytes(frag)
	writeDelimiter(w, TagSequenceDelimitationItem)

	cur := dicomio.NewCursor(w.Bytes(), binary.LittleEndian, dicomio.ExplicitVR)
	ds, _, err := parseElements(cur, defaultReadOptions(), false)
	require.NoError(t, err)

	e, ok := ds.Get(TagPixelData)
	require.True(t, ok)
	assert.True(t, e.IsEncapsulatedPixelData())
	require.Len(t, e.Fragments, 2)
	assert.Equal(t, bot, e.Fragments[0])
	assert.Equal(t, frag, e.Fragments[1])

	offsets := e.BasicOffsetTable(binary.LittleEndian)
	require.Len(t, offsets, 1)
	assert.Equal(t, uint32(0), offsets[0])
}

func padEven(s string) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, ' ')
	}
	return b
}

func uint16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func uint32BytesBE(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}
