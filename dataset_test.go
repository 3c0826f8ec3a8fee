package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSetSetGetDelete(t *testing.T) {
	ds := NewDataSet()
	ds.SetString(TagPatientID, LO, "12345")
	v, ok := ds.Get(TagPatientID)
	require.True(t, ok)
	assert.Equal(t, LO, v.VR)

	ds.Delete(TagPatientID)
	_, ok = ds.Get(TagPatientID)
	assert.False(t, ok)
}

func TestDataSetSetReplacesDuplicateTag(t *testing.T) {
	ds := NewDataSet()
	ds.SetString(TagPatientName, PN, "Doe^John")
	ds.SetString(TagPatientName, PN, "Doe^Jane")

	assert.Equal(t, 1, ds.Len())
	v, _ := ds.String(TagPatientName)
	assert.Equal(t, "Doe^Jane", v)
}

func TestDataSetTagsAreAscending(t *testing.T) {
	ds := NewDataSet()
	ds.SetString(TagPixelData, OB, "")
	ds.SetString(TagPatientID, LO, "1")
	ds.SetString(TagStudyDate, DA, "20260101")

	tags := ds.Tags()
	for i := 1; i < len(tags); i++ {
		assert.True(t, tags[i-1].Less(tags[i]))
	}
}

func TestDataSetStringStripsPad(t *testing.T) {
	ds := NewDataSet()
	ds.Set(&DataElement{Tag: TagPatientID, VR: LO, ValueBytes: []byte("ABC ")})
	v, ok := ds.String(TagPatientID)
	require.True(t, ok)
	assert.Equal(t, "ABC", v)
}

func TestDataSetStrings(t *testing.T) {
	ds := NewDataSet()
	ds.SetStrings(TagImageOrientationPatientForTest, DS, []string{"1", "0", "0", "0", "1", "0"})
	values, ok := ds.Strings(TagImageOrientationPatientForTest)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "0", "0", "0", "1", "0"}, values)
}

// TagImageOrientationPatientForTest avoids colliding with any dictionary
// constant while still exercising the multi-valued Strings path.
var TagImageOrientationPatientForTest = Tag{0x0020, 0x0037}

func TestDataSetNumericAccessors(t *testing.T) {
	ds := NewDataSet()
	ds.SetUint16(TagRows, US, 512)
	ds.SetInt16(Tag{0x0009, 0x0001}, SS, -7)
	ds.SetUint32(Tag{0x0009, 0x0002}, UL, 123456)
	ds.SetFloat32(Tag{0x0009, 0x0003}, FL, 3.5)
	ds.SetFloat64(Tag{0x0009, 0x0004}, FD, -1.25)

	rows, ok := ds.Uint16(TagRows)
	require.True(t, ok)
	assert.Equal(t, uint16(512), rows)

	i16, ok := ds.Int16(Tag{0x0009, 0x0001})
	require.True(t, ok)
	assert.Equal(t, int16(-7), i16)

	u32, ok := ds.Uint32(Tag{0x0009, 0x0002})
	require.True(t, ok)
	assert.Equal(t, uint32(123456), u32)

	f32, ok := ds.Float32(Tag{0x0009, 0x0003})
	require.True(t, ok)
	assert.Equal(t, float32(3.5), f32)

	f64, ok := ds.Float64(Tag{0x0009, 0x0004})
	require.True(t, ok)
	assert.Equal(t, -1.25, f64)
}

func TestDataSetSequenceAccessors(t *testing.T) {
	item1 := NewDataSet()
	item1.SetString(TagCodeValueForTest, SH, "A")
	item2 := NewDataSet()
	item2.SetString(TagCodeValueForTest, SH, "B")

	ds := NewDataSet()
	ds.SetSequence(Tag{0x0008, 0x1032}, []*DataSet{item1, item2})

	assert.True(t, ds.IsSequence(Tag{0x0008, 0x1032}))
	assert.Equal(t, 2, ds.SequenceItemCount(Tag{0x0008, 0x1032}))

	first, ok := ds.FirstSequenceItem(Tag{0x0008, 0x1032})
	require.True(t, ok)
	v, _ := first.String(TagCodeValueForTest)
	assert.Equal(t, "A", v)
}

var TagCodeValueForTest = Tag{0x0008, 0x0100}

func TestDataSetPadTextOddLength(t *testing.T) {
	ds := NewDataSet()
	ds.SetString(TagPatientID, LO, "ABC")
	e, _ := ds.Get(TagPatientID)
	assert.Equal(t, 4, len(e.ValueBytes))
	assert.Equal(t, byte(' '), e.ValueBytes[3])
}
