package dicom

import (
	"encoding/binary"
	"sort"
	"strings"
)

// DataSet is an ordered mapping Tag -> DataElement. It's backed by a map,
// not an insertion-ordered slice: inserting a duplicate tag replaces the
// existing element (the last occurrence wins when parsing a malformed
// stream), and ascending-tag order is recovered at serialization time by
// sorting rather than tracked on insert.
type DataSet struct {
	elements map[Tag]*DataElement

	// byteOrder is the endianness typed numeric accessors reinterpret
	// ValueBytes under. The parser records the body transfer syntax's
	// byte order here; data sets built via NewDataSet default to
	// little-endian.
	byteOrder binary.ByteOrder

	// coding is the active SpecificCharacterSet decoder table, set by
	// the parser when it encounters (0008,0005). The zero value means
	// plain ASCII/UTF-8.
	coding CodingSystem
}

// NewDataSet creates an empty, little-endian DataSet ready for use with the
// typed setters below.
func NewDataSet() *DataSet {
	return &DataSet{elements: make(map[Tag]*DataElement), byteOrder: binary.LittleEndian}
}

// ByteOrder reports the endianness numeric accessors use to reinterpret
// ValueBytes.
func (ds *DataSet) ByteOrder() binary.ByteOrder { return ds.byteOrder }

// Len returns the number of top-level elements in the set.
func (ds *DataSet) Len() int { return len(ds.elements) }

// Get returns the element stored at tag, if any.
func (ds *DataSet) Get(tag Tag) (*DataElement, bool) {
	e, ok := ds.elements[tag]
	return e, ok
}

// Set inserts or replaces the element at elem.Tag. Implements the
// "inserting a duplicate tag replaces" DataSet invariant.
func (ds *DataSet) Set(elem *DataElement) {
	if ds.elements == nil {
		ds.elements = make(map[Tag]*DataElement)
	}
	ds.elements[elem.Tag] = elem
}

// Delete removes the element at tag, if present.
func (ds *DataSet) Delete(tag Tag) {
	delete(ds.elements, tag)
}

// Tags returns every tag in the set, in ascending order -- the order
// Elements() and the serializer both walk, per PS3.5 7.1.
func (ds *DataSet) Tags() []Tag {
	tags := make([]Tag, 0, len(ds.elements))
	for t := range ds.elements {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })
	return tags
}

// Elements returns every element in the set, in ascending tag order.
func (ds *DataSet) Elements() []*DataElement {
	tags := ds.Tags()
	out := make([]*DataElement, len(tags))
	for i, t := range tags {
		out[i] = ds.elements[t]
	}
	return out
}

// --- typed accessors ---

// String decodes tag's value as text, stripping all trailing pad bytes
// (spaces and NULs) and running it through the active SpecificCharacterSet
// decoder, if any.
func (ds *DataSet) String(tag Tag) (string, bool) {
	e, ok := ds.Get(tag)
	if !ok || e.IsSequence() {
		return "", false
	}
	return ds.decodeString(e.ValueBytes), true
}

// Strings decodes tag's value as a backslash-delimited list of strings, per
// PS3.5 6.4 Value Multiplicity.
func (ds *DataSet) Strings(tag Tag) ([]string, bool) {
	s, ok := ds.String(tag)
	if !ok {
		return nil, false
	}
	if s == "" {
		return nil, true
	}
	return strings.Split(s, `\`), true
}

func (ds *DataSet) decodeString(raw []byte) string {
	trimmed := strings.TrimRight(string(raw), " \x00")
	return ds.coding.decode(trimmed)
}

func (ds *DataSet) Uint16(tag Tag) (uint16, bool) {
	e, ok := ds.Get(tag)
	if !ok || len(e.ValueBytes) < 2 {
		return 0, false
	}
	return ds.byteOrder.Uint16(e.ValueBytes), true
}

func (ds *DataSet) Int16(tag Tag) (int16, bool) {
	v, ok := ds.Uint16(tag)
	return int16(v), ok
}

func (ds *DataSet) Uint32(tag Tag) (uint32, bool) {
	e, ok := ds.Get(tag)
	if !ok || len(e.ValueBytes) < 4 {
		return 0, false
	}
	return ds.byteOrder.Uint32(e.ValueBytes), true
}

func (ds *DataSet) Int32(tag Tag) (int32, bool) {
	v, ok := ds.Uint32(tag)
	return int32(v), ok
}

func (ds *DataSet) Float32(tag Tag) (float32, bool) {
	v, ok := ds.Uint32(tag)
	if !ok {
		return 0, false
	}
	return float32FromBits(v), true
}

func (ds *DataSet) Float64(tag Tag) (float64, bool) {
	e, ok := ds.Get(tag)
	if !ok || len(e.ValueBytes) < 8 {
		return 0, false
	}
	return float64FromBits(ds.byteOrder.Uint64(e.ValueBytes)), true
}

// IsSequence reports whether tag is present and is a VR=SQ element.
func (ds *DataSet) IsSequence(tag Tag) bool {
	e, ok := ds.Get(tag)
	return ok && e.IsSequence()
}

// Sequence returns the items of a VR=SQ element.
func (ds *DataSet) Sequence(tag Tag) ([]*DataSet, bool) {
	e, ok := ds.Get(tag)
	if !ok || !e.IsSequence() {
		return nil, false
	}
	return e.Items, true
}

// FirstSequenceItem returns the first item of a VR=SQ element, for the
// common case of a single-item sequence.
func (ds *DataSet) FirstSequenceItem(tag Tag) (*DataSet, bool) {
	items, ok := ds.Sequence(tag)
	if !ok || len(items) == 0 {
		return nil, false
	}
	return items[0], true
}

// SequenceItemCount returns the number of items in a VR=SQ element, or 0 if
// tag isn't a sequence.
func (ds *DataSet) SequenceItemCount(tag Tag) int {
	items, ok := ds.Sequence(tag)
	if !ok {
		return 0
	}
	return len(items)
}

// --- typed setters ---

func padText(s string, pad byte) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, pad)
	}
	return b
}

// SetString stores value under tag with the given VR, padding to even
// length with the VR's pad byte (PS3.5 7.1.2 requires all values to be an
// even number of bytes).
func (ds *DataSet) SetString(tag Tag, vr VR, value string) {
	ds.Set(&DataElement{Tag: tag, VR: vr, ValueBytes: padText(value, vr.PadByte())})
}

// SetStrings joins values with backslash per PS3.5 6.4 and stores the
// result the same way SetString does.
func (ds *DataSet) SetStrings(tag Tag, vr VR, values []string) {
	ds.SetString(tag, vr, strings.Join(values, `\`))
}

func (ds *DataSet) SetUint16(tag Tag, vr VR, value uint16) {
	b := make([]byte, 2)
	ds.byteOrder.PutUint16(b, value)
	ds.Set(&DataElement{Tag: tag, VR: vr, ValueBytes: b})
}

func (ds *DataSet) SetInt16(tag Tag, vr VR, value int16) {
	ds.SetUint16(tag, vr, uint16(value))
}

func (ds *DataSet) SetUint32(tag Tag, vr VR, value uint32) {
	b := make([]byte, 4)
	ds.byteOrder.PutUint32(b, value)
	ds.Set(&DataElement{Tag: tag, VR: vr, ValueBytes: b})
}

func (ds *DataSet) SetInt32(tag Tag, vr VR, value int32) {
	ds.SetUint32(tag, vr, uint32(value))
}

func (ds *DataSet) SetFloat32(tag Tag, vr VR, value float32) {
	ds.SetUint32(tag, vr, float32Bits(value))
}

func (ds *DataSet) SetFloat64(tag Tag, vr VR, value float64) {
	b := make([]byte, 8)
	ds.byteOrder.PutUint64(b, float64Bits(value))
	ds.Set(&DataElement{Tag: tag, VR: vr, ValueBytes: b})
}

// SetSequence stores items as a defined-length SQ element under tag.
func (ds *DataSet) SetSequence(tag Tag, items []*DataSet) {
	ds.Set(&DataElement{Tag: tag, VR: SQ, Items: items})
}
