package dicom

import "encoding/binary"

// DataElement is a single tagged value within a DataSet. Value bytes are
// always held as raw, undecoded bytes; a sequence (VR SQ) instead owns an
// explicit list of child DataSets, one per Item, per PS3.5 7.5.
type DataElement struct {
	Tag Tag
	VR  VR

	// Length is the raw value-length field as read from (or about to be
	// written to) the wire. undefinedLength (0xFFFFFFFF) means
	// UndefinedLength is true and the element must be materialized with
	// explicit framing (Items or Fragments) rather than ValueBytes.
	Length uint32

	// ValueBytes holds the raw, padded value for every VR except SQ and
	// encapsulated PixelData. Always an owned copy -- never a slice into
	// the original parse buffer -- per the "do not mix ownership models"
	// design note.
	ValueBytes []byte

	// Items holds nested DataSets for a VR=SQ element. nil for
	// non-sequence elements.
	Items []*DataSet

	// Fragments holds the compressed-pixel-data item payloads for an
	// encapsulated PixelData element (Tag==TagPixelData, VR==OB,
	// UndefinedLength==true). Fragments[0] is conventionally the Basic
	// Offset Table's raw bytes; BasicOffsetTable decodes it.
	Fragments [][]byte
}

const undefinedLength uint32 = 0xFFFFFFFF

// UndefinedLength reports whether this element used the 0xFFFFFFFF sentinel
// length on the wire, per PS3.5 7.1.1.
func (e *DataElement) UndefinedLength() bool { return e.Length == undefinedLength }

// IsSequence reports whether e is a VR=SQ element.
func (e *DataElement) IsSequence() bool { return e.VR == SQ }

// IsEncapsulatedPixelData reports whether e is PixelData encoded with
// undefined length, i.e. a sequence of compressed fragments rather than a
// flat byte buffer.
func (e *DataElement) IsEncapsulatedPixelData() bool {
	return e.Tag == TagPixelData && e.UndefinedLength()
}

// BasicOffsetTable decodes the first fragment of an encapsulated PixelData
// element as a list of per-frame byte offsets, per PS3.5 A.4. Returns nil if
// e isn't encapsulated pixel data, or an empty slice if the offset table
// carries no entries (legal for a single-frame image).
func (e *DataElement) BasicOffsetTable(order binary.ByteOrder) []uint32 {
	if !e.IsEncapsulatedPixelData() || len(e.Fragments) == 0 {
		return nil
	}
	table := e.Fragments[0]
	offsets := make([]uint32, 0, len(table)/4)
	for i := 0; i+4 <= len(table); i += 4 {
		offsets = append(offsets, order.Uint32(table[i:i+4]))
	}
	return offsets
}
