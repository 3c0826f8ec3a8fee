package dicom

// VR is a two-letter DICOM Value Representation code (PS3.5 6.2), modeled
// as a small enum with metadata methods -- a sum type over header class
// and value kind, rather than dispatch through an interface -- since the
// full set of VRs is closed and fixed by the standard.
type VR string

const (
	AE VR = "AE" // Application Entity
	AS VR = "AS" // Age String
	AT VR = "AT" // Attribute Tag
	CS VR = "CS" // Code String
	DA VR = "DA" // Date
	DS VR = "DS" // Decimal String
	DT VR = "DT" // Date Time
	FL VR = "FL" // Floating Point Single
	FD VR = "FD" // Floating Point Double
	IS VR = "IS" // Integer String
	LO VR = "LO" // Long String
	LT VR = "LT" // Long Text
	OB VR = "OB" // Other Byte
	OD VR = "OD" // Other Double
	OF VR = "OF" // Other Float
	OL VR = "OL" // Other Long
	OV VR = "OV" // Other Very Long
	OW VR = "OW" // Other Word
	PN VR = "PN" // Person Name
	SH VR = "SH" // Short String
	SL VR = "SL" // Signed Long
	SQ VR = "SQ" // Sequence of Items
	SS VR = "SS" // Signed Short
	ST VR = "ST" // Short Text
	TM VR = "TM" // Time
	UC VR = "UC" // Unlimited Characters
	UI VR = "UI" // Unique Identifier
	UL VR = "UL" // Unsigned Long
	UN VR = "UN" // Unknown
	UR VR = "UR" // URI
	US VR = "US" // Unsigned Short
	UT VR = "UT" // Unlimited Text
)

// headerClass distinguishes the 16-bit-length short header from the
// 2-reserved-bytes + 32-bit-length long header, per PS3.5 7.1.1-7.1.2.
type headerClass int

const (
	shortHeader headerClass = iota
	longHeader
)

// valueKind groups VRs by how their value bytes are interpreted, mirroring
// the vrType grouping used by go-dicom-parser-style libraries in this pack.
type valueKind int

const (
	kindText valueKind = iota
	kindInt16
	kindInt32
	kindFloat32
	kindFloat64
	kindBinary
	kindSequence
	kindTag
)

type vrMeta struct {
	header           headerClass
	pad              byte
	kind             valueKind
	allowsUndefined  bool
	maxLength        int // 0 == unbounded
}

// padNone marks VRs whose value kind is inherently even-length (binary
// numerics) and therefore never need a defensive pad byte.
const padNone = 0

var vrTable = map[VR]vrMeta{
	AE: {shortHeader, ' ', kindText, false, 16},
	AS: {shortHeader, ' ', kindText, false, 4},
	AT: {shortHeader, padNone, kindTag, false, 0},
	CS: {shortHeader, ' ', kindText, false, 16},
	DA: {shortHeader, ' ', kindText, false, 8},
	DS: {shortHeader, ' ', kindText, false, 16},
	DT: {shortHeader, ' ', kindText, false, 26},
	FL: {shortHeader, padNone, kindFloat32, false, 0},
	FD: {shortHeader, padNone, kindFloat64, false, 0},
	IS: {shortHeader, ' ', kindText, false, 12},
	LO: {shortHeader, ' ', kindText, false, 64},
	LT: {shortHeader, ' ', kindText, false, 10240},
	OB: {longHeader, padNone, kindBinary, true, 0},
	OD: {longHeader, padNone, kindFloat64, false, 0},
	OF: {longHeader, padNone, kindFloat32, false, 0},
	OL: {longHeader, padNone, kindBinary, false, 0},
	OV: {longHeader, padNone, kindBinary, false, 0},
	OW: {longHeader, padNone, kindBinary, true, 0},
	PN: {shortHeader, ' ', kindText, false, 64 * 3},
	SH: {shortHeader, ' ', kindText, false, 16},
	SL: {shortHeader, padNone, kindInt32, false, 0},
	SQ: {longHeader, padNone, kindSequence, true, 0},
	SS: {shortHeader, padNone, kindInt16, false, 0},
	ST: {shortHeader, ' ', kindText, false, 1024},
	TM: {shortHeader, ' ', kindText, false, 16},
	UC: {longHeader, ' ', kindText, true, 0},
	UI: {shortHeader, 0x00, kindText, false, 64},
	UL: {shortHeader, padNone, kindInt32, false, 0},
	UN: {longHeader, padNone, kindBinary, true, 0},
	UR: {longHeader, ' ', kindText, false, 0},
	US: {shortHeader, padNone, kindInt16, false, 0},
	UT: {longHeader, ' ', kindText, true, 0},
}

// meta looks up a VR's metadata, defaulting unrecognized codes to UN's
// binary, long-header, undefined-length-permitting shape -- the same
// fallback the parser applies for VRs absent from the wire.
func (v VR) meta() vrMeta {
	if m, ok := vrTable[v]; ok {
		return m
	}
	return vrTable[UN]
}

// IsLongHeader reports whether v uses the 2-reserved-bytes + 32-bit-length
// header encoding under explicit VR.
func (v VR) IsLongHeader() bool { return v.meta().header == longHeader }

// PadByte returns the byte used to pad an odd-length value to an even one
// (PS3.5 7.1.2), or padNone if the VR's values are inherently even-length.
func (v VR) PadByte() byte { return v.meta().pad }

// AllowsUndefinedLength reports whether the sentinel 0xFFFFFFFF length is
// legal for this VR (SQ always; OB/OW only when encapsulating pixel data,
// which the parser/writer gate on the PixelData tag rather than the VR
// alone).
func (v VR) AllowsUndefinedLength() bool { return v.meta().allowsUndefined }

// MaxLength returns the VR's maximum single-value byte length per PS3.5
// table 6.2-1, or 0 if unbounded.
func (v VR) MaxLength() int { return v.meta().maxLength }

// IsSequence reports whether v == SQ.
func (v VR) IsSequence() bool { return v == SQ }

// ParseVR converts s to a VR and reports whether it names one of the ~30
// standard two-letter VR codes.
func ParseVR(s string) (VR, bool) {
	v := VR(s)
	_, ok := vrTable[v]
	return v, ok
}
