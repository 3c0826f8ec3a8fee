package dicom

import "fmt"

// Tag is a (group, element) pair identifying a data element type, per
// PS3.5 7.1. Group is major in the total order; Element is minor.
type Tag struct {
	Group   uint16
	Element uint16
}

// String renders a tag the conventional "(0008,0018)" way.
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Less reports whether t sorts before o under the group-major, element-minor
// total order data elements must be serialized in, per PS3.5 7.1.
func (t Tag) Less(o Tag) bool {
	if t.Group != o.Group {
		return t.Group < o.Group
	}
	return t.Element < o.Element
}

// Reserved framing tags, all in the (FFFE,*) group. These never carry an
// explicit VR on the wire -- PS3.5 7.5 mandates implicit-VR framing for the
// whole group.
var (
	TagItem                     = Tag{0xFFFE, 0xE000}
	TagItemDelimitationItem     = Tag{0xFFFE, 0xE00D}
	TagSequenceDelimitationItem = Tag{0xFFFE, 0xE0DD}
)

// File Meta Information tags (group 0002), always explicit-VR little-endian
// per PS3.10 7.1.
var (
	TagFileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	TagFileMetaInformationVersion      = Tag{0x0002, 0x0001}
	TagMediaStorageSOPClassUID         = Tag{0x0002, 0x0002}
	TagMediaStorageSOPInstanceUID      = Tag{0x0002, 0x0003}
	TagTransferSyntaxUID               = Tag{0x0002, 0x0010}
	TagImplementationClassUID          = Tag{0x0002, 0x0012}
	TagImplementationVersionName       = Tag{0x0002, 0x0013}
)

// A handful of frequently used body tags, exposed as package constants for
// callers that don't want to round-trip through the dictionary by keyword.
var (
	TagSpecificCharacterSet = Tag{0x0008, 0x0005}
	TagPixelData            = Tag{0x7FE0, 0x0010}
	TagPatientName           = Tag{0x0010, 0x0010}
	TagPatientID             = Tag{0x0010, 0x0020}
	TagStudyDate             = Tag{0x0008, 0x0020}
	TagStudyInstanceUID      = Tag{0x0020, 0x000D}
	TagSeriesInstanceUID     = Tag{0x0020, 0x000E}
	TagSOPClassUID           = Tag{0x0008, 0x0016}
	TagSOPInstanceUID        = Tag{0x0008, 0x0018}
	TagRows                  = Tag{0x0028, 0x0010}
	TagColumns               = Tag{0x0028, 0x0011}
)

// IsPrivate reports whether the tag's group is odd, the DICOM convention for
// vendor-private elements (PS3.5 7.8.1). The dictionary never has entries
// for these, so under implicit VR they decode as VR=UN; explicit-VR streams
// keep the VR written on the wire.
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsFileMeta reports whether the tag belongs to the File Meta Information
// group, which is always framed as explicit-VR little-endian (PS3.10 7.1)
// regardless of the body's transfer syntax.
func (t Tag) IsFileMeta() bool {
	return t.Group == 0x0002
}
