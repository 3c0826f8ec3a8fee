package dicom

import (
	"encoding/binary"
	"fmt"

	"github.com/dicomkit/dicom/dicomio"
)

// resolvedTransferSyntax is the (byte order, VR mode, deflate) triple a
// transfer syntax UID expands to.
type resolvedTransferSyntax struct {
	uid       string
	byteOrder binary.ByteOrder
	vrMode    dicomio.VRMode
	deflate   bool
}

// resolveTransferSyntax maps uid to its wire encoding. An empty or
// unrecognized uid defaults to Explicit VR Little Endian: in strict mode
// this is a hard ErrUnknownTransferSyntax, otherwise it's tolerated with a
// Warning.
func resolveTransferSyntax(uid string, strict bool) (resolvedTransferSyntax, *Warning, error) {
	switch uid {
	case UIDImplicitVRLittleEndian:
		return resolvedTransferSyntax{uid, binary.LittleEndian, dicomio.ImplicitVR, false}, nil, nil
	case UIDExplicitVRLittleEndian:
		return resolvedTransferSyntax{uid, binary.LittleEndian, dicomio.ExplicitVR, false}, nil, nil
	case UIDExplicitVRBigEndian:
		return resolvedTransferSyntax{uid, binary.BigEndian, dicomio.ExplicitVR, false}, nil, nil
	case UIDDeflatedExplicitVRLittleEndian:
		return resolvedTransferSyntax{uid, binary.LittleEndian, dicomio.ExplicitVR, true}, nil, nil
	default:
		if strict {
			return resolvedTransferSyntax{}, nil, unknownTransferSyntaxErr(uid)
		}
		reason := "missing TransferSyntaxUID"
		if uid != "" {
			reason = fmt.Sprintf("unknown transfer syntax %q", uid)
		}
		msg := reason + ", defaulting to Explicit VR Little Endian"
		log.Debug().Str("tag", TagTransferSyntaxUID.String()).Msg(msg)
		warn := &Warning{
			Kind:    WarnUnknownTransferSyntax,
			Tag:     TagTransferSyntaxUID,
			Message: msg,
		}
		return resolvedTransferSyntax{UIDExplicitVRLittleEndian, binary.LittleEndian, dicomio.ExplicitVR, false}, warn, nil
	}
}
