package dicom

import (
	"compress/flate"
	"encoding/binary"
	"strings"

	"github.com/dicomkit/dicom/dicomio"
)

// Write serializes f back to DICOM Part 10 bytes: 128-byte preamble, "DICM"
// magic, File Meta Information group (always Explicit VR Little Endian),
// then the body under f.TransferSyntax.
func (f *File) Write() ([]byte, error) {
	ts, _, err := resolveTransferSyntax(f.TransferSyntax, true)
	if err != nil {
		return nil, err
	}

	bodyWriter := dicomio.NewWriter(ts.byteOrder, ts.vrMode)
	for _, e := range f.DataSet.Elements() {
		if err := writeElement(bodyWriter, e); err != nil {
			return nil, err
		}
	}
	bodyBytes := bodyWriter.Bytes()
	if ts.deflate {
		bodyBytes, err = deflateBytes(bodyBytes)
		if err != nil {
			return nil, ioErr(err)
		}
	}

	metaWriter := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	meta := f.FileMeta
	if meta == nil {
		meta = NewDataSet()
	}
	for _, e := range meta.Elements() {
		if e.Tag == TagFileMetaInformationGroupLength {
			continue // recomputed below, always written first
		}
		if err := writeElement(metaWriter, e); err != nil {
			return nil, err
		}
	}
	metaBytes := metaWriter.Bytes()

	groupLenValue := make([]byte, 4)
	binary.LittleEndian.PutUint32(groupLenValue, uint32(len(metaBytes)))
	groupLenElem := &DataElement{Tag: TagFileMetaInformationGroupLength, VR: UL, ValueBytes: groupLenValue}

	out := dicomio.NewWriter(binary.LittleEndian, dicomio.ExplicitVR)
	out.WriteBytes(f.Preamble[:])
	out.WriteString("DICM")
	if err := writeElement(out, groupLenElem); err != nil {
		return nil, err
	}
	out.WriteBytes(metaBytes)
	out.WriteBytes(bodyBytes)
	return out.Bytes(), nil
}

func deflateBytes(b []byte) ([]byte, error) {
	var buf strings.Builder
	zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// writeElement encodes one element's tag-VR-length-value header and
// contents, recursing for sequences and encapsulated PixelData. The DataSet
// setters already pad to even length; an odd-length ValueBytes buffer set
// directly is padded here with the VR's pad byte. This also enforces the
// VR max-length invariant on Write (ErrValueTooLong).
func writeElement(w *dicomio.Writer, e *DataElement) error {
	if err := checkMaxLength(e); err != nil {
		return err
	}
	writeTag(w, e.Tag)

	switch {
	case e.IsEncapsulatedPixelData():
		if w.Mode() == dicomio.ExplicitVR {
			writeExplicitHeader(w, e.VR, true)
		}
		w.WriteUint32(undefinedLength)
		return writeFragments(w, e.Fragments)

	case e.IsSequence():
		return writeSequence(w, e)

	default:
		value := e.ValueBytes
		if len(value)%2 == 1 {
			value = append(append([]byte(nil), value...), e.VR.PadByte())
		}
		if w.Mode() == dicomio.ExplicitVR {
			writeExplicitHeader(w, e.VR, e.VR.IsLongHeader())
		}
		if w.Mode() == dicomio.ImplicitVR || e.VR.IsLongHeader() {
			w.WriteUint32(uint32(len(value)))
		} else {
			w.WriteUint16(uint16(len(value)))
		}
		w.WriteBytes(value)
		return nil
	}
}

func checkMaxLength(e *DataElement) error {
	if max := e.VR.MaxLength(); max > 0 && len(e.ValueBytes) > max {
		return valueTooLongErr(e.Tag, e.VR, max)
	}
	return nil
}

func writeTag(w *dicomio.Writer, tag Tag) {
	w.WriteUint16(tag.Group)
	w.WriteUint16(tag.Element)
}

// writeExplicitHeader writes the 2-byte VR code and, for long-header VRs,
// the 2 reserved bytes. The length field itself is written by the caller,
// since its width (16 vs 32 bit) and value depend on context.
func writeExplicitHeader(w *dicomio.Writer, vr VR, longHeader bool) {
	w.WriteString(string(vr))
	if longHeader {
		w.WriteZeros(2)
	}
}

func writeSequence(w *dicomio.Writer, e *DataElement) error {
	if w.Mode() == dicomio.ExplicitVR {
		writeExplicitHeader(w, SQ, true)
	}
	// Measure the fully-framed item bytes first so the sequence header can
	// carry a defined length.
	items := w.NewSubWriter()
	for _, item := range e.Items {
		if err := writeItem(items, item); err != nil {
			return err
		}
	}
	body := items.Bytes()
	w.WriteUint32(uint32(len(body)))
	w.WriteBytes(body)
	return nil
}

func writeItem(w *dicomio.Writer, item *DataSet) error {
	sub := w.NewSubWriter()
	for _, e := range item.Elements() {
		if err := writeElement(sub, e); err != nil {
			return err
		}
	}
	body := sub.Bytes()
	writeTag(w, TagItem)
	w.WriteUint32(uint32(len(body)))
	w.WriteBytes(body)
	return nil
}

func writeFragments(w *dicomio.Writer, fragments [][]byte) error {
	for _, frag := range fragments {
		writeTag(w, TagItem)
		w.WriteUint32(uint32(len(frag)))
		w.WriteBytes(frag)
	}
	writeTag(w, TagSequenceDelimitationItem)
	w.WriteUint32(0)
	return nil
}
