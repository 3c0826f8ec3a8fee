package dicom

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dicomkit/dicom/dicomio"
)

const preambleLen = 128

// magicOffset is where the "DICM" magic word sits, immediately after the
// 128-byte preamble (PS3.10 7.1).
const magicOffset = preambleLen

// Read parses data as a DICOM file, applying opts. Non-fatal oddities are
// collected as Warnings on the returned File rather than aborting the
// parse; ReadOptions.Strict turns an unknown transfer syntax or an
// unrecognized VR into an error instead.
func Read(data []byte, opts ...ReadOption) (*File, error) {
	o := newReadOptions(opts)

	if hasMagic(data) {
		return readWithPreamble(data, o)
	}
	// Headerless fallback: some producers (and most synthetic test
	// fixtures) omit the 128-byte preamble entirely and start directly
	// with an Implicit VR Little Endian data set.
	ds, warnings, err := parseHeaderlessBody(data, o)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidPreamble, Err: err}
	}
	return &File{DataSet: ds, Warnings: warnings}, nil
}

func hasMagic(data []byte) bool {
	return len(data) >= magicOffset+4 && string(data[magicOffset:magicOffset+4]) == "DICM"
}

func parseHeaderlessBody(data []byte, o ReadOptions) (*DataSet, []Warning, error) {
	cur := dicomio.NewCursor(data, binary.LittleEndian, dicomio.ImplicitVR)
	return parseElements(cur, o, false)
}

func readWithPreamble(data []byte, o ReadOptions) (*File, error) {
	var preamble [128]byte
	copy(preamble[:], data[:preambleLen])

	metaStart := magicOffset + 4
	if metaStart > len(data) {
		return nil, truncatedInputErr(metaStart, len(data), magicOffset+4)
	}

	metaCur := dicomio.NewCursor(data[metaStart:], binary.LittleEndian, dicomio.ExplicitVR)
	fileMeta, metaRegionSize, warnings, err := parseFileMeta(metaCur, o)
	if err != nil {
		return nil, err
	}

	tsUID, _ := fileMeta.String(TagTransferSyntaxUID)
	ts, warn, err := resolveTransferSyntax(tsUID, o.Strict)
	if err != nil {
		return nil, err
	}
	if warn != nil {
		warnings = append(warnings, *warn)
	}

	bodyStart := metaStart + metaRegionSize
	if bodyStart > len(data) {
		return nil, truncatedInputErr(bodyStart, len(data), metaStart)
	}
	bodyBytes := data[bodyStart:]
	if ts.deflate {
		inflated, err := inflate(bodyBytes)
		if err != nil {
			return nil, ioErr(err)
		}
		bodyBytes = inflated
	}

	bodyCur := dicomio.NewCursor(bodyBytes, ts.byteOrder, ts.vrMode)
	ds, bodyWarnings, err := parseElements(bodyCur, o, false)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, bodyWarnings...)

	if names, ok := ds.Strings(TagSpecificCharacterSet); ok {
		ds.coding = buildCodingSystem(names)
	}

	return &File{
		Preamble:       preamble,
		FileMeta:       fileMeta,
		TransferSyntax: ts.uid,
		DataSet:        ds,
		Warnings:       warnings,
	}, nil
}

func inflate(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	return io.ReadAll(r)
}

// parseFileMeta reads the File Meta Information group (always Explicit VR
// Little Endian, PS3.10 7.1), bounded by the group length carried in its
// first element. Returns the parsed group and the total byte length it
// occupied (group length element included), so the caller knows where the
// body starts.
func parseFileMeta(cur *dicomio.Cursor, o ReadOptions) (*DataSet, int, []Warning, error) {
	groupLenElem, warnings, err := readElement(cur, o.Strict)
	if err != nil {
		return nil, 0, nil, err
	}
	if groupLenElem.Tag != TagFileMetaInformationGroupLength {
		return nil, 0, nil, unbalancedSequenceErr(groupLenElem.Tag, "expected FileMetaInformationGroupLength as first element")
	}
	ds := NewDataSet()
	ds.Set(groupLenElem)

	groupLen := int(ds.byteOrder.Uint32(groupLenElem.ValueBytes))
	sub, err := cur.Bounded(groupLen)
	if err != nil {
		return nil, 0, nil, wrapCursorErr(err)
	}
	for sub.Remaining() > 0 {
		e, warns, err := readElement(sub, o.Strict)
		if err != nil {
			return nil, 0, nil, err
		}
		if !e.Tag.IsFileMeta() {
			msg := fmt.Sprintf("%s outside File Meta group 0002, keeping it anyway", e.Tag)
			log.Debug().Str("tag", e.Tag.String()).Msg(msg)
			warnings = append(warnings, Warning{Kind: WarnFileMetaOutsideGroup, Tag: e.Tag, Message: msg})
		}
		warnings = append(warnings, warns...)
		ds.Set(e)
	}
	// The group length element itself -- tag(4) + VR(2) + length(2) +
	// value(4) under explicit VR's short header -- isn't counted in its
	// own value, so the total File Meta region is 12 bytes plus groupLen.
	const groupLengthElementSize = 12
	return ds, groupLengthElementSize + groupLen, warnings, nil
}

// parseElements reads elements from cur until it runs dry (stopAtItemDelim
// == false) or until an Item Delimitation Item tag is consumed
// (stopAtItemDelim == true, used when parsing the contents of an
// undefined-length sequence item).
func parseElements(cur *dicomio.Cursor, o ReadOptions, stopAtItemDelim bool) (*DataSet, []Warning, error) {
	ds := NewDataSet()
	ds.byteOrder = cur.ByteOrder()
	var warnings []Warning
	for cur.Remaining() > 0 {
		if stopAtItemDelim {
			tag, ok, err := peekTag(cur)
			if err != nil {
				return nil, nil, err
			}
			if ok && tag == TagItemDelimitationItem {
				if _, err := cur.ReadBytes(8); err != nil { // tag + 4-byte length
					return nil, nil, err
				}
				return ds, warnings, nil
			}
		}
		e, warns, err := readElement(cur, o.Strict)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		if e.Tag == TagPixelData && !o.KeepPixelData {
			e.ValueBytes = nil
			e.Fragments = nil
		}
		ds.Set(e)
	}
	return ds, warnings, nil
}

func peekTag(cur *dicomio.Cursor) (Tag, bool, error) {
	b, err := cur.Peek(4)
	if err != nil {
		return Tag{}, false, nil //nolint:nilerr // caller re-reads and surfaces the real truncation error
	}
	bo := cur.ByteOrder()
	return Tag{Group: bo.Uint16(b[0:2]), Element: bo.Uint16(b[2:4])}, true, nil
}

func readTag(cur *dicomio.Cursor) (Tag, error) {
	group, err := cur.ReadUint16()
	if err != nil {
		return Tag{}, err
	}
	elem, err := cur.ReadUint16()
	if err != nil {
		return Tag{}, err
	}
	return Tag{Group: group, Element: elem}, nil
}

// readElement reads one tag-VR-length-value element, recursing into
// sequence/item or encapsulated-pixel-data framing as needed.
func readElement(cur *dicomio.Cursor, strict bool) (*DataElement, []Warning, error) {
	tag, err := readTag(cur)
	if err != nil {
		return nil, nil, wrapCursorErr(err)
	}

	var vr VR
	var length uint32
	var warnings []Warning

	if cur.Mode() == dicomio.ExplicitVR {
		vrBytes, err := cur.ReadBytes(2)
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
		var ok bool
		vr, ok = ParseVR(string(vrBytes))
		if !ok {
			if strict {
				return nil, nil, invalidVRErr(vrBytes, cur.Position()-2)
			}
			vr = UN
			msg := fmt.Sprintf("unrecognized VR %q at %s, treating as UN", vrBytes, tag)
			log.Debug().Str("tag", tag.String()).Msg(msg)
			warnings = append(warnings, Warning{Kind: WarnUnknownVR, Tag: tag, Message: msg})
		}
		if vr.IsLongHeader() {
			if _, err := cur.ReadBytes(2); err != nil { // reserved
				return nil, nil, wrapCursorErr(err)
			}
			length, err = cur.ReadUint32()
		} else {
			var l16 uint16
			l16, err = cur.ReadUint16()
			length = uint32(l16)
		}
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
	} else {
		vr = vrForImplicit(tag)
		length, err = cur.ReadUint32()
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
	}

	switch {
	case tag == TagPixelData && length == undefinedLength:
		frags, err := readEncapsulatedFragments(cur)
		if err != nil {
			return nil, nil, err
		}
		return &DataElement{Tag: tag, VR: vr, Length: length, Fragments: frags}, warnings, nil

	case vr.IsSequence():
		items, seqWarnings, err := readSequenceItems(cur, length, strict)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, seqWarnings...)
		return &DataElement{Tag: tag, VR: vr, Length: length, Items: items}, warnings, nil

	case length == undefinedLength:
		return nil, nil, unbalancedSequenceErr(tag, "undefined length on a non-sequence, non-PixelData element")

	default:
		raw, err := cur.ReadBytes(int(length))
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
		value := append([]byte(nil), raw...)
		if length%2 == 1 {
			msg := fmt.Sprintf("%s has odd length %d", tag, length)
			log.Debug().Str("tag", tag.String()).Msg(msg)
			warnings = append(warnings, Warning{Kind: WarnOddLengthPadded, Tag: tag, Message: msg})
		}
		return &DataElement{Tag: tag, VR: vr, Length: length, ValueBytes: value}, warnings, nil
	}
}

// readSequenceItems parses a VR=SQ element's items, either bounded by a
// defined length or terminated by a Sequence Delimitation Item.
func readSequenceItems(cur *dicomio.Cursor, length uint32, strict bool) ([]*DataSet, []Warning, error) {
	if length != undefinedLength {
		sub, err := cur.Bounded(int(length))
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
		return readItemsFrom(sub, false, strict)
	}
	return readItemsFrom(cur, true, strict)
}

// readItemsFrom reads Item-framed DataSets from cur. When stopAtSeqDelim is
// true (undefined-length sequence), it consumes the Sequence Delimitation
// Item that ends the run; otherwise it runs until cur is exhausted (a
// defined-length sequence's bounded sub-cursor).
func readItemsFrom(cur *dicomio.Cursor, stopAtSeqDelim bool, strict bool) ([]*DataSet, []Warning, error) {
	var items []*DataSet
	var warnings []Warning
	for {
		if stopAtSeqDelim {
			if cur.Remaining() == 0 {
				return nil, nil, unbalancedSequenceErr(Tag{}, "undefined-length sequence missing its Sequence Delimitation Item")
			}
		} else if cur.Remaining() == 0 {
			return items, warnings, nil
		}
		tag, length, err := readItemHeader(cur)
		if err != nil {
			return nil, nil, err
		}
		if tag == TagSequenceDelimitationItem {
			if !stopAtSeqDelim {
				return nil, nil, unbalancedSequenceErr(tag, "unexpected Sequence Delimitation Item in a defined-length sequence")
			}
			return items, warnings, nil
		}
		if tag != TagItem {
			return nil, nil, unbalancedSequenceErr(tag, "expected an Item tag inside a sequence")
		}

		var itemDS *DataSet
		var itemWarnings []Warning
		itemOpts := ReadOptions{Strict: strict, KeepPixelData: true}
		if length == undefinedLength {
			itemDS, itemWarnings, err = parseElements(cur, itemOpts, true)
		} else {
			var itemCur *dicomio.Cursor
			itemCur, err = cur.Bounded(int(length))
			if err == nil {
				itemDS, itemWarnings, err = parseElements(itemCur, itemOpts, false)
			}
		}
		if err != nil {
			return nil, nil, wrapCursorErr(err)
		}
		warnings = append(warnings, itemWarnings...)
		items = append(items, itemDS)
	}
}

func readItemHeader(cur *dicomio.Cursor) (Tag, uint32, error) {
	tag, err := readTag(cur)
	if err != nil {
		return Tag{}, 0, wrapCursorErr(err)
	}
	length, err := cur.ReadUint32()
	if err != nil {
		return Tag{}, 0, wrapCursorErr(err)
	}
	return tag, length, nil
}

// readEncapsulatedFragments reads the Basic Offset Table and compressed
// fragments of an undefined-length PixelData element (PS3.5 A.4), stopping
// at the Sequence Delimitation Item.
func readEncapsulatedFragments(cur *dicomio.Cursor) ([][]byte, error) {
	var fragments [][]byte
	for {
		tag, length, err := readItemHeader(cur)
		if err != nil {
			return nil, err
		}
		if tag == TagSequenceDelimitationItem {
			return fragments, nil
		}
		if tag != TagItem {
			return nil, unbalancedSequenceErr(tag, "expected an Item tag inside encapsulated PixelData")
		}
		if length == undefinedLength {
			return nil, unbalancedSequenceErr(tag, "encapsulated PixelData fragment has undefined length")
		}
		raw, err := cur.ReadBytes(int(length))
		if err != nil {
			return nil, wrapCursorErr(err)
		}
		fragments = append(fragments, append([]byte(nil), raw...))
	}
}

func wrapCursorErr(err error) error {
	var trunc *dicomio.TruncatedInputError
	if errors.As(err, &trunc) {
		return truncatedInputErr(trunc.Need, trunc.Have, trunc.AtOffset)
	}
	return err
}
