// Package dicom reads and writes DICOM Part 10 files: a preamble, the
// "DICM" magic, a File Meta Information group, and a body DataSet encoded
// under a declared transfer syntax.
package dicom

import "os"

// File is a parsed or in-construction DICOM file, with the File Meta
// Information group and the body DataSet held separately since they're
// always framed under different rules (see FileMeta).
type File struct {
	// Preamble is the 128-byte file preamble. Read preserves whatever
	// bytes were present (many writers stash an informal tag here);
	// Create leaves it zeroed.
	Preamble [128]byte

	// FileMeta holds the File Meta Information group (0002,*), always
	// Explicit VR Little Endian regardless of the body's transfer syntax
	// (PS3.10 7.1). nil only for files parsed through the headerless
	// fallback.
	FileMeta *DataSet

	// TransferSyntax is the UID the body DataSet is (or will be)
	// serialized under.
	TransferSyntax string

	// DataSet is the parsed or constructed body.
	DataSet *DataSet

	// Warnings lists non-fatal oddities Read tolerated. Always empty for
	// files built with Create.
	Warnings []Warning
}

// Create builds a new File wrapping ds, synthesizing a File Meta
// Information group from opts. File meta is always regenerated from the
// elements being written, never trusted from caller-supplied bytes.
func Create(ds *DataSet, opts ...CreateOption) *File {
	o := newCreateOptions(opts)

	sopInstanceUID := o.SOPInstanceUID
	if sopInstanceUID == "" {
		sopInstanceUID = GenerateSOPInstanceUID()
	}

	meta := NewDataSet()
	meta.Set(&DataElement{Tag: TagFileMetaInformationVersion, VR: OB, ValueBytes: []byte{0x00, 0x01}})
	meta.SetString(TagMediaStorageSOPClassUID, UI, o.SOPClassUID)
	meta.SetString(TagMediaStorageSOPInstanceUID, UI, sopInstanceUID)
	meta.SetString(TagTransferSyntaxUID, UI, o.TransferSyntax)
	meta.SetString(TagImplementationClassUID, UI, o.ImplementationClassUID)
	meta.SetString(TagImplementationVersionName, SH, o.ImplementationVersionName)

	return &File{
		FileMeta:       meta,
		TransferSyntax: o.TransferSyntax,
		DataSet:        ds,
	}
}

// ReadFile reads and parses path.
func ReadFile(path string, opts ...ReadOption) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(err)
	}
	return Read(data, opts...)
}

// WriteFile serializes f and writes it to path with mode 0644.
func WriteFile(path string, f *File) error {
	data, err := f.Write()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioErr(err)
	}
	return nil
}

// LookupTag looks up a standard tag's dictionary entry, a thin re-export of
// ByTag for callers that prefer the dicom.LookupTag spelling.
func LookupTag(tag Tag) (DictEntry, bool) { return ByTag(tag) }

// LookupTransferSyntax looks up a well-known transfer syntax UID's name.
func LookupTransferSyntax(uid string) (UIDEntry, bool) {
	e, ok := ByUID(uid)
	if !ok || e.Category != CategoryTransferSyntax {
		return UIDEntry{}, false
	}
	return e, true
}
