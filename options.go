package dicom

// ReadOptions configures Read.
type ReadOptions struct {
	// Strict, when true, turns an unknown transfer syntax and unrecognized
	// VR bytes into hard errors instead of Warnings. Other oddities
	// (non-0002 elements inside the File Meta group, odd value lengths)
	// are reported as Warnings either way. Default: false.
	Strict bool

	// KeepPixelData, when false, discards PixelData's value bytes after
	// confirming framing, keeping File.DataSet small. Default: true.
	KeepPixelData bool
}

// ReadOption mutates a ReadOptions value.
type ReadOption func(*ReadOptions)

// WithStrict enables strict mode (see ReadOptions.Strict).
func WithStrict() ReadOption { return func(o *ReadOptions) { o.Strict = true } }

// WithoutPixelData discards PixelData's value during Read.
func WithoutPixelData() ReadOption {
	return func(o *ReadOptions) { o.KeepPixelData = false }
}

func defaultReadOptions() ReadOptions {
	return ReadOptions{KeepPixelData: true}
}

func newReadOptions(opts []ReadOption) ReadOptions {
	o := defaultReadOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// CreateOptions configures Create.
type CreateOptions struct {
	// TransferSyntax is the UID the data set will be serialized under.
	// Defaults to Explicit VR Little Endian.
	TransferSyntax string

	// SOPClassUID and SOPInstanceUID seed MediaStorageSOPClassUID and
	// MediaStorageSOPInstanceUID in the synthesized file meta group. If
	// SOPInstanceUID is empty, Create mints one with the package UID
	// generator.
	SOPClassUID    string
	SOPInstanceUID string

	// ImplementationClassUID/VersionName identify the writing
	// implementation in the file meta group (PS3.5 7.1). Defaults to this
	// package's own generated root and name if left empty.
	ImplementationClassUID    string
	ImplementationVersionName string
}

// CreateOption mutates a CreateOptions value.
type CreateOption func(*CreateOptions)

func WithTransferSyntax(uid string) CreateOption {
	return func(o *CreateOptions) { o.TransferSyntax = uid }
}

func WithSOPClassUID(uid string) CreateOption {
	return func(o *CreateOptions) { o.SOPClassUID = uid }
}

func WithSOPInstanceUID(uid string) CreateOption {
	return func(o *CreateOptions) { o.SOPInstanceUID = uid }
}

func defaultCreateOptions() CreateOptions {
	return CreateOptions{
		TransferSyntax:            UIDExplicitVRLittleEndian,
		ImplementationClassUID:    implementationClassUID,
		ImplementationVersionName: implementationVersionName,
	}
}

func newCreateOptions(opts []CreateOption) CreateOptions {
	o := defaultCreateOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
