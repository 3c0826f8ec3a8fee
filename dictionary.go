package dicom

// Dictionary maps standard tags and well-known UIDs to human-readable
// metadata, per PS3.6. The full NEMA registry runs to thousands of rows;
// this dictionary inlines a representative cross-section -- File Meta,
// and the Patient/Study/Series/Image modules real DICOM files carry --
// rather than a generated exhaustive table.

// DictEntry describes one standard data-element tag.
type DictEntry struct {
	Tag     Tag
	Name    string
	Keyword string
	// VRs lists every VR PS3.6 permits for this tag, in the order a
	// decoder should try them. Some standard tags have more than one
	// (e.g. PixelData is OW|OB depending on context); implicit-VR
	// decoding always selects VRs[0].
	VRs []VR
}

var tagDictionary = buildTagDictionary()

func buildTagDictionary() map[Tag]DictEntry {
	entries := []DictEntry{
		{TagFileMetaInformationGroupLength, "FileMetaInformationGroupLength", "FileMetaInformationGroupLength", []VR{UL}},
		{TagFileMetaInformationVersion, "FileMetaInformationVersion", "FileMetaInformationVersion", []VR{OB}},
		{TagMediaStorageSOPClassUID, "MediaStorageSOPClassUID", "MediaStorageSOPClassUID", []VR{UI}},
		{TagMediaStorageSOPInstanceUID, "MediaStorageSOPInstanceUID", "MediaStorageSOPInstanceUID", []VR{UI}},
		{Tag{0x0002, 0x0012}, "ImplementationClassUID", "ImplementationClassUID", []VR{UI}},
		{Tag{0x0002, 0x0013}, "ImplementationVersionName", "ImplementationVersionName", []VR{SH}},
		{TagTransferSyntaxUID, "TransferSyntaxUID", "TransferSyntaxUID", []VR{UI}},
		{Tag{0x0002, 0x0016}, "SourceApplicationEntityTitle", "SourceApplicationEntityTitle", []VR{AE}},

		{TagSpecificCharacterSet, "SpecificCharacterSet", "SpecificCharacterSet", []VR{CS}},
		{Tag{0x0008, 0x0008}, "ImageType", "ImageType", []VR{CS}},
		{TagSOPClassUID, "SOPClassUID", "SOPClassUID", []VR{UI}},
		{TagSOPInstanceUID, "SOPInstanceUID", "SOPInstanceUID", []VR{UI}},
		{TagStudyDate, "StudyDate", "StudyDate", []VR{DA}},
		{Tag{0x0008, 0x0021}, "SeriesDate", "SeriesDate", []VR{DA}},
		{Tag{0x0008, 0x0030}, "StudyTime", "StudyTime", []VR{TM}},
		{Tag{0x0008, 0x0050}, "AccessionNumber", "AccessionNumber", []VR{SH}},
		{Tag{0x0008, 0x0060}, "Modality", "Modality", []VR{CS}},
		{Tag{0x0008, 0x0090}, "ReferringPhysicianName", "ReferringPhysicianName", []VR{PN}},
		{Tag{0x0008, 0x1030}, "StudyDescription", "StudyDescription", []VR{LO}},
		{Tag{0x0008, 0x1032}, "ProcedureCodeSequence", "ProcedureCodeSequence", []VR{SQ}},
		{Tag{0x0008, 0x103E}, "SeriesDescription", "SeriesDescription", []VR{LO}},
		{Tag{0x0008, 0x1115}, "ReferencedSeriesSequence", "ReferencedSeriesSequence", []VR{SQ}},
		{Tag{0x0008, 0x1140}, "ReferencedImageSequence", "ReferencedImageSequence", []VR{SQ}},

		{TagPatientName, "PatientName", "PatientName", []VR{PN}},
		{TagPatientID, "PatientID", "PatientID", []VR{LO}},
		{Tag{0x0010, 0x0030}, "PatientBirthDate", "PatientBirthDate", []VR{DA}},
		{Tag{0x0010, 0x0040}, "PatientSex", "PatientSex", []VR{CS}},

		{Tag{0x0020, 0x000D}, "StudyInstanceUID", "StudyInstanceUID", []VR{UI}},
		{Tag{0x0020, 0x000E}, "SeriesInstanceUID", "SeriesInstanceUID", []VR{UI}},
		{Tag{0x0020, 0x0010}, "StudyID", "StudyID", []VR{SH}},
		{Tag{0x0020, 0x0011}, "SeriesNumber", "SeriesNumber", []VR{IS}},
		{Tag{0x0020, 0x0013}, "InstanceNumber", "InstanceNumber", []VR{IS}},
		{Tag{0x0020, 0x0032}, "ImagePositionPatient", "ImagePositionPatient", []VR{DS}},
		{Tag{0x0020, 0x0037}, "ImageOrientationPatient", "ImageOrientationPatient", []VR{DS}},
		{Tag{0x0020, 0x0052}, "FrameOfReferenceUID", "FrameOfReferenceUID", []VR{UI}},

		{Tag{0x0028, 0x0002}, "SamplesPerPixel", "SamplesPerPixel", []VR{US}},
		{Tag{0x0028, 0x0004}, "PhotometricInterpretation", "PhotometricInterpretation", []VR{CS}},
		{TagRows, "Rows", "Rows", []VR{US}},
		{TagColumns, "Columns", "Columns", []VR{US}},
		{Tag{0x0028, 0x0030}, "PixelSpacing", "PixelSpacing", []VR{DS}},
		{Tag{0x0028, 0x0100}, "BitsAllocated", "BitsAllocated", []VR{US}},
		{Tag{0x0028, 0x0101}, "BitsStored", "BitsStored", []VR{US}},
		{Tag{0x0028, 0x0102}, "HighBit", "HighBit", []VR{US}},
		{Tag{0x0028, 0x0103}, "PixelRepresentation", "PixelRepresentation", []VR{US}},
		{Tag{0x0028, 0x1050}, "WindowCenter", "WindowCenter", []VR{DS}},
		{Tag{0x0028, 0x1051}, "WindowWidth", "WindowWidth", []VR{DS}},
		{Tag{0x0028, 0x1052}, "RescaleIntercept", "RescaleIntercept", []VR{DS}},
		{Tag{0x0028, 0x1053}, "RescaleSlope", "RescaleSlope", []VR{DS}},

		{TagPixelData, "PixelData", "PixelData", []VR{OW, OB}},

		{Tag{0x0040, 0xA730}, "ContentSequence", "ContentSequence", []VR{SQ}},
		{Tag{0x0040, 0xA168}, "ConceptCodeSequence", "ConceptCodeSequence", []VR{SQ}},

		{Tag{0x0004, 0x1220}, "DirectoryRecordSequence", "DirectoryRecordSequence", []VR{SQ}},
		{Tag{0x0004, 0x1500}, "ReferencedFileID", "ReferencedFileID", []VR{CS}},
	}
	m := make(map[Tag]DictEntry, len(entries))
	for _, e := range entries {
		m[e.Tag] = e
	}
	return m
}

var keywordIndex = buildKeywordIndex()

func buildKeywordIndex() map[string]DictEntry {
	m := make(map[string]DictEntry, len(tagDictionary))
	for _, e := range tagDictionary {
		m[e.Keyword] = e
	}
	return m
}

// ByTag looks up a standard tag's dictionary entry. Tags not present in the
// table (private elements, or standard tags this dictionary doesn't carry)
// report ok=false; callers fall back to VR=UN per the parser's implicit-VR
// policy. Group-length elements ((g,0000) for any even group) always exist
// per PS3.5 7.2 and are synthesized on the fly rather than listed per group.
func ByTag(tag Tag) (DictEntry, bool) {
	if e, ok := tagDictionary[tag]; ok {
		return e, true
	}
	if tag.Group%2 == 0 && tag.Element == 0x0000 {
		return DictEntry{Tag: tag, Name: "GenericGroupLength", Keyword: "GenericGroupLength", VRs: []VR{UL}}, true
	}
	return DictEntry{}, false
}

// ByKeyword looks up a standard tag's dictionary entry by its CamelCase
// keyword, e.g. ByKeyword("PatientName").
func ByKeyword(keyword string) (DictEntry, bool) {
	e, ok := keywordIndex[keyword]
	return e, ok
}

// vrForImplicit returns the VR an implicit-VR stream should use for tag:
// the dictionary's first allowed VR, or UN if the tag is unknown.
func vrForImplicit(tag Tag) VR {
	if tag.Group == 0xFFFE {
		return UN // framing tags carry no value of their own
	}
	e, ok := ByTag(tag)
	if !ok || len(e.VRs) == 0 {
		return UN
	}
	return e.VRs[0]
}

// UIDCategory classifies a well-known UID.
type UIDCategory int

const (
	CategoryTransferSyntax UIDCategory = iota
	CategorySOPClass
	CategoryMetaSOPClass
	CategoryOther
)

// UIDEntry describes one well-known DICOM UID.
type UIDEntry struct {
	UID      string
	Name     string
	Keyword  string
	Category UIDCategory
}

const (
	UIDImplicitVRLittleEndian      = "1.2.840.10008.1.2"
	UIDExplicitVRLittleEndian      = "1.2.840.10008.1.2.1"
	UIDDeflatedExplicitVRLittleEndian = "1.2.840.10008.1.2.1.99"
	UIDExplicitVRBigEndian         = "1.2.840.10008.1.2.2"
)

var uidDictionary = buildUIDDictionary()

func buildUIDDictionary() map[string]UIDEntry {
	entries := []UIDEntry{
		{UIDImplicitVRLittleEndian, "Implicit VR Little Endian", "ImplicitVRLittleEndian", CategoryTransferSyntax},
		{UIDExplicitVRLittleEndian, "Explicit VR Little Endian", "ExplicitVRLittleEndian", CategoryTransferSyntax},
		{UIDDeflatedExplicitVRLittleEndian, "Deflated Explicit VR Little Endian", "DeflatedExplicitVRLittleEndian", CategoryTransferSyntax},
		{UIDExplicitVRBigEndian, "Explicit VR Big Endian", "ExplicitVRBigEndian", CategoryTransferSyntax},
		{"1.2.840.10008.1.2.4.50", "JPEG Baseline (Process 1)", "JPEGBaseline8Bit", CategoryTransferSyntax},
		{"1.2.840.10008.1.2.4.70", "JPEG Lossless, Non-Hierarchical", "JPEGLossless", CategoryTransferSyntax},
		{"1.2.840.10008.1.2.5", "RLE Lossless", "RLELossless", CategoryTransferSyntax},

		{"1.2.840.10008.5.1.4.1.1.7", "Secondary Capture Image Storage", "SecondaryCaptureImageStorage", CategorySOPClass},
		{"1.2.840.10008.5.1.4.1.1.2", "CT Image Storage", "CTImageStorage", CategorySOPClass},
		{"1.2.840.10008.5.1.4.1.1.4", "MR Image Storage", "MRImageStorage", CategorySOPClass},
		{"1.2.840.10008.5.1.4.1.1.1", "Computed Radiography Image Storage", "ComputedRadiographyImageStorage", CategorySOPClass},
		{"1.2.840.10008.5.1.4.1.1.20", "Nuclear Medicine Image Storage", "NuclearMedicineImageStorage", CategorySOPClass},

		{"1.2.840.10008.1.1", "Verification SOP Class", "VerificationSOPClass", CategoryMetaSOPClass},
		{"1.2.840.10008.5.1.4.1.2.1.1", "Patient Root Query/Retrieve Information Model - FIND", "PatientRootQueryRetrieveInformationModelFind", CategoryMetaSOPClass},
	}
	m := make(map[string]UIDEntry, len(entries))
	for _, e := range entries {
		m[e.UID] = e
	}
	return m
}

// ByUID looks up a well-known UID's dictionary entry.
func ByUID(uid string) (UIDEntry, bool) {
	e, ok := uidDictionary[uid]
	return e, ok
}
