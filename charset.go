package dicom

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
)

// CodingSystem maps a DICOM SpecificCharacterSet value to the
// golang.org/x/text decoders it selects. PN values may carry up to three
// components -- Alphabetic, Ideographic, Phonetic -- each independently
// encoded per PS3.5 6.2; CodingSystem keeps one decoder per component.
//
// The zero value decodes as plain ASCII/UTF-8: text is left opaque unless
// a DataSet actually carries SpecificCharacterSet (0008,0005), in which
// case the parser installs a populated CodingSystem on it so later
// String()/Strings() calls decode through it automatically.
type CodingSystem struct {
	Alphabetic  *encoding.Decoder
	Ideographic *encoding.Decoder
	Phonetic    *encoding.Decoder
}

// decode runs s through the Ideographic decoder (the one used for
// everything except the alphabetic component of PN), returning s unchanged
// if no decoder is installed.
func (cs CodingSystem) decode(s string) string {
	if cs.Ideographic == nil {
		return s
	}
	out, err := cs.Ideographic.String(s)
	if err != nil {
		return s
	}
	return out
}

// decoderForCharacterSet maps a DICOM registry name (ISO_IR and ISO 2022 IR
// variants, PS3.3 C.12.1.1.2) to its golang.org/x/text decoder. "" marks
// the default 7-bit ASCII encoding.
func decoderForCharacterSet(name string) *encoding.Decoder {
	switch name {
	case "", "ISO 2022 IR 6", "ISO_IR 100", "ISO 2022 IR 100":
		return nil
	case "ISO_IR 101", "ISO 2022 IR 101":
		return charmap.ISO8859_2.NewDecoder()
	case "ISO_IR 109", "ISO 2022 IR 109":
		return charmap.ISO8859_3.NewDecoder()
	case "ISO_IR 110", "ISO 2022 IR 110":
		return charmap.ISO8859_4.NewDecoder()
	case "ISO_IR 13", "ISO 2022 IR 13":
		return japanese.ShiftJIS.NewDecoder()
	case "ISO 2022 IR 87", "ISO 2022 IR 159":
		return japanese.ISO2022JP.NewDecoder()
	default:
		if d, err := htmlindex.Get(name); err == nil {
			return d.NewDecoder()
		}
		log.Debug().Str("charset", name).Msg("unknown specific character set, assuming utf-8")
		return nil
	}
}

// buildCodingSystem turns the (possibly multi-valued, per PN's three
// components) SpecificCharacterSet strings into a CodingSystem.
func buildCodingSystem(names []string) CodingSystem {
	decoders := make([]*encoding.Decoder, 0, len(names))
	for _, name := range names {
		decoders = append(decoders, decoderForCharacterSet(name))
	}
	switch len(decoders) {
	case 0:
		return CodingSystem{}
	case 1:
		return CodingSystem{decoders[0], decoders[0], decoders[0]}
	case 2:
		return CodingSystem{decoders[0], decoders[1], decoders[1]}
	default:
		return CodingSystem{decoders[0], decoders[1], decoders[2]}
	}
}
