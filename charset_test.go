package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodingSystemZeroValueIsOpaque(t *testing.T) {
	var cs CodingSystem
	assert.Equal(t, "Y\\xC3\\xA9", cs.decode("Y\\xC3\\xA9"))
}

func TestBuildCodingSystemSingleDecoder(t *testing.T) {
	cs := buildCodingSystem([]string{"ISO_IR 100"})
	assert.Nil(t, cs.Alphabetic)
	assert.Nil(t, cs.Ideographic)
}

func TestBuildCodingSystemThreeComponent(t *testing.T) {
	cs := buildCodingSystem([]string{"", "ISO 2022 IR 87", "ISO 2022 IR 87"})
	assert.Nil(t, cs.Alphabetic)
	assert.NotNil(t, cs.Ideographic)
	assert.NotNil(t, cs.Phonetic)
}

func TestDecoderForUnknownCharacterSetLogsAndFallsBack(t *testing.T) {
	d := decoderForCharacterSet("NOT_A_REAL_CHARSET")
	assert.Nil(t, d)
}
