package dicomio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRoundTripsThroughCursor(t *testing.T) {
	w := NewWriter(binary.LittleEndian, ExplicitVR)
	w.WriteUint16(0x1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteString("AB")
	w.WriteZeros(2)

	c := NewCursor(w.Bytes(), binary.LittleEndian, ExplicitVR)
	u16, err := c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	s, err := c.ReadString(2)
	require.NoError(t, err)
	assert.Equal(t, "AB", s)

	zeros, err := c.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, zeros)
}

func TestSubWriterSharesByteOrderAndMode(t *testing.T) {
	w := NewWriter(binary.BigEndian, ImplicitVR)
	sub := w.NewSubWriter()
	assert.Equal(t, w.ByteOrder(), sub.ByteOrder())
	assert.Equal(t, w.Mode(), sub.Mode())
}
