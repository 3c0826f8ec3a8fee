// Package dicomio provides the low-level, endianness-aware byte cursor used
// by the parser and serializer. It has no notion of tags, VRs or sequences;
// it is the primitive substrate both higher layers are built on.
package dicomio

import (
	"encoding/binary"
	"fmt"
)

// VRMode records whether the surrounding stream is explicit-VR or
// implicit-VR encoded. It travels alongside the byte order on every cursor,
// since an element's header shape depends on both.
type VRMode int

const (
	ImplicitVR VRMode = iota
	ExplicitVR
)

func (m VRMode) String() string {
	if m == ImplicitVR {
		return "ImplicitVR"
	}
	return "ExplicitVR"
}

// TruncatedInputError is returned by Cursor reads that run out of bytes.
type TruncatedInputError struct {
	Need, Have int
	AtOffset   int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("dicomio: truncated input at offset %d: need %d bytes, have %d", e.AtOffset, e.Need, e.Have)
}

// Cursor is a positional reader over an immutable byte slice. It never
// copies the backing slice; ReadBytes returns a sub-slice, so callers that
// need an owned copy must clone it themselves (the parser does, to honor the
// "owned value bytes" design note).
type Cursor struct {
	data     []byte
	pos      int
	bo       binary.ByteOrder
	mode     VRMode
	modeStack []VRMode
}

// NewCursor wraps data for reading under the given byte order and VR mode.
func NewCursor(data []byte, bo binary.ByteOrder, mode VRMode) *Cursor {
	return &Cursor{data: data, bo: bo, mode: mode}
}

// ByteOrder reports the cursor's current endianness.
func (c *Cursor) ByteOrder() binary.ByteOrder { return c.bo }

// Mode reports the cursor's current VR mode.
func (c *Cursor) Mode() VRMode { return c.mode }

// PushMode temporarily overrides the VR mode; PopMode restores it. The
// parser does not call them: it reads the (FFFE,*) framing headers, which
// are always implicit VR, directly as tag + 32-bit length.
func (c *Cursor) PushMode(mode VRMode) {
	c.modeStack = append(c.modeStack, c.mode)
	c.mode = mode
}

func (c *Cursor) PopMode() {
	n := len(c.modeStack)
	c.mode = c.modeStack[n-1]
	c.modeStack = c.modeStack[:n-1]
}

// Position returns the number of bytes consumed so far.
func (c *Cursor) Position() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the read position to an absolute offset within the buffer.
func (c *Cursor) Seek(abs int) {
	c.pos = abs
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, &TruncatedInputError{Need: n, Have: c.Remaining(), AtOffset: c.pos}
	}
	return c.data[c.pos : c.pos+n], nil
}

// ReadBytes consumes and returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Bounded returns a child cursor scoped to the next n bytes and advances the
// parent past them. The child shares byte order and VR mode with the parent.
func (c *Cursor) Bounded(n int) (*Cursor, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{data: b, bo: c.bo, mode: c.mode}, nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return c.bo.Uint16(b), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return c.bo.Uint32(b), nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return float32FromBits(v), nil
}

func (c *Cursor) ReadFloat64() (float64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return float64FromBits(c.bo.Uint64(b)), nil
}

func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
