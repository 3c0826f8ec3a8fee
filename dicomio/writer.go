package dicomio

import (
	"bytes"
	"encoding/binary"
)

// Writer is the Cursor's inverse: an endianness- and VR-mode-aware byte
// sink. Both halves share the same ByteOrder/Mode vocabulary so the codec
// can express one generic element reader/writer pair parameterized by
// (byteOrder, mode) instead of duplicating logic per transfer syntax.
type Writer struct {
	buf  bytes.Buffer
	bo   binary.ByteOrder
	mode VRMode
}

func NewWriter(bo binary.ByteOrder, mode VRMode) *Writer {
	return &Writer{bo: bo, mode: mode}
}

func (w *Writer) ByteOrder() binary.ByteOrder { return w.bo }
func (w *Writer) Mode() VRMode                { return w.mode }

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) WriteBytes(b []byte) { w.buf.Write(b) }

func (w *Writer) WriteZeros(n int) { w.buf.Write(make([]byte, n)) }

func (w *Writer) WriteString(s string) { w.buf.WriteString(s) }

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	w.bo.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	w.bo.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(float32Bits(v)) }

func (w *Writer) WriteFloat64(v float64) {
	var b [8]byte
	w.bo.PutUint64(b[:], float64Bits(v))
	w.buf.Write(b[:])
}

// NewSubWriter creates a writer that shares this writer's byte order and VR
// mode, for encoding a nested data set (sequence item) before splicing its
// bytes into the parent -- the nested length must be known before the
// outer header can be written.
func (w *Writer) NewSubWriter() *Writer {
	return NewWriter(w.bo, w.mode)
}
