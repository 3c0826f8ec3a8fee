package dicomio

import "math"

func float32FromBits(v uint32) float32 { return math.Float32frombits(v) }
func float64FromBits(v uint64) float64 { return math.Float64frombits(v) }
func float32Bits(v float32) uint32     { return math.Float32bits(v) }
func float64Bits(v float64) uint64     { return math.Float64bits(v) }
