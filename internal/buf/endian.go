// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// I32LE reads a little-endian int32 from b. Returns 0 when b is too short.
func I32LE(b []byte) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// PutU32LE writes v to b in little-endian order. Short buffers are left untouched.
func PutU32LE(b []byte, v uint32) {
	if len(b) < 4 {
		return
	}
	binary.LittleEndian.PutUint32(b, v)
}

// PutI32LE writes v to b in little-endian order. Short buffers are left untouched.
func PutI32LE(b []byte, v int32) {
	PutU32LE(b, uint32(v))
}
