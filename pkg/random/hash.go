package random

import "unicode/utf16"

// GetSeed hashes a block position into a 64-bit seed.
func GetSeed(x, y, z int32) int64 {
	l := int64(x*3129871) ^ int64(z)*116129781 ^ int64(y)
	l = l*l*42317861 + l*11
	return l >> 16
}

// JavaStringHash returns the 31-based hash of s over its UTF-16 code units.
func JavaStringHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}

// JavaArrayHash returns the 31-based hash of b with each byte taken as signed.
func JavaArrayHash(b []byte) int32 {
	h := int32(1)
	for _, c := range b {
		h = 31*h + int32(int8(c))
	}
	return h
}
