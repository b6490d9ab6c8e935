package model

import (
	"crypto/md5"
	"encoding/binary"
	"math"
)

// SynthesizeID fabricates a stable positive 31-bit key from one or more
// identity-defining strings, for source records that carry no primary key
// of their own (groups inferred from tag names, notes, generated families).
//
// Algorithm, fixed for compatibility with previously exported packages:
// concatenate the parts in order with no delimiter, MD5 the bytes, read the
// first 4 digest bytes as a little-endian int32, take the absolute value.
//
// A result of 0 means "no id synthesized" and callers leave the key unset;
// this is not retried with a salt. Collisions (~1 in 2^31 per distinct
// input) are an accepted limitation of the legacy format. The function is
// pure and cannot fail.
func SynthesizeID(parts ...string) int32 {
	h := md5.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	sum := h.Sum(nil)
	v := int32(binary.LittleEndian.Uint32(sum[:4]))
	if v == math.MinInt32 {
		// abs would overflow; treat as the unset sentinel.
		return 0
	}
	if v < 0 {
		return -v
	}
	return v
}
