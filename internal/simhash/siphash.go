package simhash

// sipHash24 is a from-scratch SipHash-2-4 with a fixed key, used only so
// that fingerprints stay bit-identical across processes and across Go
// versions. No library in the pack offers a fixed-key, wire-stable
// SipHash; x/crypto/blake2b and the various hash/* packages exist but
// none expose SipHash with a caller-fixed key, so this is hand-rolled
// rather than borrowed. See DESIGN.md.
const (
	sipKey0 uint64 = 0x0706050403020100
	sipKey1 uint64 = 0x0f0e0d0c0b0a0908
)

func rotl(x uint64, b uint) uint64 {
	return (x << b) | (x >> (64 - b))
}

func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = rotl(v1, 13)
	v1 ^= v0
	v0 = rotl(v0, 32)
	v2 += v3
	v3 = rotl(v3, 16)
	v3 ^= v2
	v0 += v3
	v3 = rotl(v3, 21)
	v3 ^= v0
	v2 += v1
	v1 = rotl(v1, 17)
	v1 ^= v2
	v2 = rotl(v2, 32)
	return v0, v1, v2, v3
}

// sipHash24 computes SipHash-2-4 over data with the package's fixed key.
func sipHash24(data []byte) uint64 {
	v0 := sipKey0 ^ 0x736f6d6570736575
	v1 := sipKey1 ^ 0x646f72616e646f6d
	v2 := sipKey0 ^ 0x6c7967656e657261
	v3 := sipKey1 ^ 0x7465646279746573

	length := len(data)
	end := length - (length % 8)

	for i := 0; i < end; i += 8 {
		m := le64(data[i : i+8])
		v3 ^= m
		v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
		v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
		v0 ^= m
	}

	var last [8]byte
	copy(last[:], data[end:])
	last[7] = byte(length)
	m := le64(last[:])
	v3 ^= m
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0 ^= m

	v2 ^= 0xff
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)

	return v0 ^ v1 ^ v2 ^ v3
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v
}

// HashToken returns the fixed-key SipHash-2-4 digest of a token.
func HashToken(token string) uint64 {
	return sipHash24([]byte(token))
}
