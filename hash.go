package microvoxel

import "encoding/binary"

// murmurHash3_32 implements the 32-bit (x86) variant of Murmur3, matching
// the reference implementation's Internals::murmurHash3 (spec.md 4.1
// "hash()", used both for the test-observable mask hash and as the
// small-node tile cache key). No murmur3 package appears anywhere in the
// retrieved example corpus (see DESIGN.md); this reproduces the well-known
// public-domain algorithm (Austin Appleby) so mask hashes are bit-exact
// across implementations, which spec.md 8 requires ("identical mask
// hashes").
func murmurHash3_32(data []byte, seed uint32) uint32 {
	const (
		c1 = 0xcc9e2d51
		c2 = 0x1b873593
	)

	h := seed
	length := len(data)
	nBlocks := length / 4

	for i := 0; i < nBlocks; i++ {
		k := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
		k *= c1
		k = rotl32(k, 15)
		k *= c2

		h ^= k
		h = rotl32(h, 13)
		h = h*5 + 0xe6546b64
	}

	tail := data[nBlocks*4:]
	var k uint32
	switch len(tail) {
	case 3:
		k ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k ^= uint32(tail[0])
		k *= c1
		k = rotl32(k, 15)
		k *= c2
		h ^= k
	}

	h ^= uint32(length)
	h = fmix32(h)
	return h
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
