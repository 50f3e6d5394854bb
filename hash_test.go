package microvoxel

import "testing"

func TestMurmurHash3_32EmptyInputSeedZero(t *testing.T) {
	// With seed 0 and no data, every mixing step operates on zero: the
	// finalizer fmix32(0) is a fixed point at zero, so the result is
	// provably 0 regardless of implementation details elsewhere.
	if got := murmurHash3_32(nil, 0); got != 0 {
		t.Errorf("murmurHash3_32(nil, 0) = %#x, want 0", got)
	}
}

func TestMurmurHash3_32Deterministic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	a := murmurHash3_32(data, 42)
	b := murmurHash3_32(data, 42)
	if a != b {
		t.Errorf("murmurHash3_32 is not deterministic: %#x != %#x", a, b)
	}
}

func TestMurmurHash3_32SeedSensitivity(t *testing.T) {
	data := []byte{10, 20, 30, 40}
	a := murmurHash3_32(data, 1)
	b := murmurHash3_32(data, 2)
	if a == b {
		t.Errorf("different seeds produced the same hash: %#x", a)
	}
}

func TestMurmurHash3_32InputSensitivity(t *testing.T) {
	a := murmurHash3_32([]byte{1, 2, 3, 4}, 42)
	b := murmurHash3_32([]byte{1, 2, 3, 5}, 42)
	if a == b {
		t.Errorf("different inputs produced the same hash: %#x", a)
	}
}

func TestMurmurHash3_32HandlesPartialBlocks(t *testing.T) {
	// Exercise the tail-handling switch for 1, 2, and 3 trailing bytes
	// beyond a full 4-byte block.
	for n := 5; n <= 7; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		// Must not panic, and must be deterministic.
		a := murmurHash3_32(data, 7)
		b := murmurHash3_32(data, 7)
		if a != b {
			t.Errorf("len=%d: murmurHash3_32 not deterministic", n)
		}
	}
}
