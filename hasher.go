package lzjd

// RollingHasher is the byte-hashing capability consumed by the sketch
// builders. It accumulates bytes one at a time and exposes the hash of
// everything written since the instance was created.
//
// Implementations must be deterministic: the same byte sequence written to
// a fresh instance always yields the same Sum64 value. Sum64 must be
// non-destructive — the builders read the running hash after every byte
// while continuing to accumulate.
//
// A RollingHasher is not safe for concurrent use. The builders create one
// instance per phrase and never share it across goroutines.
type RollingHasher interface {
	// WriteByte feeds one byte into the running hash.
	WriteByte(b byte)

	// Sum64 returns the hash of all bytes written so far without
	// resetting the accumulator.
	Sum64() uint64
}

// BuildHasher produces fresh RollingHasher instances. The sketch builders
// call it once per phrase: whenever a phrase boundary is reached, the live
// hasher is discarded and replaced with a virgin instance.
//
// The factories in the hashers subpackage (hashers.NewMurmur3,
// hashers.NewCRC32, ...) satisfy this type directly.
type BuildHasher func() RollingHasher
