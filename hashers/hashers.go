// Package hashers provides RollingHasher implementations for the lzjd
// sketch builders.
//
// Every constructor in this package satisfies lzjd.BuildHasher and can be
// passed to lzjd.Build and lzjd.BuildLZ78 directly:
//
//	dict, err := lzjd.Build(r, hashers.NewMurmur3)
//
// NewMurmur3 is the conventional choice for digests meant to interoperate
// with other LZJD implementations; NewCRC32 matches the hash used by the
// reference test vectors. The remaining adapters trade interoperability
// for speed or different dispersion characteristics. Sketches built with
// different hashers are never comparable with each other.
package hashers

import (
	"hash"
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
	"github.com/chmduquesne/rollinghash"
	"github.com/chmduquesne/rollinghash/buzhash64"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/tamirms/lzjd"
)

// crc32Hasher accumulates a CRC-32 (IEEE polynomial) checksum, widened to
// 64 bits.
type crc32Hasher struct {
	crc uint32
	buf [1]byte
}

// NewCRC32 returns a fresh CRC-32 rolling hasher. CRC-32 is the hash the
// reference LZJD test vectors were produced with.
func NewCRC32() lzjd.RollingHasher {
	return &crc32Hasher{}
}

func (h *crc32Hasher) WriteByte(b byte) {
	h.buf[0] = b
	h.crc = crc32.Update(h.crc, crc32.IEEETable, h.buf[:])
}

func (h *crc32Hasher) Sum64() uint64 {
	return uint64(h.crc)
}

// hash32Hasher adapts a hash.Hash32 whose Sum32 is non-destructive.
type hash32Hasher struct {
	h   hash.Hash32
	buf [1]byte
}

func (h *hash32Hasher) WriteByte(b byte) {
	h.buf[0] = b
	h.h.Write(h.buf[:])
}

func (h *hash32Hasher) Sum64() uint64 {
	return uint64(h.h.Sum32())
}

// NewMurmur3 returns a fresh MurmurHash3 (x86, 32-bit, zero seed) rolling
// hasher, widened to 64 bits. This is the hash conventionally used when
// digesting files for cross-implementation comparison.
func NewMurmur3() lzjd.RollingHasher {
	return &hash32Hasher{h: murmur3.New32()}
}

// xxhashHasher accumulates an xxHash64 digest.
type xxhashHasher struct {
	d   *xxhash.Digest
	buf [1]byte
}

// NewXXHash64 returns a fresh xxHash64 rolling hasher.
func NewXXHash64() lzjd.RollingHasher {
	return &xxhashHasher{d: xxhash.New()}
}

func (h *xxhashHasher) WriteByte(b byte) {
	h.buf[0] = b
	h.d.Write(h.buf[:])
}

func (h *xxhashHasher) Sum64() uint64 {
	return h.d.Sum64()
}

// xxh3Hasher accumulates an XXH3-64 digest.
type xxh3Hasher struct {
	h   *xxh3.Hasher
	buf [1]byte
}

// NewXXH3 returns a fresh XXH3 (64-bit) rolling hasher.
func NewXXH3() lzjd.RollingHasher {
	return &xxh3Hasher{h: xxh3.New()}
}

func (h *xxh3Hasher) WriteByte(b byte) {
	h.buf[0] = b
	h.h.Write(h.buf[:])
}

func (h *xxh3Hasher) Sum64() uint64 {
	return h.h.Sum64()
}

// buzhashHasher accumulates a 64-bit buzhash (rotate-and-XOR over a fixed
// byte table). The underlying digest folds every written byte into its
// running sum, which is exactly the accumulate-then-read behavior the
// builders need; the Roll capability is unused here.
type buzhashHasher struct {
	d   rollinghash.Hash64
	buf [1]byte
}

// NewBuzhash64 returns a fresh 64-bit buzhash rolling hasher. Buzhash is
// the cheapest of the adapters per byte but has the weakest dispersion on
// long phrases.
func NewBuzhash64() lzjd.RollingHasher {
	return &buzhashHasher{d: buzhash64.New()}
}

func (h *buzhashHasher) WriteByte(b byte) {
	h.buf[0] = b
	h.d.Write(h.buf[:])
}

func (h *buzhashHasher) Sum64() uint64 {
	return h.d.Sum64()
}
