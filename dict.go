package lzjd

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"slices"

	lzjderrors "github.com/tamirms/lzjd/errors"
)

// MaxEntries is the sketch bound K: a Dict holds at most this many
// distinct hash values (the smallest observed during construction).
const MaxEntries = 1024

// entrySize is the persisted size of one sketch entry in bytes.
const entrySize = 8

// Dict is an LZJD sketch: an ascending-sorted sequence of up to MaxEntries
// distinct 64-bit hash values summarizing one byte stream's LZ phrase
// structure.
//
// A Dict is immutable after construction, so concurrent readers need no
// synchronization.
type Dict struct {
	entries []uint64
}

// FromEntries builds a Dict from an arbitrary sequence of hash values.
// The values are sorted, deduplicated, and truncated to the MaxEntries
// smallest. The input slice is not retained.
func FromEntries(entries []uint64) *Dict {
	sorted := slices.Clone(entries)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) > MaxEntries {
		sorted = sorted[:MaxEntries]
	}
	return &Dict{entries: sorted}
}

// Len returns the number of entries in the sketch.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Entries returns the sketch contents in ascending order. The returned
// slice is the Dict's backing storage and must not be modified.
func (d *Dict) Entries() []uint64 {
	return d.entries
}

// intersectionLen counts common entries via a linear merge over the two
// ascending sequences. When the cursors are equal both branches fire and
// both cursors advance on the same step.
func (d *Dict) intersectionLen(other *Dict) int {
	i, j, n := 0, 0, 0
	for i < len(d.entries) && j < len(other.entries) {
		a, b := d.entries[i], other.entries[j]
		if a <= b {
			i++
		}
		if a >= b {
			j++
		}
		if a == b {
			n++
		}
	}
	return n
}

// Similarity returns the Jaccard similarity |A ∩ B| / |A ∪ B| of the two
// sketches, in [0, 1]. It is symmetric, and 1 for identical non-empty
// sketches.
//
// Two empty sketches are defined to have similarity 0: the ratio is
// mathematically 0/0, and this guard replaces the NaN that a plain
// division would produce.
func (d *Dict) Similarity(other *Dict) float64 {
	intersection := d.intersectionLen(other)
	union := len(d.entries) + len(other.entries) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Distance returns the Lempel-Ziv Jaccard distance, 1 - Similarity.
func (d *Dict) Distance(other *Dict) float64 {
	return 1 - d.Similarity(other)
}

// Base64 encodes the sketch as base64 over the concatenation of its
// entries, each packed as 8 little-endian bytes in ascending order. The
// encoding is bit-exact with other implementations of this scheme.
func (d *Dict) Base64() string {
	buf := make([]byte, len(d.entries)*entrySize)
	for i, e := range d.entries {
		binary.LittleEndian.PutUint64(buf[i*entrySize:], e)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// FromBase64 reverses Base64. It fails with errors.ErrDecode if the
// payload is not valid base64 or its decoded length is not a multiple of
// 8 bytes. The producer is trusted to have written entries in ascending
// order; sortedness is not re-validated.
func FromBase64(s string) (*Dict, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lzjderrors.ErrDecode, err)
	}
	if len(raw)%entrySize != 0 {
		return nil, fmt.Errorf("%w: decoded payload is %d bytes, not a multiple of %d",
			lzjderrors.ErrDecode, len(raw), entrySize)
	}
	entries := make([]uint64, len(raw)/entrySize)
	for i := range entries {
		entries[i] = binary.LittleEndian.Uint64(raw[i*entrySize:])
	}
	return &Dict{entries: entries}, nil
}

// sketch accumulates the MaxEntries smallest distinct hash values seen so
// far, kept in ascending order at all times. It is the shared construction
// state of both builder strategies; the finished Dict takes ownership of
// its storage.
type sketch struct {
	entries []uint64
	k       int
}

func newSketch(k int) sketch {
	return sketch{entries: make([]uint64, 0, k), k: k}
}

// observe offers one hash value to the sketch and reports whether the
// value was new. A new value is inserted at its sorted position if there
// is room, evicts the current maximum if it is smaller, and is otherwise
// discarded — but in every new-value case observe returns true, because a
// new value marks a phrase boundary regardless of whether it made the cut.
func (s *sketch) observe(h uint64) bool {
	at, found := slices.BinarySearch(s.entries, h)
	if found {
		return false
	}
	if len(s.entries) < s.k {
		s.entries = slices.Insert(s.entries, at, h)
	} else if h < s.entries[len(s.entries)-1] {
		// at < len(entries) here since h sorts below the maximum.
		s.entries = slices.Insert(s.entries[:len(s.entries)-1], at, h)
	}
	return true
}

// dict finalizes the sketch. The sketch must not be used afterwards.
func (s *sketch) dict() *Dict {
	return &Dict{entries: s.entries}
}
