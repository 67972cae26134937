package lzjd

import (
	"bufio"
	"fmt"
	"io"
)

// Build constructs a Dict from r using the streaming-approximate strategy:
// a single forward pass that simulates LZ78 phrase boundaries without an
// explicit phrase dictionary.
//
// One live hasher accumulates bytes. After each byte, the running hash is
// offered to the sketch. A hash already present behaves like extending the
// current match and the hasher keeps accumulating; a genuinely new hash
// behaves like a phrase boundary and the hasher is replaced with a fresh
// instance — whether the value was inserted, evicted the maximum, or was
// discarded for being too large.
//
// Cost is O(n) hash updates with an O(log K) binary search per byte, K
// being the MaxEntries constant. An empty stream yields an empty Dict.
func Build(r io.Reader, newHasher BuildHasher) (*Dict, error) {
	br := bufio.NewReader(r)
	sk := newSketch(MaxEntries)
	h := newHasher()
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		h.WriteByte(b)
		if sk.observe(h.Sum64()) {
			// Phrase boundary, real or simulated.
			h = newHasher()
		}
	}
	return sk.dict(), nil
}
