package lzjd

import (
	"bufio"
	"fmt"
	"io"
)

// phrase is one LZ78 factor: a reference to the phrase it extends plus
// one trailing byte. Index 0 of the table is the synthetic root.
type phrase struct {
	parent int
	b      byte
}

// BuildLZ78 constructs a Dict from r using an exact LZ78 parse.
//
// The parse maintains an explicit phrase table. For each byte, the table
// is scanned for a phrase extending the current match by that byte: a hit
// extends the match, a miss appends a new phrase and resets the match to
// the root. A match still open when the stream ends is dropped, matching
// canonical LZ78 factorization. Each phrase's hash is then computed by
// feeding its bytes, root to leaf, into one fresh hasher, and the sketch
// keeps the MaxEntries smallest under the same policy as Build.
//
// The table scan makes this strategy quadratic in the phrase count. It is
// exact with respect to LZ78, where Build only approximates it, and exists
// for correctness-sensitive use and for cross-checking Build. Both yield
// the same Dict type with identical downstream behavior.
func BuildLZ78(r io.Reader, newHasher BuildHasher) (*Dict, error) {
	br := bufio.NewReader(r)
	table := []phrase{{parent: -1}}
	last := 0
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		extended := false
		for i := 1; i < len(table); i++ {
			if table[i].parent == last && table[i].b == b {
				last = i
				extended = true
				break
			}
		}
		if !extended {
			table = append(table, phrase{parent: last, b: b})
			last = 0
		}
	}

	sk := newSketch(MaxEntries)
	var path []byte
	for i := 1; i < len(table); i++ {
		// Collect the byte path leaf to root, then feed it in reverse.
		// An iterative walk avoids recursion depth concerns on long
		// phrase chains.
		path = path[:0]
		for j := i; j != 0; j = table[j].parent {
			path = append(path, table[j].b)
		}
		h := newHasher()
		for k := len(path) - 1; k >= 0; k-- {
			h.WriteByte(path[k])
		}
		sk.observe(h.Sum64())
	}
	return sk.dict(), nil
}
