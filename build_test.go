package lzjd_test

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"testing"

	"github.com/tamirms/lzjd"
	"github.com/tamirms/lzjd/hashers"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewSource(int64((testSeed1 ^ s1) ^ (testSeed2 ^ s2))))
}

// allHashers covers every adapter so the builders are exercised against
// each hash the package ships.
var allHashers = map[string]lzjd.BuildHasher{
	"crc32":     hashers.NewCRC32,
	"murmur3":   hashers.NewMurmur3,
	"xxhash64":  hashers.NewXXHash64,
	"xxh3":      hashers.NewXXH3,
	"buzhash64": hashers.NewBuzhash64,
}

func assertDictInvariants(t *testing.T, d *lzjd.Dict) {
	t.Helper()
	if d.Len() > lzjd.MaxEntries {
		t.Fatalf("dict length %d exceeds bound %d", d.Len(), lzjd.MaxEntries)
	}
	entries := d.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1] >= entries[i] {
			t.Fatalf("entries not strictly ascending at %d: %d then %d", i, entries[i-1], entries[i])
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	rng := newTestRNG(t)
	for name, nh := range allHashers {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{1, 64, 4096, 256 << 10} {
				data := make([]byte, n)
				for i := range data {
					// Low-entropy data so phrases actually repeat.
					data[i] = byte(rng.Intn(8))
				}
				d, err := lzjd.Build(bytes.NewReader(data), nh)
				if err != nil {
					t.Fatalf("Build(n=%d): %v", n, err)
				}
				assertDictInvariants(t, d)
				if d.Len() == 0 {
					t.Fatalf("Build(n=%d): empty sketch for non-empty stream", n)
				}
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	rng := newTestRNG(t)
	data := make([]byte, 8192)
	for i := range data {
		data[i] = byte(rng.Intn(16))
	}
	for name, nh := range allHashers {
		t.Run(name, func(t *testing.T) {
			d1, err := lzjd.Build(bytes.NewReader(data), nh)
			if err != nil {
				t.Fatal(err)
			}
			d2, err := lzjd.Build(bytes.NewReader(data), nh)
			if err != nil {
				t.Fatal(err)
			}
			if got := d1.Distance(d2); got != 0 {
				t.Fatalf("distance between identical builds: got %v, want 0", got)
			}
		})
	}
}

func TestBuildEmptyStream(t *testing.T) {
	d, err := lzjd.Build(bytes.NewReader(nil), hashers.NewMurmur3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("empty stream sketch length: got %d, want 0", d.Len())
	}
}

func TestBuildShortStream(t *testing.T) {
	// A stream shorter than the bound yields at most one hash per byte,
	// so the sketch cannot be larger than the stream.
	data := []byte("short")
	d, err := lzjd.Build(bytes.NewReader(data), hashers.NewCRC32)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Len() == 0 || d.Len() > len(data) {
		t.Fatalf("sketch length: got %d, want in [1, %d]", d.Len(), len(data))
	}
}

func TestBuildLZ78KnownDistances(t *testing.T) {
	build := func(s string) *lzjd.Dict {
		t.Helper()
		d, err := lzjd.BuildLZ78(bytes.NewReader([]byte(s)), hashers.NewCRC32)
		if err != nil {
			t.Fatalf("BuildLZ78(%q): %v", s, err)
		}
		return d
	}
	a := build("THIS IS A TEST SEQUENCE")
	b := build("THIS IS A TEST SEQUENCE")
	c := build("totally_different")
	d := build("THIS IS A DIFFERENT TEST SEQUENCE")

	if got := a.Distance(b); got != 0 {
		t.Errorf("distance of equal sequences: got %v, want 0", got)
	}
	if got := a.Distance(c); got != 1 {
		t.Errorf("distance of disjoint sequences: got %v, want 1", got)
	}
	const want = 0.40909090909090906
	if got := a.Distance(d); math.Abs(got-want) > 1e-15 {
		t.Errorf("distance of related sequences: got %v, want %v", got, want)
	}
	if a.Distance(d) != d.Distance(a) {
		t.Errorf("distance not symmetric: %v vs %v", a.Distance(d), d.Distance(a))
	}
}

func TestBuildLZ78Invariants(t *testing.T) {
	rng := newTestRNG(t)
	for name, nh := range allHashers {
		t.Run(name, func(t *testing.T) {
			data := make([]byte, 4096)
			for i := range data {
				data[i] = byte(rng.Intn(8))
			}
			d, err := lzjd.BuildLZ78(bytes.NewReader(data), nh)
			if err != nil {
				t.Fatalf("BuildLZ78: %v", err)
			}
			assertDictInvariants(t, d)
			if d.Len() == 0 {
				t.Fatal("empty sketch for non-empty stream")
			}
		})
	}
}

func TestBuildLZ78EmptyStream(t *testing.T) {
	d, err := lzjd.BuildLZ78(bytes.NewReader(nil), hashers.NewCRC32)
	if err != nil {
		t.Fatalf("BuildLZ78: %v", err)
	}
	if d.Len() != 0 {
		t.Fatalf("empty stream sketch length: got %d, want 0", d.Len())
	}
}

func TestStrategiesInterchangeable(t *testing.T) {
	// Both strategies produce the same sketch type with a valid mutual
	// distance; the approximation tracks the exact parse closely on
	// repetitive data.
	rng := newTestRNG(t)
	data := make([]byte, 16<<10)
	for i := range data {
		data[i] = byte(rng.Intn(4))
	}
	approx, err := lzjd.Build(bytes.NewReader(data), hashers.NewCRC32)
	if err != nil {
		t.Fatal(err)
	}
	exact, err := lzjd.BuildLZ78(bytes.NewReader(data), hashers.NewCRC32)
	if err != nil {
		t.Fatal(err)
	}
	got := approx.Distance(exact)
	if got < 0 || got > 1 {
		t.Fatalf("cross-strategy distance out of bounds: %v", got)
	}
}
