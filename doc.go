// Package lzjd implements the Lempel-Ziv Jaccard Distance (LZJD), a
// fuzzy-matching similarity measure over byte streams.
//
// Each input is reduced to a Dict: a bounded, sorted set of at most 1024
// distinct 64-bit hash values approximating the input's LZ78 phrase
// structure. Two Dicts are compared by Jaccard similarity over their
// entries. Because only the sketch survives, similarity between large
// inputs is cheap regardless of their size, which makes LZJD suitable for
// malware triage, near-duplicate detection, and clustering of binaries.
//
// # Basic Usage
//
// Building and comparing two sketches:
//
//	a, err := lzjd.Build(fileA, hashers.NewMurmur3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b, err := lzjd.Build(fileB, hashers.NewMurmur3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("distance: %f\n", a.Distance(b))
//
// Batch comparison of many inputs:
//
//	records, err := lzjd.HashSources(ctx, sources, hashers.NewMurmur3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := lzjd.CompareAll(ctx, records, records, 50)
//
// # Construction Strategies
//
// Build performs a single-pass streaming approximation of LZ78 phrase
// boundaries and is the strategy to use in practice. BuildLZ78 performs an
// exact LZ78 parse with an explicit phrase table; it is slower but matches
// canonical LZ78 factorization and exists for correctness-sensitive use and
// for cross-checking the streaming strategy. Both produce the same Dict
// type and are interchangeable downstream.
//
// # Package Structure
//
//   - Public API: dict.go (Dict, Similarity, Base64), build.go (Build),
//     lz78.go (BuildLZ78), batch.go (HashSources, CompareAll)
//   - Digest persistence: digest.go (DigestRecord, ReadRecords, WriteRecords)
//   - Configuration: options.go (Option, WithWorkers)
//   - Hash adapters: hashers/ (CRC32, Murmur3, xxHash64, XXH3, Buzhash64)
//   - Errors: errors/ (exported sentinels)
package lzjd
