package lzjd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	lzjderrors "github.com/tamirms/lzjd/errors"
)

// linePrefix is the literal opening of a persisted digest line.
const linePrefix = "lzjd:"

// DigestRecord pairs a sketch with the opaque name of the input it was
// built from, typically a file path. The name is carried through
// comparison and output and has no effect on similarity.
type DigestRecord struct {
	Name string
	Dict *Dict
}

// String renders the record in the interoperable persisted line format,
// lzjd:<name>:<base64>, without a trailing newline.
func (r DigestRecord) String() string {
	return linePrefix + r.Name + ":" + r.Dict.Base64()
}

// ParseRecord parses one persisted digest line. The base64 payload is
// everything after the last colon; the name is everything between the
// literal lzjd: prefix and that colon. Lines violating this shape fail
// with errors.ErrParse; payload violations fail with errors.ErrDecode.
func ParseRecord(line string) (DigestRecord, error) {
	if !strings.HasPrefix(line, linePrefix) {
		return DigestRecord{}, fmt.Errorf("%w: missing %q prefix", lzjderrors.ErrParse, linePrefix)
	}
	colon := strings.LastIndexByte(line, ':')
	if colon <= len(linePrefix) {
		return DigestRecord{}, fmt.Errorf("%w: missing name or payload separator", lzjderrors.ErrParse)
	}
	dict, err := FromBase64(line[colon+1:])
	if err != nil {
		return DigestRecord{}, err
	}
	return DigestRecord{Name: line[len(linePrefix):colon], Dict: dict}, nil
}

// ReadRecords reads persisted digest lines from r until EOF. Blank lines
// are skipped; the first malformed line aborts the read with its error —
// there is no best-effort recovery of the remainder.
func ReadRecords(r io.Reader) ([]DigestRecord, error) {
	var records []DigestRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read digests: %w", err)
	}
	return records, nil
}

// WriteRecords writes one persisted digest line per record to w.
func WriteRecords(w io.Writer, records []DigestRecord) error {
	for _, rec := range records {
		if _, err := io.WriteString(w, rec.String()+"\n"); err != nil {
			return fmt.Errorf("write digest: %w", err)
		}
	}
	return nil
}
