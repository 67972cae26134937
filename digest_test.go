package lzjd

import (
	"errors"
	"slices"
	"strings"
	"testing"

	lzjderrors "github.com/tamirms/lzjd/errors"
)

func TestDigestRecordString(t *testing.T) {
	rec := DigestRecord{Name: "samples/a.bin", Dict: FromEntries([]uint64{1})}
	if got, want := rec.String(), "lzjd:samples/a.bin:AQAAAAAAAAA="; got != want {
		t.Fatalf("record line: got %q, want %q", got, want)
	}
}

func TestParseRecord(t *testing.T) {
	d := FromEntries([]uint64{3, 1, 2})
	line := DigestRecord{Name: "x", Dict: d}.String()
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec.Name != "x" {
		t.Fatalf("name: got %q, want %q", rec.Name, "x")
	}
	if rec.Dict.Distance(d) != 0 || rec.Dict.Len() != d.Len() {
		t.Fatalf("dict: got %v, want %v", rec.Dict.Entries(), d.Entries())
	}
}

func TestParseRecordNameWithColons(t *testing.T) {
	// The payload starts after the *last* colon; names may contain colons.
	d := FromEntries([]uint64{7})
	line := DigestRecord{Name: "C:\\data:v2", Dict: d}.String()
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if got, want := rec.Name, "C:\\data:v2"; got != want {
		t.Fatalf("name: got %q, want %q", got, want)
	}
}

func TestParseRecordErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"missing prefix", "sdbf:x:AQAAAAAAAAA=", lzjderrors.ErrParse},
		{"no payload separator", "lzjd:nameonly", lzjderrors.ErrParse},
		{"empty name", "lzjd::AQAAAAAAAAA=", lzjderrors.ErrParse},
		{"bad payload", "lzjd:x:!!!", lzjderrors.ErrDecode},
		{"short payload", "lzjd:x:AAAAAAAA", lzjderrors.ErrDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseRecord(tc.line); !errors.Is(err, tc.want) {
				t.Errorf("ParseRecord(%q): got %v, want %v", tc.line, err, tc.want)
			}
		})
	}
}

func TestReadRecordsSkipsBlankLines(t *testing.T) {
	input := "\n" +
		DigestRecord{Name: "a", Dict: FromEntries([]uint64{1})}.String() + "\n" +
		"   \n" +
		DigestRecord{Name: "b", Dict: FromEntries([]uint64{2})}.String() + "\n\n"
	records, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 2 || records[0].Name != "a" || records[1].Name != "b" {
		t.Fatalf("records: got %+v", records)
	}
}

func TestReadRecordsAbortsOnMalformedLine(t *testing.T) {
	input := DigestRecord{Name: "a", Dict: FromEntries([]uint64{1})}.String() + "\n" +
		"garbage line\n" +
		DigestRecord{Name: "b", Dict: FromEntries([]uint64{2})}.String() + "\n"
	if _, err := ReadRecords(strings.NewReader(input)); !errors.Is(err, lzjderrors.ErrParse) {
		t.Fatalf("ReadRecords over malformed input: got %v, want ErrParse", err)
	}
}

func TestWriteReadRecordsRoundTrip(t *testing.T) {
	want := []DigestRecord{
		{Name: "one", Dict: FromEntries([]uint64{10, 20, 30})},
		{Name: "two", Dict: FromEntries(nil)},
		{Name: "three", Dict: FromEntries([]uint64{5})},
	}
	var sb strings.Builder
	if err := WriteRecords(&sb, want); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	got, err := ReadRecords(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("record count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i].Name {
			t.Errorf("records[%d].Name: got %q, want %q", i, got[i].Name, want[i].Name)
		}
		if !slices.Equal(got[i].Dict.Entries(), want[i].Dict.Entries()) {
			t.Errorf("records[%d].Dict: got %v, want %v", i, got[i].Dict.Entries(), want[i].Dict.Entries())
		}
	}
}
