package output

import (
	"bytes"
	"testing"
)

func TestFastaWriter(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFastaWriter(&buf)

	records := []struct{ header, seq string }{
		{"ABC:c.1c>t/4_FOO_1:2", "atgt"},
		{"1:4/2:3", "gtaag"},
	}
	for _, r := range records {
		if err := fw.WriteRecord(r.header, r.seq); err != nil {
			t.Fatalf("WriteRecord: %v", err)
		}
	}
	if err := fw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := ">ABC:c.1c>t/4_FOO_1:2\natgt\n>1:4/2:3\ngtaag\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
