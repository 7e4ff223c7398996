package fasta

import (
	"strings"
	"testing"
)

func Test_parseSingleRecord(t *testing.T) {
	genomes, err := Parse(strings.NewReader(">chr1\nACGT\nACGT\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(genomes) != 1 {
		t.Fatalf("got %d genomes, want 1", len(genomes))
	}
	if genomes[0].Name() != "chr1" || genomes[0].Sequence() != "ACGTACGT" {
		t.Fatalf("got %+v, want name chr1 seq ACGTACGT", genomes[0])
	}
}

func Test_parseLowercaseNormalised(t *testing.T) {
	genomes, err := Parse(strings.NewReader(">chr1\nacgtN\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if genomes[0].Sequence() != "ACGTN" {
		t.Fatalf("Sequence() = %q, want ACGTN", genomes[0].Sequence())
	}
}

func Test_parseMultipleRecords(t *testing.T) {
	genomes, err := Parse(strings.NewReader(">a\nACGT\n>b\nTTTT\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(genomes) != 2 || genomes[0].Name() != "a" || genomes[1].Name() != "b" {
		t.Fatalf("got %+v, want a then b", genomes)
	}
}

func Test_blankLineBetweenRecordsAllowed(t *testing.T) {
	genomes, err := Parse(strings.NewReader(">a\nACGT\n\n>b\nTTTT\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(genomes) != 2 {
		t.Fatalf("got %d genomes, want 2", len(genomes))
	}
}

func Test_rejectsFirstByteNotName(t *testing.T) {
	if _, err := Parse(strings.NewReader("ACGT\n")); err == nil {
		t.Fatal("expected error when the file doesn't start with '>'")
	}
}

func Test_rejectsEmptyName(t *testing.T) {
	if _, err := Parse(strings.NewReader(">\nACGT\n")); err == nil {
		t.Fatal("expected error for an empty name")
	}
}

func Test_rejectsNameWithNoBaseLine(t *testing.T) {
	if _, err := Parse(strings.NewReader(">a\n>b\nACGT\n")); err == nil {
		t.Fatal("expected error when a name line is immediately followed by another name line")
	}
}

func Test_rejectsNameFollowedByBlankLine(t *testing.T) {
	if _, err := Parse(strings.NewReader(">a\n\nACGT\n")); err == nil {
		t.Fatal("expected error when a name line is immediately followed by a blank line")
	}
}

func Test_rejectsBlankLineBetweenBaseLines(t *testing.T) {
	if _, err := Parse(strings.NewReader(">a\nACGT\n\nACGT\n")); err == nil {
		t.Fatal("expected error for a blank line between base lines of the same record")
	}
}

func Test_rejectsInvalidAlphabet(t *testing.T) {
	if _, err := Parse(strings.NewReader(">a\nACGTX\n")); err == nil {
		t.Fatal("expected error for a character outside {A,C,G,T,N}")
	}
}

func Test_eofWithoutAnyBaseIsRejected(t *testing.T) {
	if _, err := Parse(strings.NewReader(">a\n")); err == nil {
		t.Fatal("expected error when the file ends before a name line gets any bases")
	}
}

func Test_emptyInputRejected(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func Test_leadingBlankLinesTolerated(t *testing.T) {
	genomes, err := Parse(strings.NewReader("\n\n>a\nACGT\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(genomes) != 1 {
		t.Fatalf("got %d genomes, want 1", len(genomes))
	}
}
