// Package fasta implements a FASTA-like loader: it turns a stream of
// name/sequence records into genome.Genome values for internal/matcher to
// index. Malformed input rejects the entire stream, no partial library is
// ever produced.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/zackeberger/genomics/internal/genome"
)

// Load reads genomes from the file at path. A ".gz" suffix is decompressed
// transparently; everything else is read as plain text.
func Load(path string) ([]genome.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("fasta: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// LoadWithProgress behaves like Load but renders a progress bar on stderr
// as bytes are consumed, for the CLI's interactive use. size is the total
// byte count to render against; pass 0 to disable the bar (Parse is used
// directly in that case, matching Load's behavior exactly).
func LoadWithProgress(path string, size int64) ([]genome.Genome, error) {
	if size <= 0 {
		return Load(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: %w", err)
	}
	defer f.Close()

	bar := pb.Full.Start64(size)
	bar.Set(pb.Bytes, true)
	defer bar.Finish()

	var r io.Reader = bar.NewProxyReader(f)
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("fasta: %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	return Parse(r)
}

// Parse reads genomes from r according to the record format: a name line
// beginning with '>' followed by one or more base lines drawn from
// {A,C,G,T,N,a,c,g,t,n}. A blank line is only allowed between two
// records, never inside one, and every name line must be followed by at
// least one base line before EOF or the next name line.
func Parse(r io.Reader) ([]genome.Genome, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64<<20)

	var (
		genomes      []genome.Genome
		name         string
		seq          strings.Builder
		started      bool
		inRecord     bool
		haveBase     bool
		pendingBlank bool
		lineNo       int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if !started {
			if line == "" {
				continue
			}
			if line[0] != '>' {
				return nil, fmt.Errorf("fasta: line %d: file must begin with a name line ('>')", lineNo)
			}
			started = true
		}

		if line == "" {
			if inRecord && !haveBase {
				return nil, fmt.Errorf("fasta: line %d: name line %q has no following sequence", lineNo, name)
			}
			if inRecord {
				pendingBlank = true
			}
			continue
		}

		if line[0] == '>' {
			if inRecord {
				if !haveBase {
					return nil, fmt.Errorf("fasta: line %d: name line %q has no following sequence", lineNo, name)
				}
				genomes = append(genomes, genome.New(name, seq.String()))
			}
			name = strings.TrimSpace(line[1:])
			if name == "" {
				return nil, fmt.Errorf("fasta: line %d: name line has an empty name", lineNo)
			}
			seq.Reset()
			inRecord = true
			haveBase = false
			pendingBlank = false
			continue
		}

		if !inRecord {
			return nil, fmt.Errorf("fasta: line %d: sequence data before any name line", lineNo)
		}
		if pendingBlank {
			return nil, fmt.Errorf("fasta: line %d: blank line inside record %q", lineNo, name)
		}
		for i := 0; i < len(line); i++ {
			if !isBase(line[i]) {
				return nil, fmt.Errorf("fasta: line %d: invalid character %q in sequence", lineNo, line[i])
			}
		}
		seq.WriteString(line)
		haveBase = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fasta: %w", err)
	}

	if !started {
		return nil, fmt.Errorf("fasta: no records found")
	}
	if inRecord {
		if !haveBase {
			return nil, fmt.Errorf("fasta: name line %q has no following sequence", name)
		}
		genomes = append(genomes, genome.New(name, seq.String()))
	}

	return genomes, nil
}

func isBase(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		return true
	default:
		return false
	}
}
