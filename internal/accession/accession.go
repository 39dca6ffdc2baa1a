// SPDX-License-Identifier: Apache-2.0

// Package accession normalizes newline-delimited SRA accession lists.
package accession

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

const commentPrefix = "#"

// Normalize returns the accessions in text, one per line, with surrounding
// whitespace removed. Blank lines and lines starting with '#' are dropped.
func Normalize(text string) []string {
	lines := strings.Split(text, "\n")
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if id, ok := accept(l); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Write normalizes text and writes each accession newline-terminated to
// outputPath.
func Write(text, outputPath string) (extracted.File, error) {
	var b strings.Builder
	for _, id := range Normalize(text) {
		b.WriteString(id)
		b.WriteByte('\n')
	}
	f, err := extracted.Write(outputPath, []byte(b.String()))
	if err != nil {
		return extracted.File{}, err
	}
	f.MIMEType = "text/plain"
	return f, nil
}

// CountFile counts the accessions in an accession list on disk, applying the
// same filtering as Normalize.
func CountFile(path string) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", extracted.ErrIO, err)
	}
	defer fh.Close()

	n := 0
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		if _, ok := accept(sc.Text()); ok {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", extracted.ErrIO, path, err)
	}
	return n, nil
}

func accept(line string) (string, bool) {
	id := strings.TrimSpace(line)
	if id == "" || strings.HasPrefix(id, commentPrefix) {
		return "", false
	}
	return id, true
}
