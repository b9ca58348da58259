// Package inputs reads the flat files the tools consume: line-delimited
// secrets or mnemonics, and CSV key dumps in the
// hex_private_key,wif_private_key,bitcoin_address layout.
package inputs

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExtractAddresses pulls unique BTC addresses out of a CSV file, preserving
// first-seen order. A file whose first bytes start with "hex_private_key"
// (case-insensitive) is read as a headered CSV and the bitcoin_address
// column is taken; otherwise the third column of each row is used, or the
// only column of single-column rows.
func ExtractAddresses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, 4096)
	n, _ := f.Read(head)
	hasHeader := strings.HasPrefix(strings.ToLower(string(head[:n])), "hex_private_key")
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		addrCol = 2
		out     []string
		seen    = make(map[string]struct{})
	)
	if hasHeader {
		header, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		addrCol = -1
		for i, name := range header {
			if strings.TrimSpace(strings.ToLower(name)) == "bitcoin_address" {
				addrCol = i
				break
			}
		}
		if addrCol < 0 {
			return nil, fmt.Errorf("no bitcoin_address column in %q", path)
		}
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// a malformed row must not drop the rest of the file
			continue
		}
		if len(row) == 0 {
			continue
		}
		var addr string
		switch {
		case hasHeader && addrCol < len(row):
			addr = strings.TrimSpace(row[addrCol])
		case !hasHeader && len(row) >= 3:
			addr = strings.TrimSpace(row[2])
		case !hasHeader && len(row) == 1:
			addr = strings.TrimSpace(row[0])
		}
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out, nil
}

// ReadLines returns the trimmed non-empty lines of a file.
func ReadLines(path string) ([]string, error) {
	return readLines(path, false)
}

// ReadSecrets is ReadLines with '#' comment lines skipped.
func ReadSecrets(path string) ([]string, error) {
	return readLines(path, true)
}

func readLines(path string, skipComments bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", path, err)
	}
	return out, nil
}

// WriteLines writes one value per line, replacing any existing file.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
