package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"uidfield/internal/uidfield"

	"github.com/spf13/cobra"
)

// readRecord loads a JSON object. An empty path or an empty file is an empty
// record, which the form treats as a new entry.
func readRecord(cmd *cobra.Command, path string) (uidfield.Record, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return uidfield.Record{}, nil
	}
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return uidfield.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var rec uidfield.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	if rec == nil {
		rec = uidfield.Record{}
	}
	return rec, nil
}

func writeFileAtomic(path string, b []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".uidfield-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
