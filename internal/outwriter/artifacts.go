package outwriter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folioscope/folio/schema"
)

// createArtifact creates path and any missing parent directories.
func createArtifact(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// WriteMetadataJSONL writes one JSON object per file record, in archive order.
func WriteMetadataJSONL(path string, records []schema.FileRecord) (err error) {
	f, err := createArtifact(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	buf := bufio.NewWriter(f)
	enc := json.NewEncoder(buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode metadata for %s: %w", rec.Path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteSummaryJSON writes the summary document as indented JSON.
func WriteSummaryJSON(path string, doc *schema.SummaryDocument) (err error) {
	f, err := createArtifact(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return writeJSON(f, doc)
}

// readMetadataJSONL reads records written by WriteMetadataJSONL.
func readMetadataJSONL(path string) ([]schema.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var records []schema.FileRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec schema.FileRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
