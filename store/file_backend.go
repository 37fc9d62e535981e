package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/todowing/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatTOML     = "toml"
	formatSQLite   = "sqlite"
	checksumSuffix = ".checksum"
)

// backend reads and writes the persisted Document.
type backend interface {
	// read returns a nil Document when nothing has been persisted yet.
	read() (*models.Document, error)
	write(doc models.Document) error
	backup(destinationPath string) error
	restore(sourcePath string) error
	close() error
}

// fileBackend stores the Document as a single json, yaml or toml file with a
// sha256 checksum sidecar.
type fileBackend struct {
	fs             afero.Fs
	filePath       string
	format         string
	verifyChecksum bool
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

func (b *fileBackend) checksumPath() string {
	return b.filePath + checksumSuffix
}

func (b *fileBackend) read() (*models.Document, error) {
	data, err := afero.ReadFile(b.fs, b.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// A stale checksum without its data file would reject the first save's reload.
			_ = b.fs.Remove(b.checksumPath())
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	doc, err := decodeDocument(b.format, data)
	if err != nil {
		if b.verifyChecksum {
			if verr := b.verify(data); verr != nil {
				return nil, fmt.Errorf("%w (%w)", err, verr)
			}
		}
		return nil, err
	}

	// A document that decodes is returned even when its checksum is stale,
	// together with ErrChecksumMismatch. The next write refreshes the sidecar.
	if b.verifyChecksum {
		if err := b.verify(data); err != nil {
			return &doc, err
		}
	}
	return &doc, nil
}

// verify compares data against the checksum sidecar. Files written before
// checksums existed have no sidecar and are accepted.
func (b *fileBackend) verify(data []byte) error {
	expected, err := afero.ReadFile(b.fs, b.checksumPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read checksum file %s: %w", b.checksumPath(), err)
	}

	expectedChecksum := strings.TrimSpace(string(expected))
	actualChecksum := calculateChecksum(data)
	if actualChecksum != expectedChecksum {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expectedChecksum, actualChecksum)
	}
	return nil
}

func (b *fileBackend) write(doc models.Document) error {
	data, err := encodeDocument(b.format, doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(b.filePath); dir != "." && dir != "" {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tempFilePath := b.filePath + ".tmp"
	tempChecksumFilePath := b.checksumPath() + ".tmp"
	defer func() { _ = b.fs.Remove(tempFilePath) }()
	defer func() { _ = b.fs.Remove(tempChecksumFilePath) }()

	if err := afero.WriteFile(b.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempFilePath, err)
	}
	if err := afero.WriteFile(b.fs, tempChecksumFilePath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := b.fs.Rename(tempFilePath, b.filePath); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	if err := b.fs.Rename(tempChecksumFilePath, b.checksumPath()); err != nil {
		return fmt.Errorf("data file updated but checksum file %s was not: %w", b.checksumPath(), err)
	}
	return nil
}

// backup copies the data file as is. The checksum sidecar is not copied.
func (b *fileBackend) backup(destinationPath string) error {
	input, err := afero.ReadFile(b.fs, b.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file for backup: %w", err)
	}
	if err := afero.WriteFile(b.fs, destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// restore atomically replaces the data file and drops the old checksum, since
// the restored content is not covered by it. The next save writes a new one.
func (b *fileBackend) restore(sourcePath string) error {
	sourceData, err := afero.ReadFile(b.fs, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read backup file %s: %w", sourcePath, err)
	}
	if _, err := decodeDocument(b.format, sourceData); err != nil {
		return fmt.Errorf("backup file %s is not valid %s: %w", sourcePath, b.format, err)
	}

	tempFilePath := b.filePath + ".tmp_restore"
	defer func() { _ = b.fs.Remove(tempFilePath) }()

	if err := afero.WriteFile(b.fs, tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("failed to write restored data to %s: %w", tempFilePath, err)
	}
	if err := b.fs.Rename(tempFilePath, b.filePath); err != nil {
		return fmt.Errorf("failed to replace data file with %s: %w", sourcePath, err)
	}
	if err := b.fs.Remove(b.checksumPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale checksum: %w", err)
	}
	return nil
}

func (b *fileBackend) close() error { return nil }

// encodeDocument marshals doc in the given format. JSON uses 2-space
// indentation and a trailing newline.
func encodeDocument(format string, doc models.Document) ([]byte, error) {
	if doc.Tasks == nil {
		doc.Tasks = []models.Record{}
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return data, nil
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported data format for saving: %s", format)
	}
}

func decodeDocument(format string, data []byte) (models.Document, error) {
	var doc models.Document
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("unmarshal json: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("unmarshal yaml: %w", err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("unmarshal toml: %w", err)
		}
	default:
		return doc, fmt.Errorf("unsupported data format for loading: %s", format)
	}
	return doc, nil
}
