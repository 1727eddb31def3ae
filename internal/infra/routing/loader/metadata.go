package loader

import (
	"os"
	"time"

	"fleetroute/internal/util"

	"github.com/pkg/errors"
)

// InputMetadata records the provenance of a loaded stop file
type InputMetadata struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	SHA256    string    `json:"sha256"`
	Rows      int       `json:"rows"`
	Locations int       `json:"locations"`
	Skipped   int       `json:"skipped"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// DescribeFile builds the metadata for the file at path and the dataset read from it
func DescribeFile(path string, dataset *Dataset) (*InputMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat input file")
	}

	checksum, err := util.CalculateFileChecksum(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to checksum input file")
	}

	meta := &InputMetadata{
		Path:      path,
		SizeBytes: info.Size(),
		SHA256:    checksum,
		LoadedAt:  time.Now(),
	}
	if dataset != nil {
		meta.Rows = dataset.Rows
		meta.Locations = len(dataset.Locations)
		meta.Skipped = dataset.Skipped
	}

	return meta, nil
}

// Summary returns a brief summary of the metadata for logging
func (m *InputMetadata) Summary() map[string]any {
	return map[string]any{
		"path":      m.Path,
		"size":      util.FormatBytes(m.SizeBytes),
		"sha256":    m.SHA256,
		"rows":      m.Rows,
		"locations": m.Locations,
		"skipped":   m.Skipped,
	}
}
