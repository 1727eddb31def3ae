// Package util holds small formatting and hashing helpers shared by the CLI
// and the loaders.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Checksum returns the hex SHA256 of everything read from r.
func Checksum(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", errors.Wrap(err, "failed to calculate checksum")
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// CalculateFileChecksum calculates the SHA256 checksum for a file.
func CalculateFileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return Checksum(file)
}

// FormatBytes formats a byte count with binary units, e.g. "1.5 KB".
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	const prefixes = "KMGTPE"
	value := float64(bytes) / unit
	exp := 0
	for value >= unit && exp < len(prefixes)-1 {
		value /= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", value, prefixes[exp])
}

// FormatDuration formats a planning duration: milliseconds below one second,
// tenths of a second below one minute, then minutes and seconds.
func FormatDuration(duration time.Duration) string {
	switch {
	case duration < time.Second:
		return fmt.Sprintf("%dms", duration.Milliseconds())
	case duration < time.Minute:
		return fmt.Sprintf("%.1fs", duration.Seconds())
	}

	duration = duration.Round(time.Second)

	return fmt.Sprintf("%dm%ds", int(duration.Minutes()), int(duration.Seconds())%60)
}
