package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Fingerprint identifies one version of a source file.
type Fingerprint struct {
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Path    string    `json:"path" yaml:"path"`
	SHA256  string    `json:"sha256" yaml:"sha256"`
	Size    int64     `json:"size" yaml:"size"`
}

// Equal reports whether two fingerprints describe the same file contents.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Path == other.Path &&
		f.Size == other.Size &&
		f.ModTime.Equal(other.ModTime) &&
		f.SHA256 == other.SHA256
}

// Short returns an abbreviated content hash for display.
func (f Fingerprint) Short() string {
	if len(f.SHA256) < 12 {
		return f.SHA256
	}
	return f.SHA256[:12]
}

// ComputeFingerprint stats and hashes the file at path.
func ComputeFingerprint(path string) (Fingerprint, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return Fingerprint{}, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return Fingerprint{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
		SHA256:  hex.EncodeToString(hash.Sum(nil)),
	}, nil
}
