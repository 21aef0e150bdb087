package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// manifestVersion is bumped when the layout of Manifest changes.
// Manifests with another version are ignored.
const manifestVersion = 1

// ErrCorruptManifest is returned by ReadManifest when the manifest file
// cannot be decoded.
var ErrCorruptManifest = errors.New("protoval: corrupt manifest")

// Manifest records the files written to a target directory by the last
// run, keyed by file name, with the hash of their content.
type Manifest struct {
	Version int               `msgpack:"version"`
	Package string            `msgpack:"package"`
	Files   map[string]string `msgpack:"files"`
}

// NewManifest returns an empty manifest for the given package.
func NewManifest(pkg string) *Manifest {
	return &Manifest{Version: manifestVersion, Package: pkg, Files: make(map[string]string)}
}

// ReadManifest reads the manifest at path. A missing or outdated manifest
// yields an empty one. A manifest that cannot be decoded yields an empty one
// together with an error matching ErrCorruptManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewManifest(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := msgpack.Unmarshal(data, m); err != nil {
		return NewManifest(""), fmt.Errorf("%w %s: %w", ErrCorruptManifest, path, err)
	}
	if m.Version != manifestVersion {
		return NewManifest(""), nil
	}
	if m.Files == nil {
		m.Files = make(map[string]string)
	}
	return m, nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Names returns the recorded file names in sorted order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Unchanged reports if the file was recorded with the same content hash.
func (m *Manifest) Unchanged(name, hash string) bool {
	h, ok := m.Files[name]
	return ok && h == hash
}

func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
