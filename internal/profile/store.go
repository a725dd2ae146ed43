package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned when a named profile does not exist in the store.
var ErrNotFound = errors.New("profile not found")

// Info describes a stored profile file.
type Info struct {
	Name     string    // Display name (without extension)
	Path     string    // Full path to the file
	Size     int64     // File size in bytes
	Modified time.Time // Last modification time
}

// Store manages profile files in a directory. Profiles are TOML, one file
// per car.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultStore returns the store in the XDG data directory.
func DefaultStore() (*Store, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// DataDir returns the XDG data directory for profile files, creating it if
// needed.
func DataDir() (string, error) {
	path, err := xdg.DataFile("protune/profiles")
	if err != nil {
		return "", fmt.Errorf("failed to get profile directory: %w", err)
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	return path, nil
}

// Dir returns the store's directory.
func (st *Store) Dir() string {
	return st.dir
}

// List returns all stored profiles, newest first.
func (st *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	var files []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".toml") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, Info{
			Name:     strings.TrimSuffix(name, ".toml"),
			Path:     filepath.Join(st.dir, name),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// Load reads a stored profile by name.
func (st *Store) Load(name string) (*Profile, error) {
	p, err := LoadFile(st.pathFor(name))
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return p, nil
}

// Save writes a profile under the given name, overwriting any previous file.
func (st *Store) Save(name string, p *Profile) (string, error) {
	if err := os.MkdirAll(st.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	path := st.pathFor(name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write profile file: %w", err)
	}
	return path, nil
}

// Export copies a stored profile to an arbitrary destination path.
func (st *Store) Export(name, dest string) error {
	data, err := os.ReadFile(st.pathFor(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0600)
}

// Delete removes a stored profile by name.
func (st *Store) Delete(name string) error {
	err := os.Remove(st.pathFor(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

func (st *Store) pathFor(name string) string {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, ".toml") {
		name += ".toml"
	}
	return filepath.Join(st.dir, name)
}

// LoadFile reads and validates a profile from an arbitrary path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 - profile path comes from the user
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}
