package file

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
)

// BypassFileName is the bypass list file inside the configuration directory.
const BypassFileName = "timerestrict_bypass.txt"

// BypassFile stores one player name per line.
type BypassFile struct {
	path string
}

// NewBypassFile returns a store for BypassFileName under dir.
func NewBypassFile(dir string) *BypassFile {
	return &BypassFile{path: filepath.Join(dir, BypassFileName)}
}

// Path returns the bypass file location.
func (f *BypassFile) Path() string {
	return f.path
}

// LoadBypass reads the list in file order. Lines are trimmed, blank lines
// skipped and repeated names collapsed. A missing file is an empty list.
func (f *BypassFile) LoadBypass() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", BypassFileName, err)
	}

	var names []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", BypassFileName, err)
	}
	return names, nil
}

// SaveBypass writes names one per line in the given order.
func (f *BypassFile) SaveBypass(names []string) error {
	var buf bytes.Buffer
	for _, name := range names {
		buf.WriteString(name)
		buf.WriteByte('\n')
	}
	if err := writeFileAtomic(f.path, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", BypassFileName, err)
	}
	return nil
}

var _ storage.BypassStore = (*BypassFile)(nil)
