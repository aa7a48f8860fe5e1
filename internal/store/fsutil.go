package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dest, creating dest's directory when needed.
func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// MissingFiles returns the names from refs that do not exist as regular files under root.
// Empty names are skipped. Leading slashes are treated as relative to root, the way the
// display resolves image paths against the SD card mount.
func MissingFiles(root string, refs []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, ref := range refs {
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		p := filepath.Join(root, filepath.FromSlash(ref))
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			out = append(out, ref)
		}
	}
	return out
}
