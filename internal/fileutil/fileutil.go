// Package fileutil provides filesystem helpers with all-or-nothing write
// semantics for pipeline outputs.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output pairs a destination path with the content to write there.
type Output struct {
	Path string
	Data []byte
}

// WriteAll writes every output atomically as a group: each payload goes to a
// temp file in the destination directory first, then all temps are renamed
// into place. Any failure removes the temps and already-renamed outputs so a
// partial set is never left visible.
func WriteAll(outputs ...Output) error {
	temps := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, tmp := range temps {
			if tmp != "" {
				_ = os.Remove(tmp)
			}
		}
	}

	for _, out := range outputs {
		tmp, err := writeTemp(out.Path, out.Data)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}

	renamed := make([]string, 0, len(outputs))
	for i, out := range outputs {
		if err := os.Rename(temps[i], out.Path); err != nil {
			for _, done := range renamed {
				_ = os.Remove(done)
			}
			cleanup()
			return fmt.Errorf("rename %s: %w", out.Path, err)
		}
		temps[i] = ""
		renamed = append(renamed, out.Path)
	}
	return nil
}

func writeTemp(dest string, data []byte) (string, error) {
	dir := filepath.Dir(dest)
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", dest, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write temp for %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp for %s: %w", dest, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("chmod temp for %s: %w", dest, err)
	}
	return tmp, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
