// Package loader reads an input program file into a byte slice ready for
// Memory.LoadCode, distinguishing an unreadable file from an oversized one
// so the driver can report each with its own message.
package loader

import (
	"fmt"
	"io"
	"os"
)

// MaxSize is the largest input sim86 accepts: one 64 KiB segment (§6).
const MaxSize = 64 * 1024

// Err reports why a program could not be loaded, tagging whether the
// failure was opening/reading the file or the file exceeding MaxSize so
// the driver can print the two FILE_ERROR variants distinctly.
type Err struct {
	Path     string
	TooLarge bool
	Cause    error
}

func (e *Err) Error() string {
	if e.TooLarge {
		return fmt.Sprintf("%s: file exceeds %d byte segment limit", e.Path, MaxSize)
	}
	return fmt.Sprintf("open '%s': %s", e.Path, e.Cause)
}

func (e *Err) Unwrap() error { return e.Cause }

// Load reads path fully into memory and returns its bytes, or an *Err
// distinguishing "cannot open/read" from "too large for one segment".
func Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &Err{Path: path, Cause: err}
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return nil, &Err{Path: path, Cause: err}
	}
	if len(b) > MaxSize {
		return nil, &Err{Path: path, TooLarge: true}
	}
	return b, nil
}
