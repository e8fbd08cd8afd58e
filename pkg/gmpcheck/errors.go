package gmpcheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnreadableFile indicates no encoding, delimiter or spreadsheet reader produced a table.
var ErrUnreadableFile = errors.New("unreadable file")

// ErrUnsupportedFormat indicates a file extension no reader handles.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// ErrMissingRequiredColumn indicates a required column role could not be resolved.
var ErrMissingRequiredColumn = errors.New("missing required column")

// FileError is a fatal error tied to one input file.
type FileError struct {
	File string
	Role models.FileRole // empty when roles were not decided yet
	Err  error
}

func (e *FileError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("file %q: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s file %q: %v", e.Role, e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports the unresolved role and every label that was found.
type MissingColumnError struct {
	Role    parser.ColumnRole
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%v: %s (found columns: %s)", ErrMissingRequiredColumn, e.Role, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingRequiredColumn
}

// NewFileError creates a new FileError.
func NewFileError(file string, role models.FileRole, err error) *FileError {
	return &FileError{
		File: file,
		Role: role,
		Err:  err,
	}
}
