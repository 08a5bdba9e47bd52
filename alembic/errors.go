// Package alembic provides a pure Go reader for Alembic archives stored in the
// Ogawa container format.
package alembic

import (
	"errors"

	"github.com/robert-malhotra/go-alembic/internal/binary"
	"github.com/robert-malhotra/go-alembic/internal/header"
)

// Common errors
var (
	// ErrInvalidData marks every format error: header mismatches, truncated
	// structures, non-UTF-8 strings and dangling references.
	ErrInvalidData = binary.ErrInvalidData
	ErrNotOgawa    = header.ErrNotOgawa

	ErrPropertyNotFound       = errors.New("property not found")
	ErrUnexpectedPropertyType = errors.New("unexpected property type")
	ErrUnexpectedDataType     = errors.New("unexpected data type")
	ErrObjectNotFound         = errors.New("object not found")
	ErrSampleOutOfRange       = errors.New("sample index out of range")
	ErrUnsupported            = errors.New("unsupported feature")
	ErrClosed                 = errors.New("archive is closed")
)
