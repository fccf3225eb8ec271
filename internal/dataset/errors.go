package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStudentNotFound is returned when a user id is absent from the dataset.
var ErrStudentNotFound = errors.New("student not found")

// SchemaError reports required columns missing from the dataset header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset schema mismatch: missing columns %s", strings.Join(e.Missing, ", "))
}
