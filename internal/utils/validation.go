package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxIDLength bounds the length of a single student id, in characters.
const MaxIDLength = 64

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidateID validates that an ID is safe and within reasonable limits.
// Student ids are free-form text, so any printable character is accepted.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if !utf8.ValidString(id) {
		return errors.New("id is not valid UTF-8")
	}

	if utf8.RuneCountInString(id) > MaxIDLength {
		return fmt.Errorf("id too long (max %d characters)", MaxIDLength)
	}

	if strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return errors.New("id contains control characters")
	}

	return nil
}

// ValidateSelection checks every id of a selection and its size. Blank ids
// are ignored and an empty selection is not a validation error here; callers
// report it as a warning. The returned map is empty when the selection is valid.
func ValidateSelection(ids []string, maxSize int) map[string][]string {
	fieldErrors := make(map[string][]string)

	count := 0
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		count++
		if err := ValidateID(id); err != nil {
			fieldErrors["userIds"] = append(fieldErrors["userIds"], fmt.Sprintf("%q: %s", id, err))
		}
	}

	if maxSize > 0 && count > maxSize {
		fieldErrors["userIds"] = append(fieldErrors["userIds"],
			fmt.Sprintf("too many students selected (max %d)", maxSize))
	}

	return fieldErrors
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
