package handlers

import (
	"fmt"
	"strconv"
)

// parseIntParam parses a query parameter into dest, enforcing bounds.
func parseIntParam(value string, dest *int, min, max int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("not an integer: %q", value)
	}
	if parsed < min || parsed > max {
		return fmt.Errorf("value %d out of range [%d, %d]", parsed, min, max)
	}
	*dest = parsed
	return nil
}
