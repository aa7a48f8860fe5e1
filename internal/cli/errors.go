package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type badIndexError struct {
	arg string
}

func (e badIndexError) Error() string {
	return fmt.Sprintf("not an event index: %q", e.arg)
}

type invalidEventsError struct {
	n int
}

func (e invalidEventsError) Error() string {
	return fmt.Sprintf("%d invalid event(s)", e.n)
}

type missingImagesError struct {
	n int
}

func (e missingImagesError) Error() string {
	return fmt.Sprintf("%d missing image reference(s)", e.n)
}

// parseIndex parses an event index argument. Range is not checked here: the document
// treats out-of-range indices as no-ops.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, badIndexError{arg: s}
	}
	return n, nil
}

func parseIndices(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := parseIndex(a)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
