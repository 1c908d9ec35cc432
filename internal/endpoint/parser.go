package endpoint

import (
	"fmt"
	"regexp"
	"strconv"
)

const namePattern = `[a-zA-Z0-9_][a-zA-Z0-9_-]*`

var (
	// addressRegex matches `name`, `name[1]` and `name.pad`.
	addressRegex = regexp.MustCompile(`^(` + namePattern + `)(?:\[(\d+)\]|\.(` + namePattern + `))?$`)
	nameRegex    = regexp.MustCompile(`^` + namePattern + `$`)
)

// ValidName reports whether name can be addressed by an endpoint, either
// as an instance or as a pad.
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// Parse creates an Address from its string form.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	matches := addressRegex.FindStringSubmatch(raw)
	if matches == nil {
		return nil, fmt.Errorf("invalid endpoint format: %q", raw)
	}

	addr := &Address{Instance: matches[1], Pad: matches[3], Index: -1}
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, fmt.Errorf("pad index in %q: %w", raw, err)
		}
		addr.Index = index
	}
	return addr, nil
}
