package frame

import "strings"

// Perms describes what a holder of a Ref may do with the pixels.
type Perms uint8

const (
	// PermRead allows reading the pixels.
	PermRead Perms = 1 << iota
	// PermWrite allows modifying the pixels.
	PermWrite
	// PermPreserve asks that nobody else modify the pixels.
	PermPreserve
	// PermReuse allows the holder to output the same storage again.
	PermReuse
)

// Has reports whether every flag in want is set.
func (p Perms) Has(want Perms) bool {
	return p&want == want
}

func (p Perms) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		flag Perms
		name string
	}{
		{PermRead, "read"},
		{PermWrite, "write"},
		{PermPreserve, "preserve"},
		{PermReuse, "reuse"},
	} {
		if p&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}
