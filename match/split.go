package match

import "strings"

// NameParts holds the positional parts of a full name.
type NameParts struct {
	First string
	Last  string
}

// SplitName decomposes a full name on whitespace. A single token becomes the
// first name; with three or more tokens only the first and last survive,
// middle names are dropped.
func SplitName(fullName string) NameParts {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return NameParts{}
	case 1:
		return NameParts{First: parts[0]}
	case 2:
		return NameParts{First: parts[0], Last: parts[1]}
	default:
		return NameParts{First: parts[0], Last: parts[len(parts)-1]}
	}
}
