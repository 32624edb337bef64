package listing

import (
	"fmt"
	"strings"
)

// SortKey selects the comparator used within each partition.
type SortKey int

const (
	SortByName SortKey = iota
	SortBySize
	SortByDate
	SortByType
)

var sortKeyNames = [...]string{
	SortByName: "name",
	SortBySize: "size",
	SortByDate: "date",
	SortByType: "type",
}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return sortKeyNames[SortByName]
	}
	return sortKeyNames[k]
}

// Next cycles name → size → date → type → name.
func (k SortKey) Next() SortKey {
	return SortKey((int(k) + 1) % len(sortKeyNames))
}

// ParseSortKey parses "name", "size", "date" or "type" (case-insensitive).
func ParseSortKey(s string) (SortKey, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range sortKeyNames {
		if name == want {
			return SortKey(i), nil
		}
	}
	return SortByName, fmt.Errorf("unknown sort key %q (want name, size, date or type)", s)
}

// SortKeyNames lists the accepted sort key names in cycle order.
func SortKeyNames() []string {
	return append([]string(nil), sortKeyNames[:]...)
}
