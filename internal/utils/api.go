package utils

import (
	"net/url"
	"strings"
)

// ParseIDList collects the ids of a query or form parameter. Both repeated
// keys (?ids=a&ids=b) and comma separated values (?ids=a,b) are accepted.
// Blank entries are dropped; order is preserved.
func ParseIDList(values url.Values, key string) []string {
	var ids []string
	for _, raw := range values[key] {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
