package database

import "strings"

// recordKey strips the table prefix from a record id, so callers may pass
// either "profile:abc123" or the bare "abc123". type::thing expects the
// bare key.
func recordKey(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
