// Package lock provides keyed mutual exclusion for account and loan
// mutations, in process or across instances through Redis.
package lock

import (
	"fmt"
	"sort"
)

func AccountKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}

func LoanKey(id int64) string {
	return fmt.Sprintf("loan:%d", id)
}

// normalize sorts and dedupes keys so every caller acquires them in the
// same order.
func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
