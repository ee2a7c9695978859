// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timeline

import "strings"

// ParseTags splits a free-text technology list into display tags. Both
// "·" and "," separate tags; pieces are trimmed, empty pieces dropped, and
// order and duplicates preserved.
func ParseTags(raw string) []string {
	pieces := strings.Split(strings.ReplaceAll(raw, "·", ","), ",")
	tags := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
