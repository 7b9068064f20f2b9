package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// DefaultWorkplaces are used when none are configured.
var DefaultWorkplaces = []string{"Studio Hispan", "Studio Press", "Nodal", "Engineer Room"}

// WorkplaceSlug returns the caseless URL form of a workplace, e.g.
// "studio-hispan".
func WorkplaceSlug(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(strings.ReplaceAll(name, "-", " ")), "-"))
}

// ResolveWorkplace matches id against the known workplaces, accepting the
// exact name, or any spelling with the same slug under Unicode case folding.
func ResolveWorkplace(id string, known []string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	for _, wp := range known {
		if wp == id {
			return wp, true
		}
	}
	slug := WorkplaceSlug(id)
	for _, wp := range known {
		if WorkplaceSlug(wp) == slug {
			return wp, true
		}
	}
	return "", false
}
