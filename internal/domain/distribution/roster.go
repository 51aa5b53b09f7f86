package distribution

import "strings"

// Roster is the ordered list of workers in one run. Position decides who receives
// the remainder units.
type Roster []string

// NewRoster copies names into a Roster, rejecting blank and duplicate names.
// An empty roster is accepted here; Quotas decides whether it can serve the run.
func NewRoster(names []string) (Roster, error) {
	seen := make(map[string]bool, len(names))
	r := make(Roster, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, &InvalidRosterError{Reason: "blank worker name"}
		}
		if seen[n] {
			return nil, &InvalidRosterError{Reason: "duplicate worker " + n}
		}
		seen[n] = true
		r = append(r, n)
	}
	return r, nil
}
