package distribution

// Quotas splits total evenly across the roster. The first total%len(roster) workers,
// in roster order, get one extra unit.
func Quotas(total int, roster Roster) ([]int, error) {
	if len(roster) == 0 {
		if total > 0 {
			return nil, &InvalidRosterError{Reason: "no workers for a non-empty run"}
		}
		return []int{}, nil
	}

	target := total / len(roster)
	remainder := total % len(roster)

	quotas := make([]int, len(roster))
	for i := range quotas {
		quotas[i] = target
		if i < remainder {
			quotas[i]++
		}
	}
	return quotas, nil
}
