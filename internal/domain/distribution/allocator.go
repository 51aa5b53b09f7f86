package distribution

import "sort"

// Allocate runs one distribution: it builds a private pile pool from orders, computes
// quotas for roster and hands piles out worker by worker.
//
// Each worker repeatedly takes the first pile in the pool that fits its remaining need
// whole. When nothing fits, it takes exactly the missing units from the first pile and
// leaves the remainder in place for the next worker. The pool is sorted once, largest
// first, with ties kept in input order; the output depends only on the inputs and
// their order.
func Allocate(orders []Order, roster []string) (Report, error) {
	pool, total, err := BuildPool(orders)
	if err != nil {
		return Report{}, err
	}
	r, err := NewRoster(roster)
	if err != nil {
		return Report{}, err
	}
	quotas, err := Quotas(total, r)
	if err != nil {
		return Report{}, err
	}

	run := &run{pool: pool}
	run.sortPool()

	allocations := make([]Allocation, len(r))
	for i, worker := range r {
		allocations[i] = run.fill(worker, quotas[i])
	}
	return newReport(total, run.splits, allocations), nil
}

// run owns the mutable pile pool for a single Allocate call.
type run struct {
	pool   []Pile
	splits int
}

func (r *run) sortPool() {
	sort.SliceStable(r.pool, func(i, j int) bool {
		return r.pool[i].Count > r.pool[j].Count
	})
}

// firstFit returns the index of the first pile whose count fits in needed, or -1.
func (r *run) firstFit(needed int) int {
	for i, p := range r.pool {
		if p.Count <= needed {
			return i
		}
	}
	return -1
}

func (r *run) fill(worker string, quota int) Allocation {
	a := Allocation{Worker: worker, Target: quota, Items: []Item{}}

	needed := quota
	for needed > 0 && len(r.pool) > 0 {
		if i := r.firstFit(needed); i >= 0 {
			p := r.pool[i]
			a.Items = append(a.Items, p.take(p.Count))
			needed -= p.Count
			r.pool = append(r.pool[:i], r.pool[i+1:]...)
			continue
		}

		a.Items = append(a.Items, r.pool[0].take(needed))
		r.pool[0].Count -= needed
		r.splits++
		needed = 0
	}

	for _, it := range a.Items {
		a.TotalAssigned += it.Count
	}
	if a.TotalAssigned < a.Target {
		a.Shortfall = &ShortfallWarning{Worker: worker, Target: a.Target, Assigned: a.TotalAssigned}
	}
	return a
}
