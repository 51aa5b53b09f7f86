package distribution

// Item is a whole or partial pile handed to one worker.
type Item struct {
	OrderCode string `json:"order_code"`
	Model     string `json:"model"`
	Size      string `json:"size"`
	Count     int    `json:"count"`
}

// OrderGroup collects one worker's items that belong to the same order.
type OrderGroup struct {
	OrderCode string `json:"order_code"`
	Model     string `json:"model"`
	Count     int    `json:"count"`
	Items     []Item `json:"items"`
}

type Allocation struct {
	Worker        string            `json:"worker"`
	Target        int               `json:"target"`
	TotalAssigned int               `json:"total_assigned"`
	Items         []Item            `json:"items"`
	Groups        []OrderGroup      `json:"groups"`
	Shortfall     *ShortfallWarning `json:"shortfall,omitempty"`
}

// Report is the result of one distribution run. Allocations follow roster order and
// include workers that received nothing.
type Report struct {
	Total       int          `json:"total"`
	Splits      int          `json:"splits"`
	Allocations []Allocation `json:"allocations"`
}

func newReport(total, splits int, allocations []Allocation) Report {
	for i := range allocations {
		allocations[i].Groups = groupByOrder(allocations[i].Items)
	}
	return Report{Total: total, Splits: splits, Allocations: allocations}
}

// groupByOrder groups items by order code in first-seen order.
func groupByOrder(items []Item) []OrderGroup {
	groups := []OrderGroup{}
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.OrderCode]
		if !ok {
			i = len(groups)
			index[it.OrderCode] = i
			groups = append(groups, OrderGroup{OrderCode: it.OrderCode, Model: it.Model, Items: []Item{}})
		}
		groups[i].Items = append(groups[i].Items, it)
		groups[i].Count += it.Count
	}
	return groups
}

// Assigned sums TotalAssigned over every allocation.
func (r Report) Assigned() int {
	n := 0
	for _, a := range r.Allocations {
		n += a.TotalAssigned
	}
	return n
}

// Shortfalls returns the warnings attached to under-assigned workers, in roster order.
func (r Report) Shortfalls() []ShortfallWarning {
	var out []ShortfallWarning
	for _, a := range r.Allocations {
		if a.Shortfall != nil {
			out = append(out, *a.Shortfall)
		}
	}
	return out
}

// WithItems returns only the allocations that received at least one item.
func (r Report) WithItems() []Allocation {
	out := make([]Allocation, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		if len(a.Items) > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Allocation returns the allocation for worker.
func (r Report) Allocation(worker string) (Allocation, bool) {
	for _, a := range r.Allocations {
		if a.Worker == worker {
			return a, true
		}
	}
	return Allocation{}, false
}
