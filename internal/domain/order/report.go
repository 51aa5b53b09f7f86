package order

import "sort"

type MonthlyStat struct {
	Month       string `json:"month"` // YYYY-MM
	TotalOrders int    `json:"total_orders"`
	TotalPieces int    `json:"total_pieces"`
	Earnings    int    `json:"earnings"`
}

// Monthly groups live orders by the UTC month they were created, newest month first.
func Monthly(orders []Order) []MonthlyStat {
	byMonth := make(map[string]*MonthlyStat)
	for _, o := range orders {
		if o.IsDeleted() {
			continue
		}
		key := o.CreatedAt.UTC().Format("2006-01")
		st, ok := byMonth[key]
		if !ok {
			st = &MonthlyStat{Month: key}
			byMonth[key] = st
		}
		st.TotalOrders++
		st.TotalPieces += o.Quantity
		st.Earnings += o.Earnings()
	}

	out := make([]MonthlyStat, 0, len(byMonth))
	for _, st := range byMonth {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}
