package distribution

import "strings"

// SizeCount is one line of an order's size breakdown.
type SizeCount struct {
	Size  string `json:"size"`
	Count int    `json:"count"`
}

// Order is the engine's view of a production order.
type Order struct {
	Code  string      `json:"order_code"`
	Model string      `json:"model"`
	Sizes []SizeCount `json:"sizes"`
}

// Pile is one (order, size) unit of work with a remaining quantity.
type Pile struct {
	OrderCode string
	Model     string
	Size      string
	Count     int
}

func (p Pile) take(n int) Item {
	return Item{OrderCode: p.OrderCode, Model: p.Model, Size: p.Size, Count: n}
}

// BuildPool flattens orders into piles in input order and returns the total unit count.
// Zero-count entries are dropped. Every order is validated before any pile is built,
// so a malformed entry fails the whole call.
func BuildPool(orders []Order) ([]Pile, int, error) {
	for _, o := range orders {
		for _, sc := range o.Sizes {
			if sc.Count < 0 {
				return nil, 0, &MalformedOrderError{OrderCode: o.Code, Size: sc.Size, Count: sc.Count, Reason: "negative count"}
			}
			if sc.Count > 0 && strings.TrimSpace(sc.Size) == "" {
				return nil, 0, &MalformedOrderError{OrderCode: o.Code, Size: sc.Size, Count: sc.Count, Reason: "empty size label"}
			}
		}
	}

	var (
		pool  []Pile
		total int
	)
	for _, o := range orders {
		for _, sc := range o.Sizes {
			if sc.Count == 0 {
				continue
			}
			pool = append(pool, Pile{OrderCode: o.Code, Model: o.Model, Size: sc.Size, Count: sc.Count})
			total += sc.Count
		}
	}
	return pool, total, nil
}
