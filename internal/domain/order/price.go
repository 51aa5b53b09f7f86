package order

import "strings"

const DefaultPrice = 35000

// PriceList is the per-piece rate, in rupiah, keyed by upper-cased model name.
var PriceList = map[string]int{
	"PDH":     39000,
	"BRAD V2": 39000,
	"BRAD V1": 34000,
	"VENTURA": 41000,
	"ROMPI":   45000,
	"CUSTOM":  45000,
}

func PriceFor(model string) int {
	if p, ok := PriceList[strings.ToUpper(strings.TrimSpace(model))]; ok {
		return p
	}
	return DefaultPrice
}

// Earnings is the pay for a finished order. Unfinished orders earn nothing yet.
func (o Order) Earnings() int {
	if !o.IsDone() {
		return 0
	}
	return PriceFor(o.Model) * o.Quantity
}
