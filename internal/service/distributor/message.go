package distributor

import (
	"fmt"
	"strings"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
)

const (
	messageHeader = "*DOKUMEN PECAH RATA - BRADWEAR*"
	messageRule   = "━━━━━━━━━━━━━━━━━━━━"
	messageFooter = "_Auto-generated by Bradwear Flow_"
)

// FormatMessage renders a run as the plain-text sheet the workshop shares over chat.
// Workers with no items are left out. Items of a worker are listed per order when the
// run spans more than one order.
func FormatMessage(orders []distribution.Order, r distribution.Report) string {
	var b strings.Builder
	b.WriteString(messageHeader + "\n")
	b.WriteString(messageRule + "\n")
	fmt.Fprintf(&b, "*Kode:* %s\n", orDash(joinField(orders, func(o distribution.Order) string { return o.Code })))
	fmt.Fprintf(&b, "*Model:* %s\n", orDash(joinField(orders, func(o distribution.Order) string { return o.Model })))
	fmt.Fprintf(&b, "*Total:* %dpcs / %d penjahit\n\n", r.Total, len(r.WithItems()))
	b.WriteString("*PEMBAGIAN PENJAHIT (Prioritas):*\n")

	multi := len(orders) > 1
	for _, a := range r.WithItems() {
		fmt.Fprintf(&b, "*%s:* ", a.Worker)
		if multi {
			parts := make([]string, 0, len(a.Groups))
			for _, g := range a.Groups {
				parts = append(parts, fmt.Sprintf("[%s] %s", g.OrderCode, itemList(g.Items)))
			}
			b.WriteString(strings.Join(parts, "; "))
		} else {
			b.WriteString(itemList(a.Items))
		}
		if a.Shortfall != nil {
			fmt.Fprintf(&b, " (kurang %dpcs)", a.Shortfall.Missing())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + messageRule + "\n")
	b.WriteString(messageFooter)
	return b.String()
}

func itemList(items []distribution.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%dpcs)", it.Size, it.Count))
	}
	return strings.Join(parts, ", ")
}

func joinField(orders []distribution.Order, f func(distribution.Order) string) string {
	var vals []string
	seen := map[string]bool{}
	for _, o := range orders {
		v := strings.TrimSpace(f(o))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		vals = append(vals, v)
	}
	return strings.Join(vals, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
