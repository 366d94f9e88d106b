package venda

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ferrigb/sistema-nota-consumidor/internal/format"
)

// DayGroup is one calendar day of finalized sales.
type DayGroup struct {
	Date  time.Time // midnight in the viewer's local zone
	Label string    // "05/01/2024"
	Sales []Sale
}

// GroupHistory groups finalized sales by local calendar date, most
// recent day first. Groups are ordered by the actual date, not by the
// formatted label; inside a group the server order is preserved. The
// input slice is never modified.
func GroupHistory(sales []Sale) []DayGroup {
	byDay := make(map[int64]int)
	groups := make([]DayGroup, 0)

	for _, sale := range sales {
		t := sale.Date.Time
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		idx, ok := byDay[day.Unix()]
		if !ok {
			idx = len(groups)
			byDay[day.Unix()] = idx
			groups = append(groups, DayGroup{Date: day, Label: format.DateLabel(day)})
		}
		groups[idx].Sales = append(groups[idx].Sales, sale)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}

// RenderHistory writes the grouped history as terminal text, mirroring
// the layout of the original history panel.
func RenderHistory(w io.Writer, groups []DayGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "Nenhuma venda finalizada ainda.")
		return
	}

	for _, g := range groups {
		fmt.Fprintf(w, "Vendas de %s\n", g.Label)
		for _, sale := range g.Sales {
			fmt.Fprintf(w, "  Venda #%d | %s\n", sale.ID, format.DateTime(sale.Date.Time))
			fmt.Fprintf(w, "  Total: R$ %s\n", format.Currency(sale.Total))
			for _, item := range sale.Items {
				suffix := "x"
				if item.QuantityUnit == UnitKg {
					suffix = "kg"
				}
				fmt.Fprintf(w, "    %s (%s%s)  R$ %s\n",
					item.ProductName,
					format.Quantity(item.Quantity), suffix,
					format.Currency(item.Subtotal),
				)
			}
			fmt.Fprintln(w)
		}
	}
}
