package venda

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleOn(id int64, date time.Time, items ...Item) Sale {
	s := *openSale(id, items...)
	s.Date = APITime{Time: date}
	s.Finalized = true
	return s
}

func TestGroupHistoryOrdersGroupsByTrueDateDescending(t *testing.T) {
	jan3 := time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)
	jan5 := time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local)

	// Server order intentionally has the older day first.
	history := []Sale{
		saleOn(1, jan3, racaoItem()),
		saleOn(2, jan5, racaoItem()),
		saleOn(3, jan3.Add(4*time.Hour), racaoItem()),
	}

	groups := GroupHistory(history)
	require.Len(t, groups, 2)
	assert.Equal(t, "05/01/2024", groups[0].Label, "most recent day first")
	assert.Equal(t, "03/01/2024", groups[1].Label)

	// Within a group the server order is preserved.
	require.Len(t, groups[1].Sales, 2)
	assert.Equal(t, int64(1), groups[1].Sales[0].ID)
	assert.Equal(t, int64(3), groups[1].Sales[1].ID)
}

func TestGroupHistorySortsByDateNotLabel(t *testing.T) {
	// Lexically "02/01/2024" < "10/12/2023", but the 2024 day is more
	// recent and must come first.
	dec10 := time.Date(2023, 12, 10, 12, 0, 0, 0, time.Local)
	jan2 := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)

	groups := GroupHistory([]Sale{saleOn(1, dec10), saleOn(2, jan2)})
	require.Len(t, groups, 2)
	assert.Equal(t, "02/01/2024", groups[0].Label)
	assert.Equal(t, "10/12/2023", groups[1].Label)
}

func TestGroupHistoryDiscardsTimeOfDayForGrouping(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	groups := GroupHistory([]Sale{
		saleOn(1, day.Add(8*time.Hour)),
		saleOn(2, day.Add(19*time.Hour)),
	})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Sales, 2)
}

func TestGroupHistoryDoesNotMutateInput(t *testing.T) {
	jan3 := time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local)
	jan5 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)
	history := []Sale{saleOn(1, jan3), saleOn(2, jan5)}

	GroupHistory(history)

	assert.Equal(t, int64(1), history[0].ID, "input order must be untouched")
	assert.Equal(t, int64(2), history[1].ID)
}

func TestRenderHistoryEmpty(t *testing.T) {
	var b strings.Builder
	RenderHistory(&b, nil)
	assert.Equal(t, "Nenhuma venda finalizada ainda.\n", b.String())
}

func TestRenderHistoryShowsRollups(t *testing.T) {
	jan5 := time.Date(2024, 1, 5, 14, 30, 22, 0, time.Local)
	sale := saleOn(12, jan5, racaoItem(), Item{
		ID:           2,
		ProductName:  "Isca",
		Quantity:     dec("3"),
		QuantityUnit: UnitUnidade,
		UnitPrice:    dec("5.00"),
		Subtotal:     dec("15.00"),
	})

	var b strings.Builder
	RenderHistory(&b, GroupHistory([]Sale{sale}))
	out := b.String()

	assert.Contains(t, out, "Vendas de 05/01/2024")
	assert.Contains(t, out, "Venda #12")
	assert.Contains(t, out, "5 de janeiro de 2024, 14:30:22")
	assert.Contains(t, out, "Total: R$ 106,00")
	assert.Contains(t, out, "Ração 10kg (2kg)")
	assert.Contains(t, out, "Isca (3x)")
	assert.Contains(t, out, "R$ 15,00")
}
