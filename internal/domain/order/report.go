package order

import "github.com/shopspring/decimal"

// Revenue folds the totals of the given orders into a single sum. An empty
// sequence yields zero. Because line items carry snapshot prices, the figure
// is stable across catalog price changes.
func Revenue(orders []*Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total())
	}
	return total
}
