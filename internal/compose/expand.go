// internal/compose/expand.go
package compose

import "pos-print-service/internal/model"

// ExpandItems flattens a cart into individual unit lines before composition.
// A menu line with quantity q and k sub-products yields q*k lines, a plain
// line with quantity q yields q lines, all with quantity 1 and in the
// relative order of the input.
func ExpandItems(items []model.CartLine) []model.CartLine {
	expanded := make([]model.CartLine, 0, len(items))

	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		if item.IsMenu() {
			for i := 0; i < quantity; i++ {
				for _, product := range item.Products {
					expanded = append(expanded, model.CartLine{Name: product, Quantity: 1})
				}
			}
			continue
		}

		for i := 0; i < quantity; i++ {
			expanded = append(expanded, model.CartLine{Name: item.Name, Quantity: 1})
		}
	}

	return expanded
}
