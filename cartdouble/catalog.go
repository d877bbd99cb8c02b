package cartdouble

import (
	"fmt"
	"math"

	"github.com/deliveryqa/cart-contract-tests/servicedef"
)

// Every positive product id exists. Prices and discounts are derived from the id so that
// responses are reproducible.
func catalogPrice(id int) float64 {
	return round2(4.99 + float64(id%40)*2.5)
}

func catalogDiscount(id int) float64 {
	return float64(id%15) + 0.5
}

func productLine(id, quantity int, discount *float64) servicedef.CartProduct {
	price := catalogPrice(id)
	d := catalogDiscount(id)
	if discount != nil {
		d = *discount
	}
	total := round2(price * float64(quantity))
	return servicedef.CartProduct{
		ID:                 id,
		Title:              fmt.Sprintf("Product %d", id),
		Price:              price,
		Quantity:           quantity,
		Total:              total,
		DiscountPercentage: d,
		DiscountedTotal:    round2(total * (1 - d/100)),
		Thumbnail:          fmt.Sprintf("https://cdn.dummyjson.com/products/images/%d/thumbnail.png", id),
	}
}

// withTotals recomputes the cart-level fields from the product lines.
func withTotals(c servicedef.Cart) servicedef.Cart {
	c.Total, c.DiscountedTotal, c.TotalQuantity = 0, 0, 0
	for _, p := range c.Products {
		c.Total += p.Total
		c.DiscountedTotal += p.DiscountedTotal
		c.TotalQuantity += p.Quantity
	}
	c.Total = round2(c.Total)
	c.DiscountedTotal = round2(c.DiscountedTotal)
	c.TotalProducts = len(c.Products)
	if c.Products == nil {
		c.Products = []servicedef.CartProduct{}
	}
	return c
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
