package contract

import (
	"math"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Invariant is a named cross-field relation expected to hold on a response body.
type Invariant struct {
	Description string
	Holds       func(ldvalue.Value) bool
}

// Check applies the invariant with AssertInvariant.
func (i Invariant) Check(body ldvalue.Value) error {
	return AssertInvariant(body, i.Holds, i.Description)
}

// Each line total is rounded to cents by the API, so sums may drift by up to a cent per line.
const centTolerance = 0.01

var (
	// DiscountNotAboveTotal holds if discountedTotal <= total.
	DiscountNotAboveTotal = Invariant{
		Description: "discountedTotal <= total",
		Holds: func(body ldvalue.Value) bool {
			total, ok1 := number(body, "total")
			discounted, ok2 := number(body, "discountedTotal")
			return ok1 && ok2 && discounted <= total+centTolerance/2
		},
	}

	// TotalMatchesLineItems holds if total == sum(products[i].price * products[i].quantity).
	TotalMatchesLineItems = Invariant{
		Description: "total == sum(products[].price * products[].quantity)",
		Holds: func(body ldvalue.Value) bool {
			total, ok := number(body, "total")
			if !ok {
				return false
			}
			products := body.GetByKey("products")
			sum := 0.0
			for i := 0; i < products.Count(); i++ {
				p := products.GetByIndex(i)
				price, ok1 := number(p, "price")
				qty, ok2 := number(p, "quantity")
				if !ok1 || !ok2 {
					return false
				}
				sum += price * qty
			}
			return math.Abs(total-sum) <= centTolerance*float64(products.Count()+1)
		},
	}

	// TotalQuantityMatchesLineItems holds if totalQuantity == sum(products[].quantity).
	TotalQuantityMatchesLineItems = Invariant{
		Description: "totalQuantity == sum(products[].quantity)",
		Holds: func(body ldvalue.Value) bool {
			totalQty, ok := number(body, "totalQuantity")
			if !ok {
				return false
			}
			products := body.GetByKey("products")
			sum := 0.0
			for i := 0; i < products.Count(); i++ {
				qty, ok := number(products.GetByIndex(i), "quantity")
				if !ok {
					return false
				}
				sum += qty
			}
			return totalQty == sum
		},
	}

	// TotalProductsMatchesLineItems holds if totalProducts == len(products).
	TotalProductsMatchesLineItems = Invariant{
		Description: "totalProducts == len(products)",
		Holds: func(body ldvalue.Value) bool {
			n, ok := number(body, "totalProducts")
			return ok && body.GetByKey("products").Type() == ldvalue.ArrayType &&
				int(n) == body.GetByKey("products").Count()
		},
	}
)

// RatingWithinBounds holds if the numeric field at path is between 0 and 5 inclusive.
func RatingWithinBounds(path string) Invariant {
	return Invariant{
		Description: "0 <= " + path + " <= 5",
		Holds: func(body ldvalue.Value) bool {
			n, ok := number(body, path)
			return ok && Between(0, 5).Contains(n)
		},
	}
}

// CartInvariants are the relations every cart document returned by the API should satisfy.
var CartInvariants = []Invariant{
	DiscountNotAboveTotal,
	TotalMatchesLineItems,
	TotalQuantityMatchesLineItems,
	TotalProductsMatchesLineItems,
}

func number(doc ldvalue.Value, path string) (float64, bool) {
	v, ok := Lookup(doc, path)
	if !ok || !v.IsNumber() {
		return 0, false
	}
	return v.Float64Value(), true
}
