// Package servicedef defines the JSON documents exchanged with the cart API.
package servicedef

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type Cart struct {
	ID              int           `json:"id"`
	Products        []CartProduct `json:"products"`
	Total           float64       `json:"total"`
	DiscountedTotal float64       `json:"discountedTotal"`
	UserID          int           `json:"userId"`
	TotalProducts   int           `json:"totalProducts"`
	TotalQuantity   int           `json:"totalQuantity"`
}

type CartProduct struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Total              float64 `json:"total"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountedTotal    float64 `json:"discountedTotal"`
	Thumbnail          string  `json:"thumbnail"`
}

// DeletedCart is the response to deleting a cart.
type DeletedCart struct {
	Cart
	IsDeleted bool   `json:"isDeleted"`
	DeletedOn string `json:"deletedOn"`
}

// CartPayload is the body of a create or update request.
type CartPayload struct {
	UserID   ldvalue.OptionalInt `json:"userId,omitempty"`
	Products []ProductLine       `json:"products"`
	Merge    bool                `json:"merge,omitempty"`
}

type ProductLine struct {
	ID                 int      `json:"id"`
	Quantity           int      `json:"quantity"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
}

// Product returns a single product line payload.
func Product(id, quantity int) CartPayload {
	return CartPayload{Products: []ProductLine{{ID: id, Quantity: quantity}}}
}

// AsValue converts the payload to a request body.
func (p CartPayload) AsValue() ldvalue.Value {
	obj := ldvalue.ObjectBuild()
	if p.UserID.IsDefined() {
		obj.Set("userId", ldvalue.Int(p.UserID.IntValue()))
	}
	lines := ldvalue.ArrayBuildWithCapacity(len(p.Products))
	for _, line := range p.Products {
		lineObj := ldvalue.ObjectBuild().
			Set("id", ldvalue.Int(line.ID)).
			Set("quantity", ldvalue.Int(line.Quantity))
		if line.DiscountPercentage != nil {
			lineObj.Set("discountPercentage", ldvalue.Float64(*line.DiscountPercentage))
		}
		lines.Add(lineObj.Build())
	}
	obj.Set("products", lines.Build())
	if p.Merge {
		obj.Set("merge", ldvalue.Bool(true))
	}
	return obj.Build()
}

// ParseCart decodes a response body as a cart.
func ParseCart(body ldvalue.Value) (Cart, error) {
	var c Cart
	if err := json.Unmarshal([]byte(body.JSONString()), &c); err != nil {
		return Cart{}, fmt.Errorf("malformed cart: %w", err)
	}
	return c, nil
}

// Product returns the line with the given product id, if present.
func (c Cart) Product(id int) (CartProduct, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return CartProduct{}, false
}
