package fixtures

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

type fileYAML struct {
	Fixtures []fixtureYAML `yaml:"fixtures"`
}

type fixtureYAML struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Body    interface{}       `yaml:"body"`
	Headers map[string]string `yaml:"headers"`
	Shape   *shapeYAML        `yaml:"shape"`
}

type shapeYAML struct {
	Statuses     []int                `yaml:"statuses"`
	AnyStatus    bool                 `yaml:"anyStatus"`
	RequiredKeys []string             `yaml:"requiredKeys"`
	ExactKeys    bool                 `yaml:"exactKeys"`
	Types        map[string]string    `yaml:"types"`
	Ranges       map[string]rangeYAML `yaml:"ranges"`
}

type rangeYAML struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

// LoadYAML parses a fixture file:
//
//	fixtures:
//	  - name: updateValidProduct
//	    method: PUT
//	    url: "{{baseURL}}/{{cartId}}"
//	    body: {products: [{id: 1, quantity: 1}]}
//	    shape:
//	      statuses: [200, 404]
//	      requiredKeys: [id, products]
//	      types: {id: number}
//	      ranges: {total: {min: 0}}
func LoadYAML(data []byte) ([]Entry, error) {
	var file fileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture file: %w", err)
	}
	entries := make([]Entry, 0, len(file.Fixtures))
	for _, fy := range file.Fixtures {
		e := Entry{Fixture: Fixture{
			Name:        fy.Name,
			Method:      fy.Method,
			URLTemplate: fy.URL,
			Body:        ldvalue.CopyArbitraryValue(fy.Body),
			Headers:     fy.Headers,
		}}
		if fy.Shape != nil {
			shape, err := fy.Shape.toShape()
			if err != nil {
				return nil, fmt.Errorf("fixture %q: %w", fy.Name, err)
			}
			e.Shape = &shape
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s shapeYAML) toShape() (contract.ExpectedShape, error) {
	shape := contract.ExpectedShape{
		AcceptableStatuses: contract.Statuses(s.Statuses...),
		RequiredKeys:       s.RequiredKeys,
		ExactKeys:          s.ExactKeys,
	}
	if s.AnyStatus {
		shape.AcceptableStatuses = contract.AnyStatus
	}
	if len(shape.AcceptableStatuses) == 0 {
		return shape, fmt.Errorf("shape has no acceptable statuses")
	}
	if len(s.Types) > 0 {
		shape.FieldTypes = make(map[string]ldvalue.ValueType, len(s.Types))
		for field, name := range s.Types {
			t, err := contract.ParseValueType(name)
			if err != nil {
				return shape, fmt.Errorf("field %q: %w", field, err)
			}
			shape.FieldTypes[field] = t
		}
	}
	if len(s.Ranges) > 0 {
		shape.FieldRanges = make(map[string]contract.Range, len(s.Ranges))
		for field, r := range s.Ranges {
			if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
				return shape, fmt.Errorf("field %q: min %v is above max %v", field, *r.Min, *r.Max)
			}
			shape.FieldRanges[field] = contract.Range{Min: r.Min, Max: r.Max}
		}
	}
	return shape, nil
}
