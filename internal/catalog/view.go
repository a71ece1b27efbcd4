package catalog

import (
	"strings"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// MaxSuggestions caps the keyword suggestion list.
const MaxSuggestions = 5

// NoResultMessage is rendered in place of the grid when no car matches.
const NoResultMessage = "No cars found."

// Query holds the catalog filter inputs.  Empty fields match everything.
type Query struct {
	Keyword string
	Type    string
	Brand   string
}

// Filter returns the cars matching q.  The keyword is compared
// case-insensitively as a substring of type, brand, model or description;
// type and brand must match exactly.  The input slice is not modified.
func Filter(cars []model.Car, q Query) []model.Car {
	keyword := strings.ToLower(q.Keyword)
	out := make([]model.Car, 0, len(cars))
	for _, c := range cars {
		if keyword != "" && !matchesKeyword(c, keyword) {
			continue
		}
		if q.Type != "" && c.Type != q.Type {
			continue
		}
		if q.Brand != "" && c.Brand != q.Brand {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesKeyword(c model.Car, keyword string) bool {
	for _, field := range []string{c.Type, c.Brand, c.Model, c.Description} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// Suggest returns up to MaxSuggestions distinct type, brand or model values
// containing input (case-insensitive), in catalog order.  An empty input
// yields no suggestions.
func Suggest(cars []model.Car, input string) []string {
	needle := strings.ToLower(input)
	out := []string{}
	if needle == "" {
		return out
	}
	seen := map[string]struct{}{}
	for _, c := range cars {
		for _, field := range []string{c.Type, c.Brand, c.Model} {
			if _, dup := seen[field]; dup {
				continue
			}
			if strings.Contains(strings.ToLower(field), needle) {
				seen[field] = struct{}{}
				out = append(out, field)
				if len(out) == MaxSuggestions {
					return out
				}
			}
		}
	}
	return out
}

// FilterOptions lists the values offered by the type and brand selectors.
type FilterOptions struct {
	Types  []string `json:"types"`
	Brands []string `json:"brands"`
}

// Options collects distinct types and brands in order of first appearance.
func Options(cars []model.Car) FilterOptions {
	opts := FilterOptions{Types: []string{}, Brands: []string{}}
	types := map[string]struct{}{}
	brands := map[string]struct{}{}
	for _, c := range cars {
		if _, ok := types[c.Type]; !ok {
			types[c.Type] = struct{}{}
			opts.Types = append(opts.Types, c.Type)
		}
		if _, ok := brands[c.Brand]; !ok {
			brands[c.Brand] = struct{}{}
			opts.Brands = append(opts.Brands, c.Brand)
		}
	}
	return opts
}

// Card is the rendered form of a car on the catalog page.
type Card struct {
	model.Car
	Title             string `json:"title"`
	AvailabilityLabel string `json:"availability_label"`
	ActionLabel       string `json:"action_label"`
	ActionDisabled    bool   `json:"action_disabled"`
}

// Cards renders one card per car.  Unavailable cars get a disabled action.
func Cards(cars []model.Car) []Card {
	out := make([]Card, 0, len(cars))
	for _, c := range cars {
		card := Card{
			Car:               c,
			Title:             c.Brand + " " + c.Model,
			AvailabilityLabel: "Available",
			ActionLabel:       "Rent",
		}
		if !c.Available {
			card.AvailabilityLabel = "Unavailable"
			card.ActionLabel = "Unavailable"
			card.ActionDisabled = true
		}
		out = append(out, card)
	}
	return out
}

// Find returns the car with the given vin.
func Find(cars []model.Car, vin string) (model.Car, bool) {
	for _, c := range cars {
		if c.VIN == vin {
			return c, true
		}
	}
	return model.Car{}, false
}
