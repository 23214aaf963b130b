package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fintrack"
)

// wrappers are the object fields where a price array is looked for when the
// reply is not a bare array.
var wrappers = []string{"$.prices", "$.stocks", "$.data", "$.results", "$.items"}

// parsePrices decodes a price reply. It accepts a bare array or an object
// wrapping it, numbers or numeric strings as prices, and skips unusable items.
func parsePrices(text string) ([]fintrack.PriceUpdate, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.Trim(text, "`\n ")

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid price reply: %w", err)
	}

	items, ok := root.([]any)
	if !ok {
		for _, path := range wrappers {
			v, err := jsonpath.Get(path, root)
			if err != nil {
				continue
			}
			if items, ok = v.([]any); ok {
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("invalid price reply: no array of prices")
	}

	updates := make([]fintrack.PriceUpdate, 0, len(items))
	for _, item := range items {
		symbol, _ := stringAt(item, "$.symbol")
		if symbol == "" {
			continue
		}
		price, ok := stringAt(item, "$.currentPrice")
		if !ok {
			price, ok = stringAt(item, "$.price")
		}
		if !ok {
			continue
		}
		p, err := fintrack.ParseAmount(strings.ReplaceAll(price, ",", ""))
		if err != nil || p.IsNegative() {
			continue
		}
		name, _ := stringAt(item, "$.name")
		updates = append(updates, fintrack.PriceUpdate{Symbol: symbol, CurrentPrice: p, Name: name})
	}
	return updates, nil
}

// stringAt returns the scalar at path as a string.
func stringAt(obj any, path string) (string, bool) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v), true
	case json.Number:
		return v.String(), true
	case float64:
		return fmt.Sprint(v), true
	}
	return "", false
}
