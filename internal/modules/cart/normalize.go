package cart

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize coerces raw session values into canonical entries. Three
// shapes occur in the wild: a proper entry object, an entry object with
// stringly-typed numbers, and a legacy bare number meaning "quantity".
// Nothing here ever fails; bad data degrades to safe defaults.
func Normalize(raw map[string]json.RawMessage) map[string]Entry {
	entries := make(map[string]Entry, len(raw))
	for key, value := range raw {
		entries[key] = normalizeValue(key, value)
	}
	return entries
}

func normalizeValue(key string, value json.RawMessage) Entry {
	trimmed := bytes.TrimSpace(value)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var rec struct {
			Name      interface{} `json:"name"`
			UnitPrice interface{} `json:"unit_price"`
			Quantity  interface{} `json:"quantity"`
		}
		if err := json.Unmarshal(trimmed, &rec); err == nil {
			name := coerceString(rec.Name)
			if name == "" {
				name = defaultName(key)
			}
			return Entry{
				Name:      name,
				UnitPrice: coerceFloat(rec.UnitPrice, 0),
				Quantity:  clampQuantity(coerceInt(rec.Quantity, 1)),
			}
		}
	}

	// Legacy scalar value, probably just a quantity.
	qty := 1
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		qty = int(n)
	}
	return Entry{
		Name:      defaultName(key),
		UnitPrice: 0,
		Quantity:  clampQuantity(qty),
	}
}

func defaultName(key string) string { return "Item " + key }

func clampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceInt(v interface{}, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f)
		}
	}
	return def
}

func coerceFloat(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}
