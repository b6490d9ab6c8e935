package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/slingshot-dev/slingshot/internal/coerce"
)

// JSONFile reads a hosted-API page dump: a JSON array of objects, or an
// object whose "data" member is such an array (the envelope the hosted
// systems paginate with). Each object becomes one bag; nested objects are
// flattened with dotted keys, arrays with dotted indexes, so mapping
// columns can address "campus.name" or "addresses.0.city".
func JSONFile(path string) ([]coerce.Bag, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		if envErr := json.Unmarshal(raw, &envelope); envErr != nil || envelope.Data == nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		items = envelope.Data
	}

	bags := make([]coerce.Bag, 0, len(items))
	for _, item := range items {
		bag := coerce.Bag{}
		flatten("", item, bag)
		bags = append(bags, bag)
	}
	return bags, nil
}

func flatten(prefix string, v any, bag coerce.Bag) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			flatten(join(prefix, k), child, bag)
		}
	case []any:
		for i, child := range val {
			flatten(join(prefix, strconv.Itoa(i)), child, bag)
		}
	case nil:
		// absent key, same as a missing column
	case string:
		bag[prefix] = val
	case bool:
		bag[prefix] = strconv.FormatBool(val)
	case json.Number:
		bag[prefix] = val.String()
	case float64:
		// encoding/json decodes all numbers as float64; format without
		// exponent so ids and amounts survive coercion.
		bag[prefix] = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		bag[prefix] = fmt.Sprint(val)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
