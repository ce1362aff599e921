package store

import "encoding/json"

// entryOverhead approximates the map slot, entry struct and list element.
const entryOverhead = 96

// Sizer estimates how many bytes an entry occupies.
type Sizer func(key string, value any) int64

// EstimateSize charges the key, a fixed overhead and the JSON-encoded length
// of value. Byte slices and strings are charged at their length.
func EstimateSize(key string, value any) int64 {
	n := int64(len(key) + entryOverhead)
	switch v := value.(type) {
	case nil:
		return n
	case []byte:
		return n + int64(len(v))
	case string:
		return n + int64(len(v))
	}
	b, err := json.Marshal(value)
	if err != nil {
		return n
	}
	return n + int64(len(b))
}
