package broadcast

import (
	"encoding/json"
	"hash/fnv"
	"sort"
	"strconv"
)

// Checksum computes a stable FNV-1a hash over phase data, letting
// clients detect a missed update without re-transmitting the whole
// snapshot. Keys are sorted before encoding so map iteration order
// never changes the result. hash/fnv is standard library; no pack
// example wires a dedicated hashing library for this kind of
// lightweight integrity check (see DESIGN.md).
func Checksum(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		encoded, _ := json.Marshal(data[k])
		h.Write(encoded)
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
