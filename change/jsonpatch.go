package change

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// JSONPatch renders c as an RFC 6902 patch in replay order. Every path is
// prefixed with root, a JSON pointer to the array holding the collection
// ("" when the document is the array itself). Elements are marshalled with
// encoding/json; section slots marshal as nested arrays.
func JSONPatch[E any](c Deep[E], root string) ([]byte, error) {
	removes, inserts := deepBatch(c)
	ops := make([]map[string]any, 0, len(removes)+len(inserts))
	for _, r := range removes {
		ops = append(ops, map[string]any{"op": "remove", "path": root + r.path.Pointer()})
	}
	for _, in := range inserts {
		ops = append(ops, map[string]any{"op": "add", "path": root + in.path.Pointer(), "value": in.element})
	}
	d, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("error encoding patch for %s: %w", c, err)
	}
	return d, nil
}

// ApplyJSONPatch applies an RFC 6902 patch to a JSON document.
func ApplyJSONPatch(doc, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	return ops.Apply(doc)
}
