package design

import (
	"github.com/kasuganosora/designstore/pkg/variant"
	deepcopy "github.com/tiendc/go-deepcopy"
)

// deepCopyAttributes clones every entry of src into dst using go-deepcopy.
// Variant is an immutable value type, so a shallow per-key copy would be
// sufficient; deepcopy.Copy is used regardless, falling back to the plain
// value if the copy fails. Its only caller is TransientObject.toSnapshot.
func deepCopyAttributes(src map[string]variant.Variant, dst map[string]variant.Variant) {
	for k, v := range src {
		var cloned variant.Variant
		if err := deepcopy.Copy(&cloned, &v); err != nil {
			cloned = v
		}
		dst[k] = cloned
	}
}
