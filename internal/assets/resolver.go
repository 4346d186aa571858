package assets

import (
	"strings"
)

// URLResolver turns stored keys into public URLs.
type URLResolver struct {
	base string
}

func NewURLResolver(base string) *URLResolver {
	return &URLResolver{base: strings.TrimRight(base, "/")}
}

// Resolve returns nil for an empty reference.
func (r *URLResolver) Resolve(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	if Ref(*ref).External() {
		return ref
	}
	u := r.base + "/" + strings.TrimLeft(*ref, "/")
	return &u
}
