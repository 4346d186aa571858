package assets

import (
	"fmt"
)

// InvalidAssetError rejects an upload that breaks the type or size limits.
type InvalidAssetError struct {
	Reason string
}

func (e *InvalidAssetError) Error() string {
	return "invalid asset: " + e.Reason
}

// NotFoundError reports a reference with no stored content.
type NotFoundError struct {
	Ref Ref
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset %q not found", string(e.Ref))
}

// StoreError wraps a backend failure. The operation did not take effect.
type StoreError struct {
	Op  string
	Ref Ref
	Err error
}

func (e *StoreError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("asset store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("asset store %s %q: %v", e.Op, string(e.Ref), e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
