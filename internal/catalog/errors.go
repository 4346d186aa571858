package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vinoteca/catalog/internal/assets"
	"github.com/vinoteca/catalog/internal/validation"
)

// ValidationFailed maps each failing field to its messages.
type ValidationFailed struct {
	Fields     map[string][]string
	References []*ReferenceNotFound
}

func (e *ValidationFailed) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// Unwrap exposes the reference failures to errors.As.
func (e *ValidationFailed) Unwrap() []error {
	errs := make([]error, 0, len(e.References))
	for _, ref := range e.References {
		errs = append(errs, ref)
	}
	return errs
}

// Add records a message for field.
func (e *ValidationFailed) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// ReferenceNotFound is a foreign key whose target row is missing.
type ReferenceNotFound struct {
	Field string
	Table string
}

func (e *ReferenceNotFound) Error() string {
	return fmt.Sprintf("%s references a missing row in %s", e.Field, e.Table)
}

// NotFound reports a missing record.
type NotFound struct {
	Entity string
	ID     int64
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type (
	InvalidAsset      = assets.InvalidAssetError
	AssetNotFound     = assets.NotFoundError
	AssetStoreFailure = assets.StoreError
)

func fromValidation(verr *validation.Errors) *ValidationFailed {
	out := &ValidationFailed{Fields: verr.Fields}
	for _, ref := range verr.References {
		out.References = append(out.References, &ReferenceNotFound{Field: ref.Field, Table: ref.Table})
	}
	return out
}
