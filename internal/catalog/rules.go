package catalog

import (
	v "github.com/vinoteca/catalog/internal/validation"
)

var DenominationRules = v.Rules{
	v.Field("nombre", v.Required(), v.String(), v.MaxLen(255)),
	v.Field("descripcion", v.Required(), v.String(), v.MaxLen(1000)),
}

var TypeRules = v.Rules{
	v.Field("nombre", v.Required(), v.String(), v.MaxLen(255)),
	v.Field("descripcion", v.Required(), v.String(), v.MaxLen(1000)),
}

// ProductRules applies to both create and update. The image is
// handled apart from the field map.
var ProductRules = v.Rules{
	v.Field("nombre", v.Required(), v.String(), v.MaxLen(255)),
	v.Field("bodega", v.Nullable(), v.String(), v.MaxLen(255)),
	v.Field("descripcion", v.Required(), v.String()),
	v.Field("maridaje", v.Required(), v.String()),
	v.Field("precio", v.Required(), v.Number(), v.Min(0)),
	v.Field("graduacion", v.Required(), v.Number(), v.Range(0, 100)),
	v.Field("ano", v.Nullable(), v.Integer()),
	v.Field("sabor", v.Nullable(), v.String(), v.MaxLen(255)),
	v.Field("tipo_id", v.Required(), v.Exists("tipos")),
	v.Field("denominacion_id", v.Required(), v.Exists("denominaciones")),
}
