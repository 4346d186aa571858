package domain

import "time"

// Denomination is a protected designation of origin (D.O.) lookup value
type Denomination struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Nombre      string    `gorm:"size:255;index" json:"nombre" mapstructure:"nombre" csv:"nombre"`
	Descripcion string    `gorm:"size:1000" json:"descripcion" mapstructure:"descripcion" csv:"descripcion"`
	CreatedAt   time.Time `json:"created_at" csv:"-"`
	UpdatedAt   time.Time `json:"updated_at" csv:"-"`
}

// TableName Specify table name
func (Denomination) TableName() string {
	return "denominaciones"
}

// ProductType is a product category lookup value (red, white, sparkling...)
type ProductType struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Nombre      string    `gorm:"size:255;index" json:"nombre" mapstructure:"nombre" csv:"nombre"`
	Descripcion string    `gorm:"size:1000" json:"descripcion" mapstructure:"descripcion" csv:"descripcion"`
	CreatedAt   time.Time `json:"created_at" csv:"-"`
	UpdatedAt   time.Time `json:"updated_at" csv:"-"`
}

// TableName Specify table name
func (ProductType) TableName() string {
	return "tipos"
}

// Product is a catalog item. Bodega is the winery, Maridaje the pairing
// notes, Graduacion the alcohol by volume and Ano the vintage year.
// Imagen holds the storage key of the product image
// (e.g. "images/<uuid>.jpg"), never a URL.
type Product struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Nombre         string    `gorm:"size:255;index" json:"nombre" mapstructure:"nombre" csv:"nombre"`
	Bodega         *string   `gorm:"size:255" json:"bodega" mapstructure:"bodega" csv:"bodega"`
	Descripcion    string    `gorm:"type:text" json:"descripcion" mapstructure:"descripcion" csv:"descripcion"`
	Maridaje       string    `gorm:"type:text" json:"maridaje" mapstructure:"maridaje" csv:"maridaje"`
	Precio         float64   `json:"precio" mapstructure:"precio" csv:"precio"`
	Graduacion     float64   `json:"graduacion" mapstructure:"graduacion" csv:"graduacion"`
	Ano            *int64    `json:"ano" mapstructure:"ano" csv:"ano"`
	Sabor          *string   `gorm:"size:255" json:"sabor" mapstructure:"sabor" csv:"sabor"`
	TipoID         int64     `gorm:"index" json:"tipo_id" mapstructure:"tipo_id" csv:"tipo_id"`
	DenominacionID int64     `gorm:"index" json:"denominacion_id" mapstructure:"denominacion_id" csv:"denominacion_id"`
	Imagen         *string   `gorm:"size:1024" json:"imagen" mapstructure:"-" csv:"imagen"`
	CreatedAt      time.Time `json:"created_at" csv:"-"`
	UpdatedAt      time.Time `json:"updated_at" csv:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "productos"
}

// HasImage reports whether the product references a stored asset
func (p *Product) HasImage() bool {
	return p.Imagen != nil && *p.Imagen != ""
}
