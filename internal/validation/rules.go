package validation

// Kind is the value type a field is coerced to.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	default:
		return "any"
	}
}

type constraintKind int

const (
	ckRequired constraintKind = iota
	ckNullable
	ckType
	ckMaxLen
	ckMinLen
	ckRange
	ckMin
	ckEmail
	ckExists
)

// Constraint is one entry of a field's ordered constraint list.
type Constraint struct {
	kind  constraintKind
	typ   Kind
	n     int
	min   float64
	max   float64
	table string
}

func Required() Constraint { return Constraint{kind: ckRequired} }

// Nullable marks a field that may be absent or null; it is stored as nil.
func Nullable() Constraint { return Constraint{kind: ckNullable} }

func String() Constraint  { return Constraint{kind: ckType, typ: KindString} }
func Number() Constraint  { return Constraint{kind: ckType, typ: KindNumber} }
func Integer() Constraint { return Constraint{kind: ckType, typ: KindInteger} }
func Boolean() Constraint { return Constraint{kind: ckType, typ: KindBoolean} }

// MaxLen limits a string to n characters (runes).
func MaxLen(n int) Constraint { return Constraint{kind: ckMaxLen, n: n} }

// MinLen requires at least n characters (runes).
func MinLen(n int) Constraint { return Constraint{kind: ckMinLen, n: n} }

// Range bounds a numeric value to [min, max].
func Range(min, max float64) Constraint { return Constraint{kind: ckRange, min: min, max: max} }

// Min requires a numeric value of at least min.
func Min(min float64) Constraint { return Constraint{kind: ckMin, min: min} }

func Email() Constraint { return Constraint{kind: ckEmail} }

// Exists requires the integer value to be the id of a row in table.
func Exists(table string) Constraint { return Constraint{kind: ckExists, typ: KindInteger, table: table} }

// FieldRule binds a field name to its ordered constraints.
type FieldRule struct {
	Name        string
	Constraints []Constraint
}

// Field builds a FieldRule.
func Field(name string, constraints ...Constraint) FieldRule {
	return FieldRule{Name: name, Constraints: constraints}
}

// Rules is the declarative rule table of one entity.
type Rules []FieldRule

// Names returns the field names in declaration order.
func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}

func (f FieldRule) has(kind constraintKind) bool {
	for _, c := range f.Constraints {
		if c.kind == kind {
			return true
		}
	}
	return false
}

// valueKind reports the declared type of the field. An Exists constraint
// implies an integer when no explicit type is given.
func (f FieldRule) valueKind() Kind {
	for _, c := range f.Constraints {
		if c.kind == ckType {
			return c.typ
		}
	}
	if f.has(ckExists) {
		return KindInteger
	}
	return KindAny
}
