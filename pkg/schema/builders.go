package schema

// ScalarField declares a scalar field with an optional format hint.
func ScalarField(name, typ string, format ...string) Field {
	scalar := Scalar{Type: typ}
	if len(format) > 0 {
		scalar.Format = format[0]
	}
	return Field{Name: name, Kind: scalar}
}

// StringField declares a text field.
func StringField(name string) Field {
	return ScalarField(name, TypeString)
}

// IntegerField declares an integer field.
func IntegerField(name string) Field {
	return ScalarField(name, TypeInteger)
}

// NumberField declares a decimal field.
func NumberField(name string) Field {
	return ScalarField(name, TypeNumber)
}

// BooleanField declares a boolean field.
func BooleanField(name string) Field {
	return ScalarField(name, TypeBoolean)
}

// NestedField declares a singular nested schema.
func NestedField(name string, def *Definition) Field {
	return Field{Name: name, Kind: Nested{Definition: def}}
}

// ManyField declares a sequence of nested schema items.
func ManyField(name string, def *Definition) Field {
	return Field{Name: name, Kind: NestedMany{Definition: def}}
}

// ListField declares a sequence of non-nested items.
func ListField(name string, item Kind) Field {
	return Field{Name: name, Kind: List{Item: item}}
}
