// Package examples generates representative example payloads from schema
// definitions, suitable for embedding in API documentation.
//
// Each scalar field is resolved through a TypeMap keyed by (type, format):
// the specific entry wins, then the type's general entry, then Fallback.
// Nested definitions are generated recursively; "many" fields always render
// as a one-element slice. Identifier and date/time examples are volatile:
// they use fixed placeholders unless WithRenewTypeValue is set, in which case
// one fresh snapshot (uuid and instant) is taken per Generate call.
//
//	cars := schema.NewDefinition("PersonCars",
//		schema.StringField("car_name"),
//		schema.IntegerField("car_price"),
//	)
//	person := schema.NewDefinition("Person",
//		schema.StringField("name"),
//		schema.ManyField("cars", cars),
//	)
//	obj, err := examples.Generate(person)
//	// {"name":"string","cars":[{"car_name":"string","car_price":1}]}
package examples
