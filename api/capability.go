package api

// Responder is implemented by response types that describe their success body.
// The body schema is derived from the declared return type of ToResponse,
// refined by an @return annotation on the method's doc comment.
type Responder interface {
	ToResponse() any
}

// Case is one member of an Enum. Value is nil for cases that only carry a
// name.
type Case struct {
	Name  string
	Value any
}

// Enum is implemented by named types with a closed set of cases. Cases must
// not depend on the receiver value: it is called on the zero value.
type Enum interface {
	Cases() []Case
}

// Exampler is implemented by named types that provide an example value for
// their component schema. Like Cases, it is called on the zero value.
//
//	func (Pet) OpenAPIExample() any {
//	    return Pet{Name: "Rex", Species: Dog}
//	}
type Exampler interface {
	OpenAPIExample() any
}
