package metadata

// ArrayMetadata is the element type hint of an annotation. Type and Key hold
// fully qualified type expressions; Key is set for maps only. List is set when
// the annotation described a container rather than a bare type.
type ArrayMetadata struct {
	Type string
	Key  string
	List bool
}

// DocBlock returns the canonical spelling of the hint.
func (m ArrayMetadata) DocBlock() string {
	switch {
	case m.Key != "":
		return "array<" + m.Key + ", " + m.Type + ">"
	case m.List:
		return "array<" + m.Type + ">"
	}

	return m.Type
}

// MethodMetadata holds the annotations of a method or constructor.
type MethodMetadata struct {
	Return     *ArrayMetadata
	Parameters map[string]ArrayMetadata
}

// ClassMetadata holds the annotations found in the source of a type.
type ClassMetadata struct {
	Type       string
	Methods    map[string]*MethodMetadata
	Properties map[string]ArrayMetadata
}

func newClassMetadata(typ string) *ClassMetadata {
	return &ClassMetadata{
		Type:       typ,
		Methods:    make(map[string]*MethodMetadata),
		Properties: make(map[string]ArrayMetadata),
	}
}

// HasMethod reports whether the type itself declares the exported method.
func (c *ClassMetadata) HasMethod(name string) bool {
	_, ok := c.Methods[name]
	return ok
}

// MethodReturnType returns the @return hint of a method, nil when absent.
func (c *ClassMetadata) MethodReturnType(name string) *ArrayMetadata {
	if m, ok := c.Methods[name]; ok {
		return m.Return
	}

	return nil
}

// Property returns the hint of the first name that has one, nil when none
// does. Callers pass the Go field name followed by the property name.
func (c *ClassMetadata) Property(names ...string) *ArrayMetadata {
	for _, name := range names {
		if meta, ok := c.Properties[name]; ok {
			return &meta
		}
	}

	return nil
}

func (c *ClassMetadata) method(name string) *MethodMetadata {
	m, ok := c.Methods[name]
	if !ok {
		m = &MethodMetadata{Parameters: make(map[string]ArrayMetadata)}
		c.Methods[name] = m
	}

	return m
}
