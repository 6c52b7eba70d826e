package symbols

// Type is a language type. Identity is the qualified name; two types
// are the same object, not merely structurally equal.
type Type struct {
	Name    string
	Native  bool // provided by the prelude / built in
	Invalid bool // the absorbing error type

	methods    map[string][]*Method
	convertsTo map[*Type]bool
}

// NewType creates a type with no methods and no conversions.
func NewType(name string, native bool) *Type {
	return &Type{
		Name:       name,
		Native:     native,
		methods:    make(map[string][]*Method),
		convertsTo: make(map[*Type]bool),
	}
}

// NewErrorType creates the absorbing placeholder type used after
// diagnosable errors. It converts to and from everything so downstream
// checks stay silent.
func NewErrorType() *Type {
	t := NewType("<error>", false)
	t.Invalid = true
	return t
}

// AddMethod appends a method to the type's overload table.
func (t *Type) AddMethod(m *Method) {
	t.methods[m.Name] = append(t.methods[m.Name], m)
}

// Methods returns the overload set for the given method name. Methods
// are not inherited; only the receiver type's own table is consulted.
func (t *Type) Methods(name string) []*Method {
	return t.methods[name]
}

// RegisterConversion allows an implicit 1-step conversion from t to
// target. The built-in universe registers int to float; no other
// conversion is registered by the compiler.
func (t *Type) RegisterConversion(target *Type) {
	t.convertsTo[target] = true
}

// ConvertsTo reports whether a registered 1-step conversion from t to
// target exists. Chains of conversions are deliberately not searched.
func (t *Type) ConvertsTo(target *Type) bool {
	return t.convertsTo[target]
}

// AssignableTo reports t <: target: identity, error absorption, or a
// registered 1-step conversion.
func (t *Type) AssignableTo(target *Type) bool {
	if t == target {
		return true
	}
	if t.Invalid || target.Invalid {
		return true
	}
	return t.ConvertsTo(target)
}

func (t *Type) String() string {
	return t.Name
}

// LeastUpperBound returns the smallest type both a and b are assignable
// to, or nil when none exists.
func LeastUpperBound(a, b *Type) *Type {
	if a == nil || b == nil {
		return nil
	}
	if a.Invalid {
		return b
	}
	if b.Invalid {
		return a
	}
	if a == b {
		return a
	}
	if a.AssignableTo(b) {
		return b
	}
	if b.AssignableTo(a) {
		return a
	}
	// with 1-step conversions only, a common strict supertype of two
	// unrelated types would not be least; report none
	return nil
}
