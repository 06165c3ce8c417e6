package classfile

type Method struct {
	AccessFlags      AccessFlags
	Name             string
	Descriptor       string
	ParsedDescriptor MethodDescriptor
	// Attributes are all of the method's attributes, undecoded.
	Attributes []Attribute
	// Code is nil exactly when the method is native or abstract.
	Code             *Code
	Deprecated       bool
	ThrownExceptions []string
}

func (m *Method) Attribute(name string) (Attribute, bool) {
	return findAttribute(m.Attributes, name)
}

func (m *Method) IsPublic() bool       { return m.AccessFlags.IsPublic() }
func (m *Method) IsPrivate() bool      { return m.AccessFlags.IsPrivate() }
func (m *Method) IsProtected() bool    { return m.AccessFlags.IsProtected() }
func (m *Method) IsStatic() bool       { return m.AccessFlags.IsStatic() }
func (m *Method) IsFinal() bool        { return m.AccessFlags.IsFinal() }
func (m *Method) IsSynchronized() bool { return m.AccessFlags.IsSynchronized() }
func (m *Method) IsBridge() bool       { return m.AccessFlags.IsBridge() }
func (m *Method) IsVarargs() bool      { return m.AccessFlags.IsVarargs() }
func (m *Method) IsNative() bool       { return m.AccessFlags.IsNative() }
func (m *Method) IsAbstract() bool     { return m.AccessFlags.IsAbstract() }
func (m *Method) IsStrict() bool       { return m.AccessFlags.IsStrict() }
func (m *Method) IsSynthetic() bool    { return m.AccessFlags.IsSynthetic() }

func (m *Method) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *Method) IsStaticInitializer() bool {
	return m.Name == "<clinit>"
}

// HasCode reports whether the method must carry a Code attribute.
func (m *Method) HasCode() bool {
	return !m.IsNative() && !m.IsAbstract()
}
