package classfile

type Field struct {
	AccessFlags AccessFlags
	Name        string
	Type        FieldType
	// ConstantValue is nil unless the field carries a ConstantValue attribute.
	ConstantValue ConstantValue
	Deprecated    bool
}

// Descriptor is the field's type in descriptor syntax.
func (f *Field) Descriptor() string {
	return f.Type.Descriptor()
}

func (f *Field) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *Field) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *Field) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *Field) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *Field) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *Field) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *Field) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *Field) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *Field) IsEnum() bool      { return f.AccessFlags.IsEnum() }
