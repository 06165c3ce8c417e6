package classfile

// ClassFile is a fully decoded and validated class. It holds no references
// into the buffer it was decoded from.
type ClassFile struct {
	Version      Version
	ConstantPool *ConstantPool
	AccessFlags  AccessFlags
	Name         string
	// SuperClass is empty only for the root of the class hierarchy.
	SuperClass string
	Interfaces []string
	Fields     []Field
	Methods    []Method
	Deprecated bool
	SourceFile string
}

func (cf *ClassFile) HasSuperClass() bool {
	return cf.SuperClass != ""
}

func (cf *ClassFile) SourceName() string {
	return InternalToSourceName(cf.Name)
}

func (cf *ClassFile) IsClass() bool {
	return !cf.AccessFlags.IsInterface()
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) Field(name string) *Field {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// Method finds a method by name and, when descriptor is not empty, by
// descriptor.
func (cf *ClassFile) Method(name, descriptor string) *Method {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			if descriptor == "" || cf.Methods[i].Descriptor == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

// MethodsNamed returns every overload of name.
func (cf *ClassFile) MethodsNamed(name string) []*Method {
	var methods []*Method
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}
