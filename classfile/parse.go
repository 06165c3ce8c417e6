package classfile

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("classfile")

func ParseFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

// ParseReader reads rd to the end and decodes the result.
func ParseReader(rd io.Reader) (*ClassFile, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a complete class file. The returned error is always an
// *InvalidClassDataError, an *UnsupportedVersionError or an
// *InvalidTypeDescriptorError; no partially decoded class is returned.
func Parse(data []byte) (*ClassFile, error) {
	cr := &classReader{
		r:  NewByteReader(data),
		cf: &ClassFile{ConstantPool: &ConstantPool{}},
	}
	if err := cr.read(); err != nil {
		return nil, classDataError(err)
	}
	return cr.cf, nil
}

// classReader fills cf in place as it walks the file front to back.
type classReader struct {
	r  *ByteReader
	cf *ClassFile
}

func (cr *classReader) read() error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"magic", cr.readMagic},
		{"version", cr.readVersion},
		{"constant pool", cr.readConstantPool},
		{"access flags", cr.readAccessFlags},
		{"class names", cr.readClassNames},
		{"interfaces", cr.readInterfaces},
		{"fields", cr.readFields},
		{"methods", cr.readMethods},
		{"class attributes", cr.readClassAttributes},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			log.Debugf("decode failed reading %s at offset %d: %s", step.name, cr.r.Offset(), err)
			return err
		}
	}
	log.Debugf("decoded %s: %d fields, %d methods", cr.cf.Name, len(cr.cf.Fields), len(cr.cf.Methods))
	return nil
}

func (cr *classReader) readMagic() error {
	magic := cr.r.ReadU4()
	if cr.r.Err() != nil || magic != Magic {
		return InvalidClassData("invalid magic number")
	}
	return nil
}

func (cr *classReader) readVersion() error {
	minor := cr.r.ReadU2()
	major := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	v, err := NewVersion(major, minor)
	if err != nil {
		return err
	}
	cr.cf.Version = v
	return nil
}

func (cr *classReader) readConstantPool() error {
	count := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	if count == 0 {
		return InvalidClassData("invalid constant pool count: 0")
	}

	cp := cr.cf.ConstantPool
	for i := uint16(1); i < count; i++ {
		tag := ConstantTag(cr.r.ReadU1())
		entry, err := cr.readConstant(tag, i)
		if err != nil {
			return err
		}
		cp.Add(entry)
		if tag.Wide() {
			i++
		}
	}
	log.Debugf("read constant pool: %d slots", cp.Len())
	return nil
}

func (cr *classReader) readConstant(tag ConstantTag, index uint16) (ConstantPoolEntry, error) {
	r := cr.r
	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := r.ReadU2()
		entry = &ConstantUtf8Info{Value: r.ReadModifiedUTF8(int(length))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: r.ReadI4()}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: r.ReadF4()}
	case ConstantLong:
		entry = &ConstantLongInfo{Value: r.ReadI8()}
	case ConstantDouble:
		entry = &ConstantDoubleInfo{Value: r.ReadF8()}
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.ReadU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.ReadU2()}
	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{ClassIndex: r.ReadU2(), NameAndTypeIndex: r.ReadU2()}
	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{ClassIndex: r.ReadU2(), NameAndTypeIndex: r.ReadU2()}
	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{ClassIndex: r.ReadU2(), NameAndTypeIndex: r.ReadU2()}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{NameIndex: r.ReadU2(), DescriptorIndex: r.ReadU2()}
	default:
		if r.Err() != nil {
			return nil, r.Err()
		}
		log.Warningf("invalid entry in constant pool at index %d tag %d", index, uint8(tag))
		return nil, InvalidClassData("unknown constant type 0x%X at index %d", uint8(tag), index)
	}
	if r.Err() != nil {
		return nil, r.Err()
	}
	return entry, nil
}

func (cr *classReader) readAccessFlags() error {
	flags := AccessFlags(cr.r.ReadU2())
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	if !flags.Valid(ClassFlags) {
		return InvalidClassData("invalid class flags: %d", uint16(flags))
	}
	cr.cf.AccessFlags = flags
	return nil
}

func (cr *classReader) readClassNames() error {
	thisClass := cr.r.ReadU2()
	superClass := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}

	name, err := cr.cf.ConstantPool.ClassName(thisClass)
	if err != nil {
		return err
	}
	cr.cf.Name = name

	if superClass == 0 {
		return nil
	}
	if cr.cf.SuperClass, err = cr.cf.ConstantPool.ClassName(superClass); err != nil {
		return err
	}
	return nil
}

func (cr *classReader) readInterfaces() error {
	count := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	cr.cf.Interfaces = make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		index := cr.r.ReadU2()
		if cr.r.Err() != nil {
			return cr.r.Err()
		}
		name, err := cr.cf.ConstantPool.ClassName(index)
		if err != nil {
			return err
		}
		cr.cf.Interfaces = append(cr.cf.Interfaces, name)
	}
	return nil
}

// readMember reads the header shared by fields and methods: flags, name,
// descriptor and the raw attribute list.
func (cr *classReader) readMember(kind FlagKind) (AccessFlags, string, string, []Attribute, error) {
	flags := AccessFlags(cr.r.ReadU2())
	nameIndex := cr.r.ReadU2()
	descriptorIndex := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return 0, "", "", nil, cr.r.Err()
	}
	if !flags.Valid(kind) {
		return 0, "", "", nil, InvalidClassData("invalid %s flags: %#x", kind, uint16(flags))
	}

	cp := cr.cf.ConstantPool
	name, err := cp.Utf8(nameIndex)
	if err != nil {
		return 0, "", "", nil, err
	}
	descriptor, err := cp.Utf8(descriptorIndex)
	if err != nil {
		return 0, "", "", nil, err
	}
	attrs, err := readAttributes(cr.r, cp)
	if err != nil {
		return 0, "", "", nil, err
	}
	return flags, name, descriptor, attrs, nil
}

func (cr *classReader) readFields() error {
	count := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	cr.cf.Fields = make([]Field, 0, count)
	for i := uint16(0); i < count; i++ {
		field, err := cr.readField()
		if err != nil {
			return err
		}
		cr.cf.Fields = append(cr.cf.Fields, field)
	}
	return nil
}

func (cr *classReader) readField() (Field, error) {
	flags, name, descriptor, attrs, err := cr.readMember(FieldFlags)
	if err != nil {
		return Field{}, err
	}
	ft, err := ParseFieldType(descriptor)
	if err != nil {
		return Field{}, err
	}

	field := Field{
		AccessFlags: flags,
		Name:        name,
		Type:        ft,
		Deprecated:  hasAttribute(attrs, AttrDeprecated),
	}
	if a, ok := findAttribute(attrs, AttrConstantValue); ok {
		if field.ConstantValue, err = parseConstantValueAttribute(a.Data, cr.cf.ConstantPool); err != nil {
			return Field{}, err
		}
	}
	return field, nil
}

func (cr *classReader) readMethods() error {
	count := cr.r.ReadU2()
	if cr.r.Err() != nil {
		return cr.r.Err()
	}
	cr.cf.Methods = make([]Method, 0, count)
	for i := uint16(0); i < count; i++ {
		method, err := cr.readMethod()
		if err != nil {
			return err
		}
		cr.cf.Methods = append(cr.cf.Methods, method)
	}
	return nil
}

func (cr *classReader) readMethod() (Method, error) {
	flags, name, descriptor, attrs, err := cr.readMember(MethodFlags)
	if err != nil {
		return Method{}, err
	}
	md, err := ParseMethodDescriptor(descriptor)
	if err != nil {
		return Method{}, err
	}

	method := Method{
		AccessFlags:      flags,
		Name:             name,
		Descriptor:       descriptor,
		ParsedDescriptor: md,
		Attributes:       attrs,
		Deprecated:       hasAttribute(attrs, AttrDeprecated),
		ThrownExceptions: []string{},
	}

	cp := cr.cf.ConstantPool
	if method.HasCode() {
		a, ok := findAttribute(attrs, AttrCode)
		if !ok {
			return Method{}, InvalidClassData("method %s is missing code attribute", name)
		}
		if method.Code, err = parseCodeAttribute(a.Data, cp); err != nil {
			return Method{}, err
		}
	}
	if a, ok := findAttribute(attrs, AttrExceptions); ok {
		if method.ThrownExceptions, err = parseExceptionsAttribute(a.Data, cp); err != nil {
			return Method{}, err
		}
	}
	return method, nil
}

func (cr *classReader) readClassAttributes() error {
	attrs, err := readAttributes(cr.r, cr.cf.ConstantPool)
	if err != nil {
		return err
	}
	cr.cf.Deprecated = hasAttribute(attrs, AttrDeprecated)
	if a, ok := findAttribute(attrs, AttrSourceFile); ok {
		if cr.cf.SourceFile, err = parseSourceFileAttribute(a.Data, cr.cf.ConstantPool); err != nil {
			return err
		}
	}
	if n := cr.r.Remaining(); n > 0 {
		log.Debugf("ignoring %d trailing bytes after class attributes", n)
	}
	return nil
}
