package config

// Field names a section of a configuration dump ("!<xpon>" ... "!</xpon>").
type Field string

// Sections found in ZTE dumps. Any other name is accepted and kept as is.
const (
	FieldRaw    Field = "raw"
	FieldXpon   Field = "xpon"
	FieldIfIntf Field = "if-intf"
	FieldMSAN   Field = "MSAN"
)

// DefaultField receives commands that are not inside any section.
const DefaultField = FieldRaw

// Known reports whether f is one of the sections the tool understands.
func (f Field) Known() bool {
	switch f {
	case FieldRaw, FieldXpon, FieldIfIntf, FieldMSAN:
		return true
	}
	return false
}

func (f Field) String() string {
	return string(f)
}

func (f Field) open() string  { return "!<" + string(f) + ">" }
func (f Field) close() string { return "!</" + string(f) + ">" }
