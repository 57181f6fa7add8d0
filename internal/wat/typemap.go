package wat

// numericType is the single numeric representation every supported IR type
// lowers to. Width and signedness of the source type are deliberately
// discarded; narrower representations are not used.
const numericType = "i64"

// supportedTypes is the closed set of IR type names the backend accepts.
var supportedTypes = map[string]struct{}{
	"bool": {},
	"u8":   {},
	"s8":   {},
	"u32":  {},
	"s32":  {},
	"u64":  {},
	"s64":  {},
}

// MapType converts an IR type name to its target representation.
//
// Every supported type maps to i64. A name outside the supported set,
// including the empty string that marks untyped input, is an
// unknown-type error, never a default.
func MapType(name string) (string, error) {
	if name == "" {
		return "", newUnknownTypeError(name)
	}
	if _, ok := supportedTypes[name]; !ok {
		return "", newUnknownTypeError(name)
	}
	return numericType, nil
}
