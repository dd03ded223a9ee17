// pkg/msi/product.go - product codes and well-known product properties.

package msi

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/google/uuid"
)

// ProductCodeBufferLen is the size in UTF-16 code units of the buffer the
// installer writes a product code into: 38 visible characters plus the
// terminator.
const ProductCodeBufferLen = 39

const (
	bracedCodeLen = ProductCodeBufferLen - 1
	bareCodeLen   = bracedCodeLen - 2
)

// ProductCode identifies one installed product.
type ProductCode uuid.UUID

// ParseProductCode parses a product code in braced
// ({XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}) or bare form.
// Trailing NUL padding is ignored.
func ParseProductCode(s string) (ProductCode, error) {
	s = strings.TrimRight(s, "\x00")
	switch len(s) {
	case bracedCodeLen:
		if s[0] != '{' || s[len(s)-1] != '}' {
			return ProductCode{}, fmt.Errorf("invalid product code %q: expected surrounding braces", s)
		}
		s = s[1 : len(s)-1]
	case bareCodeLen:
	default:
		return ProductCode{}, fmt.Errorf("invalid product code %q: unexpected length %d", s, len(s))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return ProductCode{}, fmt.Errorf("invalid product code %q: %w", s, err)
	}
	return ProductCode(u), nil
}

// MustParseProductCode is like ParseProductCode but panics on error.
func MustParseProductCode(s string) ProductCode {
	pc, err := ParseProductCode(s)
	if err != nil {
		panic(err)
	}
	return pc
}

// String returns the braced, upper-case form the installer API expects.
func (p ProductCode) String() string {
	return "{" + strings.ToUpper(uuid.UUID(p).String()) + "}"
}

// IsZero reports whether p is the all-zero code.
func (p ProductCode) IsZero() bool {
	return p == ProductCode{}
}

// MarshalText implements encoding.TextMarshaler.
func (p ProductCode) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ProductCode) UnmarshalText(text []byte) error {
	pc, err := ParseProductCode(string(text))
	if err != nil {
		return err
	}
	*p = pc
	return nil
}

// Property names an installed-product attribute understood by
// MsiGetProductInfo. Names are not validated locally; an unrecognised name
// yields StatusUnknownProperty.
type Property string

// Installed-product properties (INSTALLPROPERTY_* in msi.h).
const (
	PropProductName      Property = "ProductName"
	PropVersionString    Property = "VersionString"
	PropVersion          Property = "Version"
	PropVersionMajor     Property = "VersionMajor"
	PropVersionMinor     Property = "VersionMinor"
	PropPublisher        Property = "Publisher"
	PropInstallDate      Property = "InstallDate"
	PropInstallLocation  Property = "InstallLocation"
	PropInstallSource    Property = "InstallSource"
	PropLocalPackage     Property = "LocalPackage"
	PropAssignmentType   Property = "AssignmentType"
	PropLanguage         Property = "Language"
	PropHelpLink         Property = "HelpLink"
	PropURLInfoAbout     Property = "URLInfoAbout"
	PropPackageName      Property = "PackageName"
	PropInstalledProduct Property = "InstalledProductName"
)

// utf16ToString decodes a native buffer and strips trailing NUL padding.
func utf16ToString(buf []uint16) string {
	return strings.TrimRight(string(utf16.Decode(buf)), "\x00")
}
