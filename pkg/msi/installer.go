// pkg/msi/installer.go - the native installer boundary.

package msi

import (
	"fmt"
	"strings"
)

// AllUsersSID makes enumeration cover every user account on the machine
// instead of only the calling user.
const AllUsersSID = "s-1-1-0"

// InstallContext is the MSIINSTALLCONTEXT bitmask.
type InstallContext uint32

const (
	ContextNone          InstallContext = 0
	ContextUserManaged   InstallContext = 1
	ContextUserUnmanaged InstallContext = 2
	ContextMachine       InstallContext = 4
	ContextAll           InstallContext = ContextUserManaged | ContextUserUnmanaged | ContextMachine
)

var contextNames = []struct {
	ctx  InstallContext
	name string
}{
	{ContextUserManaged, "userManaged"},
	{ContextUserUnmanaged, "userUnmanaged"},
	{ContextMachine, "machine"},
}

// String returns "all", a single context name, or names joined with "|".
func (c InstallContext) String() string {
	if c == ContextAll {
		return "all"
	}
	if c == ContextNone {
		return "none"
	}
	var parts []string
	for _, n := range contextNames {
		if c&n.ctx != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := c &^ ContextAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseInstallContext accepts "all", a context name, or several joined with
// "|" or ",". Matching is case-insensitive. An empty string means all.
func ParseInstallContext(s string) (InstallContext, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return ContextAll, nil
	}
	var ctx InstallContext
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(part)
		found := false
		for _, n := range contextNames {
			if strings.EqualFold(part, n.name) {
				ctx |= n.ctx
				found = true
				break
			}
		}
		if !found {
			return ContextNone, fmt.Errorf("unknown install context %q", part)
		}
	}
	return ctx, nil
}

// Installer is the pair of native calls the package is built on.
//
// EnumProducts mirrors MsiEnumProductsEx for all products: it writes the
// product code at index into code and, when installed is non-nil, the
// context the product is installed in.
//
// GetProductInfo mirrors MsiGetProductInfo. With buf == nil and *length == 0
// it only reports the value length (in code units, terminator excluded).
// Otherwise *length holds the capacity of buf on input.
type Installer interface {
	EnumProducts(userSID string, filter InstallContext, index uint32, code *[ProductCodeBufferLen]uint16, installed *InstallContext) Status
	GetProductInfo(product string, property Property, buf []uint16, length *uint32) Status
}
