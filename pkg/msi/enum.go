// pkg/msi/enum.go - lazy enumeration of installed products.

package msi

import (
	"iter"
	"runtime"

	"github.com/windowsadmins/msiquery/pkg/logging"
)

const opEnumProducts = "EnumProducts"

// Product is one enumerated product and the context it is installed in.
type Product struct {
	Code    ProductCode
	Context InstallContext
}

// Instances walks the installed products in index order. The walk ends after
// StatusNoMoreItems. Any other failure status ends it with a single terminal
// *StatusError element, unless the client is lenient, in which case it ends
// silently. Entries whose product code cannot be parsed are skipped.
//
// Each call starts a fresh walk from index 0.
func (c *Client) Instances() iter.Seq2[Product, error] {
	return func(yield func(Product, error) bool) {
		// The installer expects every call of one enumeration on the same thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		var code [ProductCodeBufferLen]uint16
		for index := uint32(0); ; index++ {
			code = [ProductCodeBufferLen]uint16{}
			installed := ContextNone

			status := c.installer.EnumProducts(c.userSID, c.context, index, &code, &installed)
			switch status {
			case StatusSuccess:
				raw := utf16ToString(code[:])
				pc, err := ParseProductCode(raw)
				if err != nil {
					logging.Debug("Skipping unparsable product code",
						"index", index,
						"value", raw,
					)
					continue
				}
				if !yield(Product{Code: pc, Context: installed}, nil) {
					return
				}

			case StatusNoMoreItems:
				return

			default:
				if c.lenient {
					logging.Debug("Enumeration stopped on failure status",
						"index", index,
						"status", status.String(),
					)
					return
				}
				yield(Product{}, &StatusError{Op: opEnumProducts, Index: index, Status: status})
				return
			}
		}
	}
}

// Products is Instances without the install context.
func (c *Client) Products() iter.Seq2[ProductCode, error] {
	return func(yield func(ProductCode, error) bool) {
		for p, err := range c.Instances() {
			if !yield(p.Code, err) {
				return
			}
		}
	}
}

// ListProducts collects Products. On a terminal error it returns the codes
// gathered so far together with the error.
func (c *Client) ListProducts() ([]ProductCode, error) {
	var codes []ProductCode
	for pc, err := range c.Products() {
		if err != nil {
			return codes, err
		}
		codes = append(codes, pc)
	}
	return codes, nil
}
