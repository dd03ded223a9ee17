// pkg/msi/property.go - reading installed-product properties.

package msi

import "github.com/windowsadmins/msiquery/pkg/logging"

// TryGetProperty reads prop for the product. It never returns an error: the
// status says whether value is valid.
//
// The value length is unknown up front, so the installer is asked twice:
// first with no buffer to learn the length, then with a buffer one unit
// larger for the terminator. If the first call fails the second is not made.
func (c *Client) TryGetProperty(code ProductCode, prop Property) (string, Status) {
	product := code.String()

	var length uint32
	status := c.installer.GetProductInfo(product, prop, nil, &length)
	if status != StatusSuccess {
		return "", status
	}

	length++
	buf := make([]uint16, length)
	status = c.installer.GetProductInfo(product, prop, buf, &length)
	if status != StatusSuccess {
		// StatusMoreData here means the value grew between the two calls.
		return "", status
	}

	return utf16ToString(buf), StatusSuccess
}

// GetProperty is TryGetProperty with any non-success status returned as a
// *StatusError.
func (c *Client) GetProperty(code ProductCode, prop Property) (string, error) {
	value, status := c.TryGetProperty(code, prop)
	if status != StatusSuccess {
		return "", &StatusError{Op: "GetProperty", Product: code, Property: prop, Status: status}
	}
	return value, nil
}

// HasProperty reports whether the length probe for prop succeeds. The value
// itself is never read.
func (c *Client) HasProperty(code ProductCode, prop Property) bool {
	var length uint32
	return c.installer.GetProductInfo(code.String(), prop, nil, &length) == StatusSuccess
}

// GetProperties reads several properties of one product. Properties the
// product does not define are left out of the result; any other failure
// stops the read and is returned.
func (c *Client) GetProperties(code ProductCode, props ...Property) (map[Property]string, error) {
	values := make(map[Property]string, len(props))
	for _, prop := range props {
		value, status := c.TryGetProperty(code, prop)
		switch status.Kind() {
		case KindSuccess:
			values[prop] = value
		case KindUnknownProperty:
			logging.Debug("Property not set", "product", code.String(), "property", string(prop))
		default:
			return values, &StatusError{Op: "GetProperties", Product: code, Property: prop, Status: status}
		}
	}
	return values, nil
}
