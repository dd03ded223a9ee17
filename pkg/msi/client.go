// pkg/msi/client.go - query client for the Windows Installer product database.

// Package msi enumerates installed Windows Installer products and reads their
// properties through MsiEnumProductsEx and MsiGetProductInfo.
package msi

import "iter"

// Client issues installer queries. The zero value is not usable; call New.
// A Client holds no mutable state and may be shared between goroutines.
type Client struct {
	installer Installer
	context   InstallContext
	userSID   string
	lenient   bool
}

// Option configures a Client.
type Option func(*Client)

// WithInstaller replaces the native installer, mainly for tests.
func WithInstaller(in Installer) Option {
	return func(c *Client) {
		c.installer = in
	}
}

// WithContext restricts enumeration to the given install contexts.
func WithContext(ctx InstallContext) Option {
	return func(c *Client) {
		c.context = ctx
	}
}

// WithUserSID selects whose per-user products are enumerated. Use
// AllUsersSID for every account; the default is the calling user.
func WithUserSID(sid string) Option {
	return func(c *Client) {
		c.userSID = sid
	}
}

// WithLenientEnumeration makes enumeration end silently on any failure
// status instead of yielding a terminal error.
func WithLenientEnumeration() Option {
	return func(c *Client) {
		c.lenient = true
	}
}

// New returns a Client using the native installer and all install contexts
// unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		installer: NativeInstaller(),
		context:   ContextAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClient = New()

// Products enumerates installed products with the default client.
func Products() iter.Seq2[ProductCode, error] {
	return defaultClient.Products()
}

// ListProducts collects installed products with the default client.
func ListProducts() ([]ProductCode, error) {
	return defaultClient.ListProducts()
}

// TryGetProperty reads a property with the default client.
func TryGetProperty(code ProductCode, prop Property) (string, Status) {
	return defaultClient.TryGetProperty(code, prop)
}

// GetProperty reads a property with the default client.
func GetProperty(code ProductCode, prop Property) (string, error) {
	return defaultClient.GetProperty(code, prop)
}

// HasProperty probes for a property with the default client.
func HasProperty(code ProductCode, prop Property) bool {
	return defaultClient.HasProperty(code, prop)
}
