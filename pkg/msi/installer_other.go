//go:build !windows
// +build !windows

package msi

type unsupportedInstaller struct{}

// NativeInstaller returns an Installer that fails every call with
// StatusCallNotImplemented; Windows Installer only exists on Windows.
func NativeInstaller() Installer {
	return unsupportedInstaller{}
}

func (unsupportedInstaller) EnumProducts(string, InstallContext, uint32, *[ProductCodeBufferLen]uint16, *InstallContext) Status {
	return StatusCallNotImplemented
}

func (unsupportedInstaller) GetProductInfo(string, Property, []uint16, *uint32) Status {
	return StatusCallNotImplemented
}
