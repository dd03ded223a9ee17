//go:build windows
// +build windows

package msi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modmsi = windows.NewLazySystemDLL("msi.dll")

	procMsiEnumProductsExW = modmsi.NewProc("MsiEnumProductsExW")
	procMsiGetProductInfoW = modmsi.NewProc("MsiGetProductInfoW")
)

type nativeInstaller struct{}

// NativeInstaller returns the Installer backed by msi.dll.
func NativeInstaller() Installer {
	return nativeInstaller{}
}

func (nativeInstaller) EnumProducts(userSID string, filter InstallContext, index uint32, code *[ProductCodeBufferLen]uint16, installed *InstallContext) Status {
	if err := procMsiEnumProductsExW.Find(); err != nil {
		return StatusCallNotImplemented
	}

	// A nil SID pointer means the current user.
	var sid *uint16
	if userSID != "" {
		p, err := windows.UTF16PtrFromString(userSID)
		if err != nil {
			return StatusInvalidParameter
		}
		sid = p
	}

	r, _, _ := procMsiEnumProductsExW.Call(
		0, // szProductCode: every product
		uintptr(unsafe.Pointer(sid)),
		uintptr(filter),
		uintptr(index),
		uintptr(unsafe.Pointer(&code[0])),
		uintptr(unsafe.Pointer(installed)),
		0, // szSid
		0, // pcchSid
	)
	return Status(r)
}

func (nativeInstaller) GetProductInfo(product string, property Property, buf []uint16, length *uint32) Status {
	if err := procMsiGetProductInfoW.Find(); err != nil {
		return StatusCallNotImplemented
	}

	productPtr, err := windows.UTF16PtrFromString(product)
	if err != nil {
		return StatusInvalidParameter
	}
	propertyPtr, err := windows.UTF16PtrFromString(string(property))
	if err != nil {
		return StatusInvalidParameter
	}

	var bufPtr *uint16
	if len(buf) > 0 {
		bufPtr = &buf[0]
	}

	r, _, _ := procMsiGetProductInfoW.Call(
		uintptr(unsafe.Pointer(productPtr)),
		uintptr(unsafe.Pointer(propertyPtr)),
		uintptr(unsafe.Pointer(bufPtr)),
		uintptr(unsafe.Pointer(length)),
	)
	return Status(r)
}
