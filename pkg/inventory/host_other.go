//go:build !windows
// +build !windows

package inventory

func platformFacts(*Host) {}
