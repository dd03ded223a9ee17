//go:build !windows
// +build !windows

package logging

import "os"

func enableColors() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
