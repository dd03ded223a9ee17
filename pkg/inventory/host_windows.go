//go:build windows
// +build windows

package inventory

import (
	"strings"

	"github.com/windowsadmins/msiquery/pkg/logging"
	"github.com/yusufpapurcu/wmi"
)

// Win32_ComputerSystem WMI class (subset)
type Win32_ComputerSystem struct {
	Manufacturer string
	Model        string
}

// platformFacts adds manufacturer and model from WMI.
func platformFacts(h *Host) {
	var systems []Win32_ComputerSystem
	if err := wmi.Query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &systems); err != nil {
		logging.Warn("Failed to query computer system information", "error", err)
		return
	}
	if len(systems) == 0 {
		logging.Warn("No computer system information available")
		return
	}
	h.Manufacturer = strings.TrimSpace(systems[0].Manufacturer)
	h.Model = strings.TrimSpace(systems[0].Model)
}
