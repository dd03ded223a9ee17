package inventory

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// Host describes the machine an inventory was taken on.
type Host struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelArch      string `json:"kernel_arch" yaml:"kernel_arch"`
	Manufacturer    string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Model           string `json:"model,omitempty" yaml:"model,omitempty"`
}

// collectHost is abstracted for testing
var collectHost = hostFacts

func hostFacts() (*Host, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}
	h := &Host{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelArch:      info.KernelArch,
	}
	platformFacts(h)
	return h, nil
}
