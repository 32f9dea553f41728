package chronyconf

import (
	"fmt"

	"github.com/openshift/chrony-cloud-setup/pkg/platform"
)

// Params carries the run-specific values a profile may need.
type Params struct {
	// PHCDevice is the hypervisor PTP clock device discovered for the
	// qemu profile. Empty falls back to /dev/ptp0.
	PHCDevice string
}

// Apply appends a platform stanza to the transformed configuration. The
// qemu profile additionally re-enables the pool directive.
type Apply func(params Params, lines []string) []string

// Profiles maps each supported platform to its stanza. Dispatch through
// this map is the single place an unsupported platform can surface.
var Profiles = map[platform.Platform]Apply{
	platform.Azure:      azureProfile,
	platform.AzureStack: azureProfile,
	platform.AWS:        awsProfile,
	platform.GCP:        gcpProfile,
	platform.QEMU:       qemuProfile,
}

// Hyper-V exposes a host-synchronized PTP clock; right/UTC makes chrony
// handle leap seconds the way the Azure hosts do.
func azureProfile(_ Params, lines []string) []string {
	return append(lines,
		"",
		"refclock PHC /dev/ptp_hyperv poll 3 dpoll -2 offset 0",
		"leapsectz right/UTC",
	)
}

// The Amazon Time Sync Service lives on a link-local address in every VPC.
func awsProfile(_ Params, lines []string) []string {
	return append(lines,
		"",
		"server 169.254.169.123 prefer iburst minpoll 4 maxpoll 4",
	)
}

func gcpProfile(_ Params, lines []string) []string {
	return append(lines,
		"",
		"server metadata.google.internal prefer iburst",
	)
}

// Generic KVM guests keep the public pool alongside the hypervisor clock,
// so the pool directive comes back while the others stay disabled.
func qemuProfile(params Params, lines []string) []string {
	device := params.PHCDevice
	if device == "" {
		device = "/dev/ptp0"
	}
	out := Reenable(lines, "pool")
	return append(out,
		"",
		fmt.Sprintf("refclock PHC %s poll 2", device),
	)
}
