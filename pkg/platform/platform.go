package platform

// Platform identifies the cloud or virtualization environment the host
// runs on. The set is closed: anything else on the kernel command line is
// rejected by the profile dispatch.
type Platform string

const (
	AWS        Platform = "aws"
	Azure      Platform = "azure"
	AzureStack Platform = "azurestack"
	GCP        Platform = "gcp"
	QEMU       Platform = "qemu"
	Unknown    Platform = ""
)

// Parse maps a raw command line value onto the closed platform set.
func Parse(s string) (Platform, bool) {
	switch Platform(s) {
	case AWS, Azure, AzureStack, GCP, QEMU:
		return Platform(s), true
	}
	return Unknown, false
}

// Virtualized reports whether the platform exposes its clock through a
// hypervisor PTP device loaded on demand rather than a fixed time source.
func (p Platform) Virtualized() bool {
	return p == QEMU
}

func (p Platform) String() string {
	return string(p)
}
