package platform

import (
	"strings"

	"github.com/golang/glog"
	"github.com/jaypipes/ghw"
)

// VendorHint guesses the platform from DMI product information. The hint is
// diagnostic only and never overrides the kernel command line; hosts with
// stripped or unreadable DMI tables return Unknown.
func VendorHint() Platform {
	product, err := ghw.Product()
	if err != nil {
		glog.V(2).Infof("could not read DMI product info: %v", err)
		return Unknown
	}
	vendor := strings.ToLower(product.Vendor)
	name := strings.ToLower(product.Name)
	glog.V(2).Infof("DMI product vendor=%q name=%q", product.Vendor, product.Name)

	switch {
	case strings.Contains(vendor, "amazon") || strings.Contains(name, "amazon ec2"):
		return AWS
	case strings.Contains(vendor, "microsoft"):
		return Azure
	case strings.Contains(vendor, "google") || strings.Contains(name, "google compute engine"):
		return GCP
	case strings.Contains(name, "kvm") || strings.Contains(vendor, "qemu") || strings.Contains(name, "qemu"):
		return QEMU
	}
	return Unknown
}
