package phc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// FD_TO_CLOCKID from include/uapi/linux/ptp_clock.h: clockid = (fd << 3) | 3.
const clockFDBits = 3

// Find locates the /dev/ptpN device whose sysfs clock_name matches name,
// e.g. "KVM virtual PTP" for the clock surfaced by the ptp_kvm module.
func Find(name string) (string, error) {
	matches, err := filepath.Glob("/sys/class/ptp/ptp*/clock_name")
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			glog.V(2).Infof("skipping %s: %v", match, err)
			continue
		}
		if strings.TrimSpace(string(data)) == name {
			return "/dev/" + filepath.Base(filepath.Dir(match)), nil
		}
	}
	return "", fmt.Errorf("no PTP clock named %q found", name)
}

// Check opens the PHC device and reads it once through clock_gettime,
// proving the clock actually answers before a refclock is pointed at it.
func Check(device string) error {
	f, err := os.OpenFile(device, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open PHC device %s: %w", device, err)
	}
	defer f.Close()

	fd := int(f.Fd())
	clockID := int32((^fd)<<clockFDBits | clockFDBits)
	var ts unix.Timespec
	if err := unix.ClockGettime(clockID, &ts); err != nil {
		return fmt.Errorf("failed to read PHC device %s: %w", device, err)
	}
	glog.V(2).Infof("PHC %s reports %d.%09d", device, ts.Sec, ts.Nsec)
	return nil
}
