package kmod

import (
	"fmt"
	"os/exec"
	"strings"
)

// Probe loads a kernel module via modprobe. A failure means the module is
// unavailable in this environment, callers decide whether that is fatal.
func Probe(module string) error {
	modprobePath, err := exec.LookPath("modprobe")
	if err != nil {
		return fmt.Errorf("modprobe not installed: %w", err)
	}
	out, err := exec.Command(modprobePath, module).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to load module %s: %v: %s", module, err, strings.TrimSpace(string(out)))
	}
	return nil
}
