package selinux

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"
)

const securityXattr = "security.selinux"

// CopyLabel sets the SELinux label of dst to match src. The chronyd policy
// whitelists the label of the shipped configuration path, so the generated
// file must carry the same one. Hosts without SELinux (no xattr support or
// no label on the source) are a logged no-op.
func CopyLabel(src, dst string) error {
	size, err := unix.Getxattr(src, securityXattr, nil)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.ENODATA) {
			glog.V(2).Infof("no SELinux label on %s, skipping relabel of %s", src, dst)
			return nil
		}
		return fmt.Errorf("failed to read SELinux label of %s: %w", src, err)
	}

	label := make([]byte, size)
	if _, err := unix.Getxattr(src, securityXattr, label); err != nil {
		return fmt.Errorf("failed to read SELinux label of %s: %w", src, err)
	}
	if err := unix.Setxattr(dst, securityXattr, label, 0); err != nil {
		return fmt.Errorf("failed to set SELinux label of %s: %w", dst, err)
	}
	glog.V(2).Infof("labelled %s like %s", dst, src)
	return nil
}
