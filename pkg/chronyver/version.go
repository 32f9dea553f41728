package chronyver

import (
	"os/exec"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"github.com/golang/glog"
)

// refclock PHC and leapsectz both landed in chrony 3.0; anything older
// cannot consume the generated configuration.
var minVersion = semver.MustParse("3.0.0")

func getSemver(versionStr string) (*semver.Version, error) {
	// Package versions look like "4.2-2.el9_4.3" or "3.5-1.el8". That is
	// almost semver except for the "_" in the release tag, so replace it
	// with a dot before parsing.
	return semver.NewVersion(strings.Replace(versionStr, "_", ".", 1))
}

func runCmd(cmdLine string) string {
	args := strings.Fields(cmdLine)
	outBytes, _ := exec.Command(args[0], args[1:]...).CombinedOutput()
	return string(outBytes)
}

// PackageVersion returns the version of the installed chrony package.
func PackageVersion() string {
	version := runCmd("rpm -q --queryformat=%{VERSION}-%{RELEASE} chrony")
	return strings.Trim(strings.TrimSpace(version), "'")
}

// Check logs the installed chrony version and warns when it predates the
// directives the generated configuration relies on. Diagnostic only: a
// host without rpm or chrony still gets its configuration written.
func Check() {
	versionStr := PackageVersion()
	v, err := getSemver(versionStr)
	if err != nil {
		glog.V(2).Infof("could not determine chrony package version (%q): %v", versionStr, err)
		return
	}
	glog.Infof("chrony package version is: %s", versionStr)
	if v.LessThan(minVersion) {
		glog.Warningf("chrony %s predates %s, the generated refclock and leapsectz directives need a newer daemon", versionStr, minVersion)
	}
}
