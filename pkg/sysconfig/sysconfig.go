package sysconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
)

// OptionsVar is the variable chronyd's unit hands to the daemon.
const OptionsVar = "OPTIONS"

// Options extracts the OPTIONS value from a sysconfig file body. Quoting
// (single or double) is stripped, comments are ignored, and the last
// assignment wins. No other variable in the file is considered.
func Options(body string) string {
	value := ""
	prefix := OptionsVar + "="
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || !strings.HasPrefix(line, prefix) {
			continue
		}
		value = unquote(line[len(prefix):])
	}
	return value
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// MergeOptions builds the generated one-variable sysconfig body: the base
// OPTIONS value with a -f flag pointing chronyd at the generated
// configuration appended.
func MergeOptions(baseBody, confPath string) string {
	merged := strings.TrimSpace(Options(baseBody) + " -f " + confPath)
	return fmt.Sprintf("%s=%q\n", OptionsVar, merged)
}

// HasAssignment reports whether the body assigns the given variable,
// commented lines excluded.
func HasAssignment(body, name string) bool {
	prefix := name + "="
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// DisableDHCPNTP appends PEERNTP=no to the network sysconfig file so
// DHCP-advertised NTP servers do not compete with the platform time
// source. The file is created when absent and left alone when it already
// takes a position on PEERNTP either way. Returns whether a line was
// appended.
func DisableDHCPNTP(path string) (bool, error) {
	body, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if HasAssignment(string(body), "PEERNTP") {
		glog.V(2).Infof("%s already sets PEERNTP, leaving it alone", path)
		return false, nil
	}

	appended := "PEERNTP=no\n"
	if len(body) > 0 && !strings.HasSuffix(string(body), "\n") {
		appended = "\n" + appended
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(appended); err != nil {
		return false, fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return true, nil
}
