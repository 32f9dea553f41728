package platform

import (
	"fmt"
	"os"
	"strings"
)

// ReadCmdline returns the kernel command line. An unreadable command line
// is an environment failure the caller must treat as fatal, there is no
// safe platform to assume.
func ReadCmdline(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read kernel command line %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Lookup extracts the value of key from a whitespace delimited sequence of
// key=value tokens. When the key appears more than once the last occurrence
// wins. A missing key yields the empty string.
func Lookup(cmdline, key string) string {
	value := ""
	prefix := key + "="
	for _, token := range strings.Fields(cmdline) {
		if strings.HasPrefix(token, prefix) {
			value = token[len(prefix):]
		}
	}
	return value
}
