package guard

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Modified reports whether the installed file differs from its factory
// reference. A missing or unreadable factory copy fails closed: the caller
// gets an error and must not regenerate anything.
func Modified(installedPath, factoryPath string) (bool, error) {
	installed, err := os.ReadFile(installedPath)
	if err != nil {
		return false, fmt.Errorf("failed to read installed file %s: %w", installedPath, err)
	}
	factory, err := os.ReadFile(factoryPath)
	if err != nil {
		return false, fmt.Errorf("failed to read factory reference %s: %w", factoryPath, err)
	}
	return !bytes.Equal(installed, factory), nil
}

// Diff renders a unified diff of the local changes against the factory
// reference, for the operator reading the log.
func Diff(installedPath, factoryPath string) (string, error) {
	installed, err := os.ReadFile(installedPath)
	if err != nil {
		return "", err
	}
	factory, err := os.ReadFile(factoryPath)
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(factory)),
		B:        difflib.SplitLines(string(installed)),
		FromFile: factoryPath,
		ToFile:   installedPath,
		Context:  3,
	})
}
