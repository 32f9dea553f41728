package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default file locations. Image builds that relocate any of these ship a
// settings file instead of patching the binary.
const (
	DefaultBaseConfPath         = "/etc/chrony.conf"
	DefaultFactoryConfPath      = "/usr/share/factory/etc/chrony.conf"
	DefaultBaseOptionsPath      = "/etc/sysconfig/chronyd"
	DefaultFactoryOptionsPath   = "/usr/share/factory/etc/sysconfig/chronyd"
	DefaultGeneratedConfPath    = "/run/chrony-cloud/chrony.conf"
	DefaultGeneratedOptionsPath = "/run/chrony-cloud/chronyd.sysconfig"
	DefaultNetworkConfigPath    = "/etc/sysconfig/network"
	DefaultCmdlinePath          = "/proc/cmdline"
	DefaultPlatformKey          = "cloud.platform"
	DefaultPTPModule            = "ptp_kvm"
	DefaultPTPClockName         = "KVM virtual PTP"
)

// Settings holds every path and key the setup run touches.
type Settings struct {
	BaseConfPath         string `yaml:"baseConf"`
	FactoryConfPath      string `yaml:"factoryConf"`
	BaseOptionsPath      string `yaml:"baseOptions"`
	FactoryOptionsPath   string `yaml:"factoryOptions"`
	GeneratedConfPath    string `yaml:"generatedConf"`
	GeneratedOptionsPath string `yaml:"generatedOptions"`
	NetworkConfigPath    string `yaml:"networkConfig"`
	CmdlinePath          string `yaml:"cmdline"`
	PlatformKey          string `yaml:"platformKey"`
	PTPModule            string `yaml:"ptpModule"`
	PTPClockName         string `yaml:"ptpClockName"`
}

// Default returns the settings used on an unmodified host.
func Default() *Settings {
	return &Settings{
		BaseConfPath:         DefaultBaseConfPath,
		FactoryConfPath:      DefaultFactoryConfPath,
		BaseOptionsPath:      DefaultBaseOptionsPath,
		FactoryOptionsPath:   DefaultFactoryOptionsPath,
		GeneratedConfPath:    DefaultGeneratedConfPath,
		GeneratedOptionsPath: DefaultGeneratedOptionsPath,
		NetworkConfigPath:    DefaultNetworkConfigPath,
		CmdlinePath:          DefaultCmdlinePath,
		PlatformKey:          DefaultPlatformKey,
		PTPModule:            DefaultPTPModule,
		PTPClockName:         DefaultPTPClockName,
	}
}

// Load returns the defaults overlaid with the YAML settings file at path.
// An empty path means defaults only.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return s, nil
}
