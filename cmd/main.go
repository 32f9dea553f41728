package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"github.com/openshift/chrony-cloud-setup/pkg/chronyconf"
	"github.com/openshift/chrony-cloud-setup/pkg/chronyver"
	"github.com/openshift/chrony-cloud-setup/pkg/config"
	"github.com/openshift/chrony-cloud-setup/pkg/guard"
	"github.com/openshift/chrony-cloud-setup/pkg/kmod"
	"github.com/openshift/chrony-cloud-setup/pkg/metrics"
	"github.com/openshift/chrony-cloud-setup/pkg/phc"
	"github.com/openshift/chrony-cloud-setup/pkg/platform"
	"github.com/openshift/chrony-cloud-setup/pkg/selinux"
	"github.com/openshift/chrony-cloud-setup/pkg/sysconfig"
)

// Git commit of current build set at build time
var GitCommit = "Undefined"

type cliParams struct {
	settingsPath    string
	metricsTextfile string
	dryRun          bool
}

// Parse command line flags
func (cp *cliParams) flagInit() {
	flag.StringVar(&cp.settingsPath, "settings", "",
		"YAML file overriding default file locations")
	flag.StringVar(&cp.metricsTextfile, "metrics-textfile", "",
		"node-exporter textfile collector path for run outcome metrics (empty disables)")
	flag.BoolVar(&cp.dryRun, "dry-run", false,
		"run the full decision procedure without writing any file")
	flag.Parse()
	cp.debugPrint()
}

func (cp *cliParams) debugPrint() {
	glog.V(2).Infof("settings file set to: %q", cp.settingsPath)
	glog.V(2).Infof("metrics textfile set to: %q", cp.metricsTextfile)
	glog.V(2).Infof("dry run: %v", cp.dryRun)
}

func main() {
	cp := &cliParams{}
	cp.flagInit()
	glog.Infof("chrony-cloud-setup git commit: %s", GitCommit)

	settings, err := config.Load(cp.settingsPath)
	if err != nil {
		glog.Errorf("cannot load settings: %v", err)
		glog.Flush()
		os.Exit(1)
	}

	status := run(cp, settings)
	glog.Flush()
	os.Exit(status)
}

// run walks the strictly sequential decision procedure: modification guard,
// platform resolution, hardware probe, base transform, profile apply,
// options merge. Benign stops exit 0, only environment breakage and the
// unreachable unknown-platform branch exit non-zero.
func run(cp *cliParams, settings *config.Settings) int {
	if !checkGuards(cp, settings) {
		return 0
	}

	cmdline, err := platform.ReadCmdline(settings.CmdlinePath)
	if err != nil {
		glog.Errorf("cannot resolve platform: %v", err)
		return 1
	}
	raw := platform.Lookup(cmdline, settings.PlatformKey)
	p, known := platform.Parse(raw)
	glog.Infof("platform %q resolved from kernel command line", raw)

	if hint := platform.VendorHint(); known && hint != platform.Unknown && !sameVendor(hint, p) {
		glog.Warningf("DMI reports %s hardware while the kernel command line says %s", hint, p)
	}

	params := chronyconf.Params{}
	if p.Virtualized() {
		device, err := probeVirtualPHC(settings)
		if err != nil {
			glog.Infof("no virtual PTP clock available, nothing to do: %v", err)
			writeMetrics(cp, metrics.OutcomeNoHardware, p)
			return 0
		}
		params.PHCDevice = device
	}

	chronyver.Check()

	// DHCP-provided NTP peers would compete with the platform time source
	// everywhere except on qemu, where keeping them is long-standing
	// behavior. Evaluated before any other output is produced.
	if !p.Virtualized() {
		if cp.dryRun {
			glog.Infof("dry run: would ensure PEERNTP=no in %s", settings.NetworkConfigPath)
		} else if appended, err := sysconfig.DisableDHCPNTP(settings.NetworkConfigPath); err != nil {
			glog.Errorf("cannot update %s: %v", settings.NetworkConfigPath, err)
		} else if appended {
			glog.Infof("disabled DHCP NTP peers in %s", settings.NetworkConfigPath)
		}
	}

	baseBody, err := os.ReadFile(settings.BaseConfPath)
	if err != nil {
		glog.Errorf("cannot read base configuration: %v", err)
		return 1
	}
	lines := chronyconf.Transform(chronyconf.SplitBody(string(baseBody)))

	apply, ok := chronyconf.Profiles[p]
	if !ok {
		// The resolver never validates, so this is the single place an
		// unsupported identifier is caught.
		glog.Errorf("unknown platform %q: no time source profile exists for it", raw)
		return 1
	}
	confBody := chronyconf.Render(apply(params, lines))

	if cp.dryRun {
		glog.Infof("dry run: would write %s and %s", settings.GeneratedConfPath, settings.GeneratedOptionsPath)
		glog.V(2).Infof("generated configuration:\n%s", confBody)
		return 0
	}

	if err := writeGenerated(settings.GeneratedConfPath, confBody); err != nil {
		glog.Errorf("cannot write generated configuration: %v", err)
		return 1
	}
	if err := selinux.CopyLabel(settings.BaseConfPath, settings.GeneratedConfPath); err != nil {
		glog.Errorf("cannot relabel %s: %v", settings.GeneratedConfPath, err)
	}

	optionsBody, err := os.ReadFile(settings.BaseOptionsPath)
	if err != nil {
		glog.Errorf("cannot read base options: %v", err)
		return 1
	}
	merged := sysconfig.MergeOptions(string(optionsBody), settings.GeneratedConfPath)
	if err := writeGenerated(settings.GeneratedOptionsPath, merged); err != nil {
		glog.Errorf("cannot write generated options: %v", err)
		return 1
	}

	glog.Infof("chronyd configured for %s via %s", p, settings.GeneratedConfPath)
	writeMetrics(cp, metrics.OutcomeApplied, p)
	return 0
}

// checkGuards compares both installed base files against their factory
// references. Any difference, or any inability to compare, blocks
// regeneration so a user's customization survives.
func checkGuards(cp *cliParams, settings *config.Settings) bool {
	pairs := []struct {
		name      string
		installed string
		factory   string
	}{
		{"configuration", settings.BaseConfPath, settings.FactoryConfPath},
		{"options", settings.BaseOptionsPath, settings.FactoryOptionsPath},
	}
	for _, pair := range pairs {
		modified, err := guard.Modified(pair.installed, pair.factory)
		if err != nil {
			glog.Errorf("cannot compare %s file against its factory reference: %v", pair.name, err)
			writeMetrics(cp, metrics.OutcomeCustomized, platform.Unknown)
			return false
		}
		if modified {
			glog.Infof("%s file %s was customized locally, leaving time sync configuration alone", pair.name, pair.installed)
			if diff, err := guard.Diff(pair.installed, pair.factory); err == nil && diff != "" {
				glog.V(2).Infof("local changes:\n%s", diff)
			}
			writeMetrics(cp, metrics.OutcomeCustomized, platform.Unknown)
			return false
		}
	}
	return true
}

// probeVirtualPHC loads the hypervisor PTP module and verifies the clock
// it surfaces actually answers.
func probeVirtualPHC(settings *config.Settings) (string, error) {
	if err := kmod.Probe(settings.PTPModule); err != nil {
		return "", err
	}
	device, err := phc.Find(settings.PTPClockName)
	if err != nil {
		return "", err
	}
	if err := phc.Check(device); err != nil {
		return "", err
	}
	glog.Infof("virtual PTP clock available at %s", device)
	return device, nil
}

func writeGenerated(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

func writeMetrics(cp *cliParams, outcome string, p platform.Platform) {
	if cp.metricsTextfile == "" || cp.dryRun {
		return
	}
	if err := metrics.Write(cp.metricsTextfile, outcome, p.String()); err != nil {
		glog.Errorf("cannot write metrics textfile %s: %v", cp.metricsTextfile, err)
	}
}

// sameVendor treats azure and azurestack as one DMI vendor, the hint
// cannot tell them apart.
func sameVendor(hint, p platform.Platform) bool {
	isAzure := func(x platform.Platform) bool {
		return x == platform.Azure || x == platform.AzureStack
	}
	if isAzure(hint) && isAzure(p) {
		return true
	}
	return hint == p
}
