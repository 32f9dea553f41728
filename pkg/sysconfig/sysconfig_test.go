package sysconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift/chrony-cloud-setup/pkg/sysconfig"
)

func TestOptions(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected string
	}{
		{"double quoted", `OPTIONS="-u chrony"` + "\n", "-u chrony"},
		{"single quoted", `OPTIONS='-u chrony'` + "\n", "-u chrony"},
		{"bare", "OPTIONS=-4\n", "-4"},
		{"empty value", `OPTIONS=""` + "\n", ""},
		{"absent", "# no options here\nFOO=bar\n", ""},
		{"last assignment wins", "OPTIONS=\"-4\"\nOPTIONS=\"-6\"\n", "-6"},
		{"commented assignment ignored", "#OPTIONS=\"-4\"\n", ""},
		{"leading whitespace", "  OPTIONS=\"-u chrony\"\n", "-u chrony"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sysconfig.Options(tc.body))
		})
	}
}

func TestMergeOptions(t *testing.T) {
	confPath := "/run/chrony-cloud/chrony.conf"

	assert.Equal(t,
		"OPTIONS=\"-u chrony -f /run/chrony-cloud/chrony.conf\"\n",
		sysconfig.MergeOptions("OPTIONS=\"-u chrony\"\n", confPath))

	// empty base options still yield exactly one -f flag
	assert.Equal(t,
		"OPTIONS=\"-f /run/chrony-cloud/chrony.conf\"\n",
		sysconfig.MergeOptions("", confPath))
}

func TestHasAssignment(t *testing.T) {
	assert.True(t, sysconfig.HasAssignment("PEERNTP=no\n", "PEERNTP"))
	assert.True(t, sysconfig.HasAssignment("NETWORKING=yes\nPEERNTP=yes\n", "PEERNTP"))
	assert.False(t, sysconfig.HasAssignment("NETWORKING=yes\n", "PEERNTP"))
	assert.False(t, sysconfig.HasAssignment("# PEERNTP=no\n", "PEERNTP"))
	assert.False(t, sysconfig.HasAssignment("PEERNTPX=no\n", "PEERNTP"))
}

func TestDisableDHCPNTP(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "network")
		appended, err := sysconfig.DisableDHCPNTP(path)
		require.NoError(t, err)
		assert.True(t, appended)

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "PEERNTP=no\n", string(body))
	})

	t.Run("appends to existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "network")
		require.NoError(t, os.WriteFile(path, []byte("NETWORKING=yes\n"), 0o644))

		appended, err := sysconfig.DisableDHCPNTP(path)
		require.NoError(t, err)
		assert.True(t, appended)

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "NETWORKING=yes\nPEERNTP=no\n", string(body))
	})

	t.Run("repairs missing trailing newline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "network")
		require.NoError(t, os.WriteFile(path, []byte("NETWORKING=yes"), 0o644))

		_, err := sysconfig.DisableDHCPNTP(path)
		require.NoError(t, err)

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "NETWORKING=yes\nPEERNTP=no\n", string(body))
	})

	t.Run("existing setting wins either way", func(t *testing.T) {
		for _, body := range []string{"PEERNTP=yes\n", "PEERNTP=no\n"} {
			path := filepath.Join(t.TempDir(), "network")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			appended, err := sysconfig.DisableDHCPNTP(path)
			require.NoError(t, err)
			assert.False(t, appended)

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, body, string(after))
		}
	})
}
