package chronyver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSemver(t *testing.T) {
	cases := []struct {
		versionStr string
		major      uint64
		minor      uint64
	}{
		{"4.2-2.el9_4.3", 4, 2},
		{"4.4-1.el9", 4, 4},
		{"3.5-1.el8", 3, 5},
		{"2.9.1-1.el7_9", 2, 9},
	}
	for _, tc := range cases {
		v, err := getSemver(tc.versionStr)
		require.NoError(t, err, "version %q", tc.versionStr)
		assert.Equal(t, tc.major, v.Major(), "version %q", tc.versionStr)
		assert.Equal(t, tc.minor, v.Minor(), "version %q", tc.versionStr)
	}
}

func TestGetSemverRejectsGarbage(t *testing.T) {
	for _, versionStr := range []string{"", "package chrony is not installed"} {
		_, err := getSemver(versionStr)
		assert.Error(t, err, "version %q", versionStr)
	}
}

func TestMinVersionComparison(t *testing.T) {
	old, err := getSemver("2.9.1-1.el7_9")
	require.NoError(t, err)
	assert.True(t, old.LessThan(minVersion))

	current, err := getSemver("4.2-2.el9_4.3")
	require.NoError(t, err)
	assert.False(t, current.LessThan(minVersion))
}
