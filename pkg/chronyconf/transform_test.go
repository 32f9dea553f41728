package chronyconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshift/chrony-cloud-setup/pkg/chronyconf"
)

func TestTransform(t *testing.T) {
	cases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name: "default fedora style config",
			input: []string{
				"makestep 0.1 3",
				"pool 0.fedora.pool.ntp.org iburst",
				"driftfile /var/lib/chrony/drift",
			},
			expected: []string{
				chronyconf.Header,
				"#makestep 0.1 3",
				"#pool 0.fedora.pool.ntp.org iburst",
				"driftfile /var/lib/chrony/drift",
				"",
				"makestep 1.0 -1",
			},
		},
		{
			name: "leapsectz and comments",
			input: []string{
				"# use public servers",
				"leapsectz right/UTC",
				"",
				"rtcsync",
			},
			expected: []string{
				chronyconf.Header,
				"# use public servers",
				"#leapsectz right/UTC",
				"",
				"rtcsync",
				"",
				"makestep 1.0 -1",
			},
		},
		{
			name:  "keyword prefix without boundary passes through",
			input: []string{"poolside 1", "makestepx 2", "pool\ttabbed iburst"},
			expected: []string{
				chronyconf.Header,
				"poolside 1",
				"makestepx 2",
				"#pool\ttabbed iburst",
				"",
				"makestep 1.0 -1",
			},
		},
		{
			name:     "empty input",
			input:    []string{""},
			expected: []string{chronyconf.Header, "", "", "makestep 1.0 -1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := append([]string(nil), tc.input...)
			assert.Equal(t, tc.expected, chronyconf.Transform(tc.input))
			// the input sequence must come through untouched
			assert.Equal(t, input, tc.input)
		})
	}
}

func TestTransformDeterministic(t *testing.T) {
	input := []string{"pool 2.rhel.pool.ntp.org iburst", "driftfile /var/lib/chrony/drift"}
	first := chronyconf.Render(chronyconf.Transform(input))
	second := chronyconf.Render(chronyconf.Transform(input))
	assert.Equal(t, first, second)
}

func TestReenable(t *testing.T) {
	lines := []string{
		chronyconf.Header,
		"#makestep 0.1 3",
		"#pool 0.fedora.pool.ntp.org iburst",
		"#leapsectz right/UTC",
		"# plain comment",
	}
	out := chronyconf.Reenable(lines, "pool")
	assert.Equal(t, []string{
		chronyconf.Header,
		"#makestep 0.1 3",
		"pool 0.fedora.pool.ntp.org iburst",
		"#leapsectz right/UTC",
		"# plain comment",
	}, out)
}

func TestSplitRenderRoundTrip(t *testing.T) {
	body := "pool 0.fedora.pool.ntp.org iburst\ndriftfile /var/lib/chrony/drift\n"
	assert.Equal(t, body, chronyconf.Render(chronyconf.SplitBody(body)))

	// bodies without a trailing newline gain one
	assert.Equal(t, "a\nb\n", chronyconf.Render(chronyconf.SplitBody("a\nb")))
}
