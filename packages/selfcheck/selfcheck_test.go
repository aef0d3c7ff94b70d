package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sycl-conformance/ctskit/packages/core/runner"
	"github.com/sycl-conformance/ctskit/packages/core/suite"
)

func TestRegisteredCases(t *testing.T) {
	cases := suite.Cases()
	require.NotEmpty(t, cases)

	for _, c := range cases {
		assert.Contains(t, c.Tags, "selfcheck")
		assert.NotEmpty(t, c.Info.Name)
		assert.NotNil(t, c.Run)
	}
}

func TestSelfcheckSuitePasses(t *testing.T) {
	r := runner.NewRunner(&runner.Config{TagsFilter: []string{"selfcheck"}})
	result := r.Run(suite.Cases())

	assert.Zero(t, result.Failed)
	assert.Equal(t, len(suite.Cases()), result.Passed)

	for _, cr := range result.Results {
		assert.True(t, cr.Passed, "case %s failed: %+v", cr.Name, cr.Checks)
	}
}

func TestSelfcheckSuitePassesInParallel(t *testing.T) {
	r := runner.NewRunner(&runner.Config{
		TagsFilter:  []string{"selfcheck"},
		Parallel:    true,
		Concurrency: 4,
	})
	result := r.Run(suite.Cases())

	assert.Zero(t, result.Failed)
}
