package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	origVersion, origCommit, origTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = origVersion, origCommit, origTime })

	Version, GitCommit, BuildTime = "v1.2.3", "unknown", "unknown"
	assert.Equal(t, "specref v1.2.3", String())

	GitCommit, BuildTime = "abc1234", "2026-01-02"
	assert.Equal(t, "specref v1.2.3 (commit abc1234, built 2026-01-02)", String())
}
