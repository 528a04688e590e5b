package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	s := Summary{
		OK(GitInit, ""),
		Failed(GitCommit, "exit status 1"),
		Skipped(GitRemote, "use_github is not y"),
		Failed(License, "permission denied"),
	}

	assert.Equal(t, 2, s.Failures())

	r, ok := s.Find(GitRemote)
	assert.True(t, ok)
	assert.Equal(t, StatusSkipped, r.Status)

	_, ok = s.Find(NextSteps)
	assert.False(t, ok)
}
