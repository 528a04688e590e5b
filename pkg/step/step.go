// Package step describes the outcome of one post-generation step.
package step

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Step names, in the order the hook runs them.
const (
	GitInit   = "git-init"
	GitAdd    = "git-add"
	GitCommit = "git-commit"
	GitRemote = "git-remote"
	License   = "license"
	NextSteps = "next-steps"
)

type Result struct {
	Name   string
	Status Status
	Detail string
}

func OK(name, detail string) Result {
	return Result{Name: name, Status: StatusOK, Detail: detail}
}

func Failed(name, detail string) Result {
	return Result{Name: name, Status: StatusFailed, Detail: detail}
}

func Skipped(name, detail string) Result {
	return Result{Name: name, Status: StatusSkipped, Detail: detail}
}

// Summary is the ordered list of step results for one run.
type Summary []Result

// Find returns the result recorded for name.
func (s Summary) Find(name string) (Result, bool) {
	for _, r := range s {
		if r.Name == name {
			return r, true
		}
	}
	return Result{}, false
}

// Failures counts failed steps.
func (s Summary) Failures() int {
	n := 0
	for _, r := range s {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}
