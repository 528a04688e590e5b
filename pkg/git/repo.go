package git

import (
	"context"
	"fmt"
	"io"

	"postgen/pkg/config"
	"postgen/pkg/shell"
	"postgen/pkg/step"
)

// DefaultRemote is the remote name configured for GitHub.
const DefaultRemote = "origin"

type Manager struct {
	repoRoot string
	runner   shell.Runner
	out      io.Writer
}

func NewManagerWithRepoRoot(repoRoot string, runner shell.Runner, out io.Writer) *Manager {
	if runner == nil {
		runner = shell.NewExecRunner()
	}
	if out == nil {
		out = io.Discard
	}
	return &Manager{repoRoot: repoRoot, runner: runner, out: out}
}

func (m *Manager) GetRepoRoot() string {
	return m.repoRoot
}

func (m *Manager) git(ctx context.Context, args ...string) shell.Result {
	return m.runner.Run(ctx, shell.RunOpts{Dir: m.repoRoot}, "git", args...)
}

func (m *Manager) InitRepo(ctx context.Context) shell.Result {
	return m.git(ctx, "init")
}

func (m *Manager) AddAll(ctx context.Context) shell.Result {
	return m.git(ctx, "add", ".")
}

func (m *Manager) Commit(ctx context.Context, message string) shell.Result {
	return m.git(ctx, "commit", "-m", message)
}

func (m *Manager) AddRemote(ctx context.Context, name, url string) shell.Result {
	return m.git(ctx, "remote", "add", name, url)
}

// RemoteURL is the GitHub clone URL for username/slug. Values are used verbatim.
func RemoteURL(username, slug string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", username, slug)
}

// RepoPageURL is the GitHub page where the repository has to be created.
func RepoPageURL(username, slug string) string {
	return fmt.Sprintf("https://github.com/%s/%s", username, slug)
}

// CommitMessage is the message of the initial commit.
func CommitMessage(projectName string) string {
	return fmt.Sprintf("Initial commit from %s template", projectName)
}

// Initialize runs init, add, commit and remote setup as requested by cfg.
//
// Only a failed init stops the sequence. Add and commit failures are already
// logged by the runner and do not prevent the remote from being configured.
// The remote is never pushed to.
func (m *Manager) Initialize(ctx context.Context, cfg config.Config) []step.Result {
	if !cfg.GitEnabled() {
		reason := fmt.Sprintf("use_git is %q", cfg.UseGit)
		return []step.Result{
			step.Skipped(step.GitInit, reason),
			step.Skipped(step.GitAdd, reason),
			step.Skipped(step.GitCommit, reason),
			step.Skipped(step.GitRemote, reason),
		}
	}

	fmt.Fprintln(m.out, "🔧 Initializing git repository...")
	if res := m.InitRepo(ctx); !res.OK() {
		fmt.Fprintln(m.out, "❌ Failed to initialize git repository")
		reason := "git init failed"
		return []step.Result{
			step.Failed(step.GitInit, res.Err.Error()),
			step.Skipped(step.GitAdd, reason),
			step.Skipped(step.GitCommit, reason),
			step.Skipped(step.GitRemote, reason),
		}
	}
	fmt.Fprintln(m.out, "✅ Git repository initialized")
	results := []step.Result{step.OK(step.GitInit, m.repoRoot)}

	results = append(results, outcome(step.GitAdd, m.AddAll(ctx), "."))

	message := CommitMessage(cfg.ProjectName)
	res := m.Commit(ctx, message)
	if res.OK() {
		fmt.Fprintln(m.out, "✅ Initial commit created")
	}
	results = append(results, outcome(step.GitCommit, res, message))

	if !cfg.GitHubEnabled() {
		return append(results, step.Skipped(step.GitRemote, fmt.Sprintf("use_github is %q", cfg.UseGitHub)))
	}

	url := RemoteURL(cfg.GitHubUsername, cfg.ProjectSlug)
	res = m.AddRemote(ctx, DefaultRemote, url)
	if res.OK() {
		fmt.Fprintf(m.out, "✅ GitHub remote added: %s\n", url)
		fmt.Fprintln(m.out, "📝 Note: Remember to create the repository on GitHub and push your changes")
	}
	return append(results, outcome(step.GitRemote, res, url))
}

func outcome(name string, res shell.Result, detail string) step.Result {
	if res.OK() {
		return step.OK(name, detail)
	}
	return step.Failed(name, res.Err.Error())
}
