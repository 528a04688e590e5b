package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postgen/pkg/config"
	"postgen/pkg/testutil"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath = config.DefaultConfigPath()
	projectDir = "."
	journalPath = ""
	configVars = nil
	historyLimit = 20
	require.NoError(t, historyCmd.Flags().Set("verbose", "false"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"licenses", "history"} {
		t.Run(name, func(t *testing.T) {
			found := false
			for _, c := range rootCmd.Commands() {
				if c.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s command not registered", name)
			}
		})
	}
}

func TestRoot_NoGitMIT(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "answers.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
project_name: Demo
project_slug: demo
author_name: Jane Doe
year: "2024"
license: MIT
use_git: n
`), 0644))

	out, err := executeCommand(t, "--config", cfgFile, "--dir", dir)
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, ".git"))
	data, err := os.ReadFile(filepath.Join(dir, "LICENSE"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Copyright (c) 2024 Jane Doe")
	assert.Contains(t, out, "🚀 Setting up Demo...")
	assert.Contains(t, out, "cd demo")
}

func TestRoot_VarOverrides(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir,
		"--var", "use_git=n", "--var", "license=None", "--var", "rstudio_server_password=pw123")
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "LICENSE"))
	assert.Contains(t, out, "Password: pw123")
}

func TestRoot_StepFailureStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PATH", t.TempDir())

	out, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir,
		"--var", "use_git=y", "--var", "license=None")
	require.NoError(t, err)
	assert.Contains(t, out, "❌ Failed to initialize git repository")
}

func TestRoot_UnknownVar(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir, "--var", "colour=blue")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "answers.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("project_name: [unclosed"), 0644))

	_, err := executeCommand(t, "--config", cfgFile, "--dir", dir)
	assert.Error(t, err)
}

func TestLicenses(t *testing.T) {
	out, err := executeCommand(t, "licenses")
	require.NoError(t, err)

	for _, id := range []string{"MIT", "GPL-3", "Apache-2.0", "BSD-3-Clause", "None"} {
		assert.Contains(t, out, id)
	}
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	dbPath := testutil.TempDBPath(t)

	_, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir,
		"--journal", dbPath, "--var", "use_git=n", "--var", "project_slug=journaled")
	require.NoError(t, err)

	out, err := executeCommand(t, "history", "--journal", dbPath, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "journaled")
	assert.Contains(t, out, "git-init")
	assert.Contains(t, out, "skipped")
}

func TestHistory_RequiresJournal(t *testing.T) {
	_, err := executeCommand(t, "history")
	assert.Error(t, err)
}

func TestRoot_VarValuesKeptVerbatim(t *testing.T) {
	for _, author := range []string{"Doe, Jane", `Ada "The Countess" Lovelace`, `"Smith, Jones", and Co`} {
		t.Run(author, func(t *testing.T) {
			dir := t.TempDir()

			_, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir,
				"--var", "use_git=n", "--var", "license=MIT", "--var", "year=2024",
				"--var", "author_name="+author, "--var", "project_name=Widgets, Inc.")
			require.NoError(t, err)

			data, err := os.ReadFile(filepath.Join(dir, "LICENSE"))
			require.NoError(t, err)
			assert.Contains(t, string(data), "Copyright (c) 2024 "+author+"\n")
		})
	}
}

func TestRoot_JournalInsideProjectDisabled(t *testing.T) {
	dir := t.TempDir()
	logs := test.NewGlobal()
	dbPath := filepath.Join(dir, "runs.db")

	_, err := executeCommand(t, "--config", filepath.Join(dir, "missing.yaml"), "--dir", dir,
		"--journal", dbPath, "--var", "use_git=n", "--var", "license=None")
	require.NoError(t, err)

	assert.NoFileExists(t, dbPath)
	require.NotNil(t, logs.LastEntry())
	assert.Equal(t, log.WarnLevel, logs.LastEntry().Level)
	assert.Contains(t, logs.LastEntry().Message, "outside the project directory")
}

func TestWithinDir(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "runs.db"), true},
		{filepath.Join(root, "nested", "runs.db"), true},
		{root, true},
		{filepath.Join(root, "..", "runs.db"), false},
		{filepath.Join(root, "..", filepath.Base(root)+"-other", "runs.db"), false},
		{filepath.Join(root, "..data.db"), true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, withinDir(root, tt.path), tt.path)
	}
}
