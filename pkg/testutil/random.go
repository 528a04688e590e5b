// Package testutil provides utilities for testing
package testutil

import (
	"fmt"
	"math/rand"
	"time"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// RandomString generates a random string of given length
func RandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rng.Intn(len(charset))]
	}
	return string(b)
}

// RandomProjectSlug generates a unique project slug for testing
func RandomProjectSlug() string {
	return fmt.Sprintf("test_project_%s", RandomString(8))
}

// RandomProjectName generates a human-readable project name
func RandomProjectName() string {
	names := []string{
		"Sales Forecast",
		"Clinical Trial Analysis",
		"Survey Dashboard",
		"Genome Pipeline",
		"Churn Model",
	}
	return names[rng.Intn(len(names))] + " " + RandomString(4)
}

// RandomAuthorName returns an author name, some with characters that need quoting in a shell
func RandomAuthorName() string {
	authors := []string{
		"Jane Doe",
		"Seán O'Brien",
		"Ada \"The Countess\" Lovelace",
		"Grace Hopper",
		"Dev & Ops Ltd",
	}
	return authors[rng.Intn(len(authors))]
}

// RandomGitHubUsername generates a GitHub-style username
func RandomGitHubUsername() string {
	return "user-" + RandomString(6)
}

// RandomYear returns a year between 2000 and 2039
func RandomYear() string {
	return fmt.Sprintf("%d", 2000+rng.Intn(40))
}
