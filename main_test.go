package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunVersion(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-version"}))
}

func TestRunUnknownFlag(t *testing.T) {
	assert.Equal(t, 1, run([]string{"-nope"}))
}

func TestRunMissingCredentials(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{
		"-env", filepath.Join(dir, "missing.env"),
		"-credentials", filepath.Join(dir, "credentials.yaml"),
	})
	assert.Equal(t, 1, code)
}
