// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and embedded content.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSkipConfirm(t *testing.T, v bool) {
	t.Helper()
	old := skillSkipConfirm
	skillSkipConfirm = v
	t.Cleanup(func() { skillSkipConfirm = old })
}

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	require.NoError(t, err)

	s := string(content)
	assert.True(t, strings.HasPrefix(s, "---"), "expected YAML frontmatter")
	assert.Contains(t, s, "name: nutriplan")
	assert.Contains(t, s, "description:")
	assert.Contains(t, s, "## When to use nutriplan")
}

func TestSkillReferencesEveryTool(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	require.NoError(t, err)

	for _, tool := range []string{
		"calculate_profile",
		"generate_meal_timing",
		"save_plan",
		"list_plans",
		"get_plan",
		"delete_plan",
		"list_catalog",
	} {
		assert.Contains(t, string(content), "mcp__nutriplan__"+tool)
	}
}

func TestInstallSkillWithYes(t *testing.T) {
	withSkipConfirm(t, true)
	home := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, installSkill(home, strings.NewReader(""), &out))

	written, err := os.ReadFile(skillPath(home))
	require.NoError(t, err)
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	assert.Equal(t, embedded, written)

	info, err := os.Stat(filepath.Dir(skillPath(home)))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out.String(), "Installed nutriplan skill")
}

func TestInstallSkillConfirmed(t *testing.T) {
	withSkipConfirm(t, false)
	home := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, installSkill(home, strings.NewReader("yes\n"), &out))

	_, err := os.Stat(skillPath(home))
	assert.NoError(t, err)
}

func TestInstallSkillDeclined(t *testing.T) {
	withSkipConfirm(t, false)
	home := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, installSkill(home, strings.NewReader("n\n"), &out))

	_, err := os.Stat(skillPath(home))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "Installation canceled.")
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	withSkipConfirm(t, true)
	home := t.TempDir()
	path := skillPath(home)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("# stale content"), 0600))

	var out bytes.Buffer
	require.NoError(t, installSkill(home, strings.NewReader(""), &out))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(written), "stale content")
	assert.Contains(t, out.String(), "already exists")
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	require.NotNil(t, flag)
	assert.Equal(t, "y", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}
