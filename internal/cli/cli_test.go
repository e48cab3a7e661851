// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragify-tui/internal/commands"
	"github.com/jeranaias/ragify-tui/internal/storage"
	"github.com/jeranaias/ragify-tui/internal/terminal"
)

// testEnv isolates a test from the user's home, config and environment.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{
		"RAGIFY_DATA_DIR", "RAGIFY_STORAGE", "RAGIFY_LOG_LEVEL",
		"RAGIFY_LOG_FILE", "RAGIFY_THEME", "RAGIFY_TYPING_SPEED_MS",
	} {
		t.Setenv(name, "")
	}
	return t.TempDir()
}

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	require.NoError(t, err, "ragify %s", strings.Join(args, " "))
	return out
}

// listRows returns the plain chat list as [id, title, updated, active] rows.
func listRows(t *testing.T, dataDir string) [][]string {
	t.Helper()
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(mustRun(t, dataDir, "chats", "list"), "\n"), "\n") {
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}

func newChat(t *testing.T, dataDir, title string) string {
	t.Helper()
	out := mustRun(t, dataDir, "--json", "chats", "new", title)
	var resp struct {
		Success bool     `json:"success"`
		Data    ChatInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, resp.Success)
	return resp.Data.ID
}

func TestChatsList_SeedState(t *testing.T) {
	dir := testEnv(t)

	rows := listRows(t, dir)
	require.Len(t, rows, 1)
	assert.Equal(t, "Welcome chat", rows[0][1])
	assert.Equal(t, "", rows[0][3], "seed has no active chat")

	// The seed id is stable across runs.
	again := listRows(t, dir)
	assert.Equal(t, rows[0][0], again[0][0])
}

func TestChatsNew_PrependsAndActivates(t *testing.T) {
	dir := testEnv(t)

	id := newChat(t, dir, "Notes")

	rows := listRows(t, dir)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{id, "Notes"}, rows[0][:2])
	assert.Equal(t, "*", rows[0][3])
	assert.Equal(t, "Welcome chat", rows[1][1])
}

func TestChatsNew_DefaultTitle(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "chats", "new")
	assert.Contains(t, out, `Created "Untitled"`)
}

func TestChatsNew_BlankTitleIsUntitled(t *testing.T) {
	for _, title := range []string{"", "   ", "\t"} {
		dir := testEnv(t)
		id := newChat(t, dir, title)

		rows := listRows(t, dir)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{id, "Untitled"}, rows[0][:2], "title %q", title)
	}
}

func TestChatsNew_TrimsTitle(t *testing.T) {
	dir := testEnv(t)
	newChat(t, dir, "  Notes  ")
	assert.Equal(t, "Notes", listRows(t, dir)[0][1])
}

func TestChatsRename(t *testing.T) {
	dir := testEnv(t)
	id := newChat(t, dir, "Old")

	mustRun(t, dir, "chats", "rename", id, "New", "name")
	assert.Equal(t, "New name", listRows(t, dir)[0][1])

	mustRun(t, dir, "chats", "rename", id, "   ")
	assert.Equal(t, "Untitled", listRows(t, dir)[0][1])
}

func TestChatsRename_UnknownID(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir, "chats", "rename", "nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestChatsSelect(t *testing.T) {
	dir := testEnv(t)
	welcome := listRows(t, dir)[0][0]
	newChat(t, dir, "Notes")

	mustRun(t, dir, "chats", "select", welcome)

	for _, row := range listRows(t, dir) {
		assert.Equal(t, row[0] == welcome, row[3] == "*", row[1])
	}
}

func TestChatsDelete_RemovesMessages(t *testing.T) {
	dir := testEnv(t)
	welcome := listRows(t, dir)[0][0]
	id := newChat(t, dir, "Scratch")
	mustRun(t, dir, "exec", "--chat", id, "hello")

	store, err := storage.NewFileStore(filepath.Join(dir, "records"))
	require.NoError(t, err)
	_, err = store.Get(terminal.RecordKey(id))
	require.NoError(t, err, "message record written")

	mustRun(t, dir, "chats", "delete", id)

	rows := listRows(t, dir)
	require.Len(t, rows, 1)
	assert.Equal(t, welcome, rows[0][0])
	assert.Equal(t, "*", rows[0][3], "first remaining chat becomes active")

	_, err = store.Get(terminal.RecordKey(id))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExec_Interpreter(t *testing.T) {
	dir := testEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"echo", []string{"hello", "world"}, "hello world\n"},
		{"help", []string{"help"}, commands.HelpText + "\n"},
		{"clear prints nothing", []string{"clear"}, ""},
		{"case sensitive", []string{"CLEAR"}, "CLEAR\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, dir, append([]string{"exec"}, tt.args...)...)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestExec_BlankLine(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir, "exec", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank")
}

func TestExec_ChatRecordsHistory(t *testing.T) {
	dir := testEnv(t)
	id := newChat(t, dir, "Log")

	mustRun(t, dir, "exec", "--chat", id, "one")
	mustRun(t, dir, "exec", "--chat", id, "one")
	mustRun(t, dir, "exec", "--chat", id, "two")

	store, err := storage.NewFileStore(filepath.Join(dir, "records"))
	require.NoError(t, err)
	rec, err := terminal.LoadRecord(store, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, rec.History)
	assert.Len(t, rec.Messages, 6)

	mustRun(t, dir, "exec", "--chat", id, "clear")
	rec, err = terminal.LoadRecord(store, id)
	require.NoError(t, err)
	assert.Empty(t, rec.Messages)
	assert.Equal(t, []string{"one", "two", "clear"}, rec.History)
}

func TestExec_JSON(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "--json", "exec", "clear")

	var resp struct {
		Success bool       `json:"success"`
		Data    ExecOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, commands.KindClear.String(), resp.Data.Kind)
}

func TestExport_Stdout(t *testing.T) {
	dir := testEnv(t)
	id := newChat(t, dir, "Demo")
	mustRun(t, dir, "exec", "--chat", id, "hi there")

	out := mustRun(t, dir, "export", id)
	assert.Contains(t, out, "# Demo")
	assert.Contains(t, out, "> hi there")
}

func TestExport_JSONFile(t *testing.T) {
	dir := testEnv(t)
	outDir := t.TempDir()
	id := newChat(t, dir, "Demo")
	mustRun(t, dir, "exec", "--chat", id, "ping")

	out := mustRun(t, dir, "export", id, "--format", "json", "--out", outDir)
	assert.Contains(t, out, "Exported to")

	matches, err := filepath.Glob(filepath.Join(outDir, "chat_Demo_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ping"`)
}

func TestExport_BadFormat(t *testing.T) {
	dir := testEnv(t)
	id := newChat(t, dir, "Demo")
	_, err := run(t, dir, "export", id, "--format", "pdf")
	require.Error(t, err)
}

func TestChatsList_JSON(t *testing.T) {
	dir := testEnv(t)
	newChat(t, dir, "A")

	out := mustRun(t, dir, "--json", "chats", "list")
	var resp struct {
		Success bool           `json:"success"`
		Command string         `json:"command"`
		Data    ChatListOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "chats list", resp.Command)
	assert.Equal(t, 2, resp.Data.Count)
	assert.True(t, resp.Data.Chats[0].Active)
}

func TestStorageBackends(t *testing.T) {
	t.Run("sqlite round trip", func(t *testing.T) {
		dir := testEnv(t)
		out := mustRun(t, dir, "--storage", "sqlite", "--json", "chats", "new", "Kept")
		assert.Contains(t, out, "Kept")
		assert.Contains(t, mustRun(t, dir, "--storage", "sqlite", "chats", "list"), "Kept")
	})

	t.Run("memory forgets", func(t *testing.T) {
		dir := testEnv(t)
		mustRun(t, dir, "--storage", "memory", "chats", "new", "Gone")
		assert.NotContains(t, mustRun(t, dir, "--storage", "memory", "chats", "list"), "Gone")
	})
}

func TestUnknownStorageBackend(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir, "--storage", "redis", "chats", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
}

func TestConfigFlag(t *testing.T) {
	dir := testEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "ragify.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  backend: memory\n"), 0o600))

	mustRun(t, dir, "--config", cfgPath, "chats", "new", "Ephemeral")
	assert.NotContains(t, mustRun(t, dir, "--config", cfgPath, "chats", "list"), "Ephemeral")

	_, err := run(t, dir, "--config", filepath.Join(dir, "missing.toml"), "chats", "list")
	assert.Error(t, err)
}

func TestCommandsAndVersion(t *testing.T) {
	dir := testEnv(t)

	out := mustRun(t, dir, "commands")
	assert.Contains(t, out, "help")
	assert.Contains(t, out, "clear")
	assert.Contains(t, out, "ctrl+l")

	out = mustRun(t, dir, "--json", "version")
	var resp struct {
		Data VersionOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, Version, resp.Data.Version)
}

func TestRootNeedsTerminal(t *testing.T) {
	dir := testEnv(t)
	_, err := run(t, dir)
	assert.ErrorIs(t, err, ErrNotTerminal)
}
