package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	companies := writeFile(t, dir, "companies.json", `[{"index": 0, "company": "Hivery"}]`)
	people := writeFile(t, dir, "people.json", `[
		{"index": 1, "company_id": 1, "friends": [{"index": 2}], "favouriteFood": ["orange"]},
		{"index": 2, "company_id": 1, "friends": [{"index": 1}, {"index": 9}]}
	]`)
	foods := writeFile(t, dir, "foods.json", `{"orange": "fruit"}`)

	out, err := execute("validate", "--companies", companies, "--people", people, "--foods", foods)
	require.NoError(t, err)
	assert.Contains(t, out, "people:       2")
	assert.Contains(t, out, "friendships:  1")
	assert.Contains(t, out, "dangling:     1")
}

func TestValidateCommand_Fails(t *testing.T) {
	dir := t.TempDir()
	companies := writeFile(t, dir, "companies.json", `[{"index": 0, "company": "Hivery"}]`)
	people := writeFile(t, dir, "people.json", `[{"index": 1, "company_id": 5}]`)
	foods := writeFile(t, dir, "foods.json", `{}`)

	_, err := execute("validate", "--companies", companies, "--people", people, "--foods", foods)
	assert.Error(t, err)
}

func TestGenFoodsCommand(t *testing.T) {
	dir := t.TempDir()
	people := writeFile(t, dir, "people.json", `[
		{"index": 1, "company_id": 1, "favouriteFood": ["Orange ", "beetroot"]},
		{"index": 2, "company_id": 1, "favouriteFood": ["orange", ""]}
	]`)
	outPath := filepath.Join(dir, "foods.json")

	out, err := execute("gen-foods", "--people", people, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# citizens: 2")

	body, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var vocab map[string]string
	require.NoError(t, json.Unmarshal(body, &vocab))
	assert.Equal(t, map[string]string{"beetroot": "classify_me", "orange": "classify_me"}, vocab)
}

func TestResetCommand_Aborts(t *testing.T) {
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("BADGER_IN_MEMORY", "true")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(bytes.NewBufferString("no\n"))
	cmd.SetArgs([]string{"reset"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Aborted.")
}

func TestResetCommand_InMemory(t *testing.T) {
	t.Setenv("STORE_BACKEND", "badger")
	t.Setenv("BADGER_IN_MEMORY", "true")

	out, err := execute("reset", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Store reset.")
}
