package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

const charactersModel = "../../sklearn/tree/testdata/characters.json"

// run executes the CLI with args and returns what it printed on stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := cliParser()
	cmd.SetArgs(append([]string{"--model", charactersModel, "--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "treeguess v"+Version+"\n", out)
}

func TestNode_Question(t *testing.T) {
	out, err := run(t, "", "node", "5")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Is the character's age ≤ 16.5?", got["question"])
	assert.Equal(t, "numeric", got["kind"])
	assert.EqualValues(t, 6, got["yes"])
	assert.EqualValues(t, 7, got["no"])
	assert.Contains(t, out, "≤", "output should not escape the comparison sign")
}

func TestNode_Guess(t *testing.T) {
	out, err := run(t, "", "node", "8")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Kakashi HATAKE", got["guess"])
	assert.EqualValues(t, 1, got["confidence"])
}

func TestNode_Errors(t *testing.T) {
	_, err := run(t, "", "node", "42")
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	_, err = run(t, "", "node", "five")
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}

func TestPlay(t *testing.T) {
	out, err := run(t, "maybe\nyes\ny\n", "play")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Is the character male?"), "an unparsable answer repeats the question")
	assert.Contains(t, out, "Please answer yes or no.")
	assert.Contains(t, out, "Does the character have mask?")
	assert.True(t, strings.HasSuffix(out, "You are thinking of Kakashi HATAKE! (100% sure)\n"), out)
}

func TestPlay_InputEnds(t *testing.T) {
	_, err := run(t, "no\n", "play")
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	out, err := run(t, "", "paths", "Naruto UZUMAKI", "--majority")
	require.NoError(t, err)
	want := "Path 1 (leaf 6):\n" +
		"  - Is the character male? YES\n" +
		"  - Does the character have mask? NO\n" +
		"  - Is the character's age ≤ 16.5? YES\n"
	assert.Equal(t, want, out)

	out, err = run(t, "", "paths", "Naruto UZUMAKI")
	require.NoError(t, err)
	assert.Contains(t, out, "Path 2 (leaf 7):")

	out, err = run(t, "", "paths", "Naruto UZUMAKI", "--majority", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "  - gender_male > 0.5\n")
	assert.Contains(t, out, "  - age <= 16.5\n")

	out, err = run(t, "", "paths", "Gaara")
	require.NoError(t, err)
	assert.Equal(t, "No path found for Gaara.\n", out)
}

func TestReport(t *testing.T) {
	svg := filepath.Join(t.TempDir(), "depths.svg")
	out, err := run(t, "", "report", "--histogram", svg)
	require.NoError(t, err)

	assert.Contains(t, out, "nodes:     9 (5 leaves)\n")
	assert.Contains(t, out, "depth:     3\n")
	assert.Contains(t, out, "accuracy:  0.828\n")
	assert.Contains(t, out, "histogram written to "+svg)

	info, err := os.Stat(svg)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSetup_MissingModel(t *testing.T) {
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetArgs([]string{"--model", filepath.Join(t.TempDir(), "missing.json"), "--log-level", "error", "node", "0"})
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	var le *errors.LoadError
	assert.True(t, errors.As(err, &le), "got %v", err)
}
