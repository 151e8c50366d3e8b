package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitdoc/internal/domain"
)

const bellSource = "from qiskit import QuantumCircuit\nqc = QuantumCircuit(2)\nqc.h(0)\nqc.cx(0, 1)\n"

// run executes the root command against dir with fresh flag state.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cfgFile, rootDir = "", ""
	explainFormat, explainOutput = "", ""
	explainCheck, explainPrintDoc, explainNoHistory = false, false, false
	scanForce, scanDocsDir, scanJobs = false, "", 0
	historyJSON, gatesVerbose = false, false
	logOut = &bytes.Buffer{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"-d", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExplainCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bell.py"), []byte(bellSource), 0644))

	out, err := run(t, dir, "explain", "bell.py")
	require.NoError(t, err)

	var result domain.ParseResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "qc", result.CircuitName)
	assert.Equal(t, 2, result.QubitNum)
	require.Len(t, result.Gates, 2)
	assert.Equal(t, "CNOT", result.Gates[1].Name)

	doc, err := os.ReadFile(filepath.Join(dir, "circuit.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "### Hadamard Gate on 0\n")
	assert.Contains(t, string(doc), "### CNOT Gate on 0, 1\n")

	_, err = os.Stat(filepath.Join(dir, ".circuitdoc", "history.db"))
	assert.NoError(t, err)
}

func TestExplainCommand_Check(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bell.py")
	require.NoError(t, os.WriteFile(src, []byte(bellSource), 0644))

	_, err := run(t, dir, "explain", "bell.py", "--no-history")
	require.NoError(t, err)

	out, err := run(t, dir, "explain", "bell.py", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	require.NoError(t, os.WriteFile(src, []byte(bellSource+"qc.x(1)\n"), 0644))
	out, err = run(t, dir, "explain", "bell.py", "--check")
	assert.ErrorIs(t, err, errStale)
	assert.Contains(t, out, "+### Pauli-X Gate on 1")
}

func TestExplainCommand_TextFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bell.py"), []byte(bellSource), 0644))

	out, err := run(t, dir, "explain", "bell.py", "-f", "text", "-o", "docs/bell.md", "--no-history", "--print-doc")
	require.NoError(t, err)
	assert.Contains(t, out, "Hadamard")
	assert.Contains(t, out, "qubits: [0, 1]")
	assert.Contains(t, out, "### CNOT Gate on 0, 1\n")

	_, err = os.Stat(filepath.Join(dir, "docs", "bell.md"))
	assert.NoError(t, err)
}

func TestExplainCommand_MissingFile(t *testing.T) {
	_, err := run(t, t.TempDir(), "explain", "nope.py")
	assert.Error(t, err)
}

func TestScanThenShow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "algos"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "algos", "bell.py"), []byte(bellSource), 0644))

	out, err := run(t, dir, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Files explained:   1")

	doc, err := os.ReadFile(filepath.Join(dir, ".circuitdoc", "docs", "algos", "bell.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "### Hadamard Gate on 0\n")

	out, err = run(t, dir, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Files skipped:     1")

	out, err = run(t, dir, "history", "--json")
	require.NoError(t, err)
	var recs []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, filepath.Join(dir, "algos", "bell.py"), recs[0].Path)

	out, err = run(t, dir, "show", "algos/bell.py")
	require.NoError(t, err)
	assert.Contains(t, out, `"circuitName": "qc"`)
	assert.Contains(t, out, "### CNOT Gate on 0, 1\n")

	_, err = run(t, dir, "show", "missing.py")
	assert.Error(t, err)
}

func TestGatesCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "gates", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "Toffoli")
	assert.Contains(t, out, "{lambda}")
}
