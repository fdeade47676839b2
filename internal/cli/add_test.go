package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiennq/scoop-better-shimexe/internal/config"
	"github.com/kiennq/scoop-better-shimexe/internal/shimfile"
)

const shimTemplate = "#!/bin/sh\nexit 0\n"

// testContext builds a cliContext with a throwaway shim directory and
// a stand-in shim binary to copy from.
func testContext(t *testing.T) *cliContext {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "shim-template")
	require.NoError(t, os.WriteFile(source, []byte(shimTemplate), 0o755))

	return &cliContext{
		cfg:     &config.Config{ShimSource: source},
		shimDir: filepath.Join(dir, "shims"),
	}
}

func writeTarget(t *testing.T, name string) string {
	t.Helper()

	target := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(target, []byte("binary"), 0o755))
	return target
}

func TestRunAdd(t *testing.T) {
	ctx := testContext(t)
	target := writeTarget(t, "tool.exe")

	err := RunAdd(ctx, &AddOptions{
		Target: target,
		Args:   "--plain",
		Env:    []string{"TOOL_HOME=%~dp0", "MODE=fast"},
	})
	require.NoError(t, err)

	shimPath := filepath.Join(ctx.shimDir, executableName("tool"))
	copied, err := os.ReadFile(shimPath)
	require.NoError(t, err)
	assert.Equal(t, shimTemplate, string(copied))

	sidecar, err := shimfile.SidecarPath(shimPath)
	require.NoError(t, err)
	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)
	want := "path = " + target + "\n" +
		"args = --plain\n" +
		"TOOL_HOME = %~dp0\n" +
		"MODE = fast\n"
	assert.Equal(t, want, string(data))
}

func TestRunAdd_ExistingShim(t *testing.T) {
	ctx := testContext(t)
	target := writeTarget(t, "tool.exe")

	opts := &AddOptions{Target: target}
	require.NoError(t, RunAdd(ctx, opts))

	err := RunAdd(ctx, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	opts.Force = true
	opts.Args = "--replaced"
	require.NoError(t, RunAdd(ctx, opts))

	cfg, err := shimfile.Load(filepath.Join(ctx.shimDir, executableName("tool")))
	require.NoError(t, err)
	assert.Equal(t, "--replaced", cfg.DeclaredArgs)
}

func TestRunAdd_CustomName(t *testing.T) {
	ctx := testContext(t)
	target := writeTarget(t, "tool.exe")

	require.NoError(t, RunAdd(ctx, &AddOptions{Target: target, Name: "t"}))

	_, err := os.Stat(filepath.Join(ctx.shimDir, executableName("t")))
	assert.NoError(t, err)
}

func TestRunAdd_InvalidEnvOverride(t *testing.T) {
	ctx := testContext(t)
	target := writeTarget(t, "tool.exe")

	err := RunAdd(ctx, &AddOptions{Target: target, Env: []string{"NO_SEPARATOR"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid environment override")
}

func TestParseEnvOverrides(t *testing.T) {
	env, err := parseEnvOverrides([]string{"A=1", "B=x=y", "A=2"})
	require.NoError(t, err)
	assert.Equal(t, []shimfile.EnvVar{
		{Name: "A", Value: "1"},
		{Name: "B", Value: "x=y"},
		{Name: "A", Value: "2"},
	}, env)

	_, err = parseEnvOverrides([]string{"=value"})
	assert.Error(t, err)
}

func TestCollectShims(t *testing.T) {
	ctx := testContext(t)

	// Missing directory reads as empty, not as an error.
	shims, err := collectShims(ctx.shimDir)
	require.NoError(t, err)
	assert.Empty(t, shims)

	require.NoError(t, RunAdd(ctx, &AddOptions{Target: writeTarget(t, "bravo.exe"), Args: "--b"}))
	require.NoError(t, RunAdd(ctx, &AddOptions{Target: writeTarget(t, "alpha.exe")}))

	shims, err = collectShims(ctx.shimDir)
	require.NoError(t, err)
	require.Len(t, shims, 2)

	assert.Equal(t, "alpha", shims[0].Name)
	assert.Empty(t, shims[0].Args)
	assert.Equal(t, "bravo", shims[1].Name)
	assert.Equal(t, "--b", shims[1].Args)
	assert.Contains(t, shims[1].Target, "bravo.exe")
}

func TestRunRemove(t *testing.T) {
	ctx := testContext(t)
	require.NoError(t, RunAdd(ctx, &AddOptions{Target: writeTarget(t, "tool.exe")}))

	require.NoError(t, RunRemove(ctx, []string{"tool"}))

	_, err := os.Stat(filepath.Join(ctx.shimDir, executableName("tool")))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(ctx.shimDir, "tool.shim"))
	assert.True(t, os.IsNotExist(err))

	err = RunRemove(ctx, []string{"tool"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shim named")
}

func TestRunInfo_MissingShim(t *testing.T) {
	ctx := testContext(t)

	err := RunInfo(ctx, "ghost", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shim named")
}

func TestRunInfo(t *testing.T) {
	ctx := testContext(t)
	require.NoError(t, RunAdd(ctx, &AddOptions{Target: writeTarget(t, "tool.exe")}))

	assert.NoError(t, RunInfo(ctx, "tool", false))
	assert.NoError(t, RunInfo(ctx, "tool", true))
}
