package shimfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		name    string
		exePath string
		want    string
	}{
		{
			name:    "windows executable",
			exePath: `C:\apps\git.exe`,
			want:    `C:\apps\git.shim`,
		},
		{
			name:    "extension-less executable",
			exePath: "/usr/local/bin/tool",
			want:    "/usr/local/bin/tool.shim",
		},
		{
			name:    "dot in directory name",
			exePath: `C:\apps\v1.2\tool`,
			want:    `C:\apps\v1.2\tool.shim`,
		},
		{
			name:    "bare filename",
			exePath: "tool.exe",
			want:    "tool.shim",
		},
		{
			name:    "forward slashes with extension",
			exePath: "C:/apps/tool.exe",
			want:    "C:/apps/tool.shim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SidecarPath(tt.exePath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSidecarPath_TooLong(t *testing.T) {
	long := `C:\` + strings.Repeat("a", maxExePath)
	_, err := SidecarPath(long)
	assert.ErrorIs(t, err, ErrPathTooLong)

	// One byte under the limit is still accepted.
	ok := `C:\` + strings.Repeat("a", maxExePath-4)
	_, err = SidecarPath(ok)
	assert.NoError(t, err)
}

func TestLoad_MissingSidecar(t *testing.T) {
	exePath := filepath.Join(t.TempDir(), "ghost.exe")

	cfg, err := Load(exePath)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	exePath := filepath.Join(dir, "app.exe")

	content := "path = " + filepath.Join(dir, "real", "app.exe") + "\n" +
		"args = --root %~dp0\n" +
		"APP_HOME = %~dp0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.shim"), []byte(content), 0o644))

	cfg, err := Load(exePath)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "real", "app.exe"), cfg.TargetPath)
	assert.Equal(t, "--root "+dir, cfg.DeclaredArgs)
	// Environment overrides are stored after variable expansion only;
	// the directory placeholder is not expanded for them.
	assert.Equal(t, []EnvVar{{Name: "APP_HOME", Value: "%~dp0"}}, cfg.Env)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shimDir  string
		env      map[string]string
		wantPath string
		wantArgs string
		wantEnv  []EnvVar
	}{
		{
			name:     "plain path and args",
			input:    "path = C:\\tools\\app.exe\nargs = --verbose\n",
			shimDir:  `C:\shim`,
			wantPath: `C:\tools\app.exe`,
			wantArgs: "--verbose",
		},
		{
			name:     "path with space gets quoted",
			input:    "path = C:\\Program Files\\App\\app.exe\n",
			shimDir:  `C:\shim`,
			wantPath: `"C:\Program Files\App\app.exe"`,
		},
		{
			name:     "already quoted path left alone",
			input:    "path = \"C:\\Program Files\\App\\app.exe\"\n",
			shimDir:  `C:\shim`,
			wantPath: `"C:\Program Files\App\app.exe"`,
		},
		{
			name:     "path expands placeholder",
			input:    "path = %~dp0\\bin\\tool.exe\n",
			shimDir:  `C:\shim`,
			wantPath: `C:\shim\bin\tool.exe`,
		},
		{
			name:     "path expands environment variables",
			input:    "path = %SHIMFILE_TEST_ROOT%\\tool.exe\n",
			shimDir:  `C:\shim`,
			env:      map[string]string{"SHIMFILE_TEST_ROOT": `C:\opt`},
			wantPath: `C:\opt\tool.exe`,
		},
		{
			name:     "args expands placeholder only",
			input:    "args = --flag %~dp0\\data %SHIMFILE_TEST_ROOT%\n",
			shimDir:  `C:\shim`,
			env:      map[string]string{"SHIMFILE_TEST_ROOT": `C:\opt`},
			wantArgs: `--flag C:\shim\data %SHIMFILE_TEST_ROOT%`,
		},
		{
			name:    "lines without separator are ignored",
			input:   "# a comment\n\nkey=value\npath=C:\\tool.exe\n",
			shimDir: `C:\shim`,
		},
		{
			name:     "first separator splits the line",
			input:    "args = -m foo = bar\n",
			shimDir:  `C:\shim`,
			wantArgs: "-m foo = bar",
		},
		{
			name:    "empty key is ignored",
			input:   " = orphaned value\n",
			shimDir: `C:\shim`,
		},
		{
			name:    "environment overrides keep file order and duplicates",
			input:   "FOO = 1\nBAR = 2\nFOO = 3\n",
			shimDir: `C:\shim`,
			wantEnv: []EnvVar{
				{Name: "FOO", Value: "1"},
				{Name: "BAR", Value: "2"},
				{Name: "FOO", Value: "3"},
			},
		},
		{
			name:    "environment override expands known variable",
			input:   "APP_ROOT = %SHIMFILE_TEST_ROOT%\\app\n",
			shimDir: `C:\shim`,
			env:     map[string]string{"SHIMFILE_TEST_ROOT": `C:\opt`},
			wantEnv: []EnvVar{{Name: "APP_ROOT", Value: `C:\opt\app`}},
		},
		{
			name:    "environment override keeps unknown variable verbatim",
			input:   "FOO = %SHIMFILE_TEST_UNSET%\n",
			shimDir: `C:\shim`,
			wantEnv: []EnvVar{{Name: "FOO", Value: "%SHIMFILE_TEST_UNSET%"}},
		},
		{
			name:     "carriage returns are stripped",
			input:    "path = C:\\tool.exe\r\nargs = --quiet\r\n",
			shimDir:  `C:\shim`,
			wantPath: `C:\tool.exe`,
			wantArgs: "--quiet",
		},
		{
			name:    "empty input",
			input:   "",
			shimDir: `C:\shim`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Parse(strings.NewReader(tt.input), tt.shimDir)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, cfg.TargetPath)
			assert.Equal(t, tt.wantArgs, cfg.DeclaredArgs)
			assert.Equal(t, tt.wantEnv, cfg.Env)
		})
	}
}

func TestParse_ByteOrderMarks(t *testing.T) {
	const text = "path = C:\\tools\\app.exe\r\nargs = --quiet\r\n"

	utf16le := func(s string) []byte {
		out := []byte{0xFF, 0xFE}
		for _, r := range s {
			out = append(out, byte(r), byte(r>>8))
		}
		return out
	}
	utf16be := func(s string) []byte {
		out := []byte{0xFE, 0xFF}
		for _, r := range s {
			out = append(out, byte(r>>8), byte(r))
		}
		return out
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"plain utf-8", []byte(text)},
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{"utf-16 little endian", utf16le(text)},
		{"utf-16 big endian", utf16be(text)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(bytes.NewReader(tt.input), `C:\shim`)
			require.NoError(t, err)

			assert.Equal(t, `C:\tools\app.exe`, cfg.TargetPath)
			assert.Equal(t, "--quiet", cfg.DeclaredArgs)
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.shim")

	cfg := &Config{
		TargetPath:   `C:\tools\app.exe`,
		DeclaredArgs: "--verbose",
		Env: []EnvVar{
			{Name: "APP_MODE", Value: "fast"},
			{Name: "APP_DIR", Value: `C:\data`},
		},
	}
	require.NoError(t, Write(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "path = C:\\tools\\app.exe\n" +
		"args = --verbose\n" +
		"APP_MODE = fast\n" +
		"APP_DIR = C:\\data\n"
	assert.Equal(t, want, string(data))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := Parse(f, `C:\shim`)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestWrite_SkipsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.shim")

	require.NoError(t, Write(path, &Config{TargetPath: `C:\tool.exe`}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "path = C:\\tool.exe\n", string(data))
}
