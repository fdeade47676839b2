//go:build !windows

package launch

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableStartAndWait(t *testing.T) {
	sys := NewSystem()

	proc, thread, err := sys.StartSuspended("sh -c 'exit 7'")
	require.NoError(t, err)
	require.NoError(t, thread.Resume())

	code, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	assert.NoError(t, proc.Close())
	assert.NoError(t, thread.Close())
}

func TestPortableStartAndWait_CleanExit(t *testing.T) {
	proc, _, err := NewSystem().StartSuspended("true")
	require.NoError(t, err)

	code, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestPortableStart_EmptyCommandLine(t *testing.T) {
	_, _, err := NewSystem().StartSuspended("   ")
	assert.Error(t, err)
}

func TestPortableStart_MissingProgram(t *testing.T) {
	_, _, err := NewSystem().StartSuspended("definitely-not-on-path-anywhere")
	assert.Error(t, err)
}

func TestPortableElevationNeverTriggers(t *testing.T) {
	sys := NewSystem()

	assert.False(t, sys.ElevationRequired(errors.New("access denied")))
	assert.False(t, sys.ElevationRequired(nil))

	_, err := sys.StartElevated("/bin/true", "")
	assert.Error(t, err)
}

func TestPortableContainmentIsSatisfiedAtSpawn(t *testing.T) {
	sys := NewSystem()

	cont, err := sys.NewContainment()
	require.NoError(t, err)
	assert.NoError(t, cont.Assign(nil))
	assert.NoError(t, cont.Close())

	attr := groupAttr()
	require.NotNil(t, attr)
	assert.True(t, attr.Setpgid)
}

func TestPortableSetEnv(t *testing.T) {
	t.Setenv("LAUNCH_SETENV_TEST", "before")

	require.NoError(t, NewSystem().SetEnv("LAUNCH_SETENV_TEST", "after"))
	assert.Equal(t, "after", os.Getenv("LAUNCH_SETENV_TEST"))
}
