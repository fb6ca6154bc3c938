package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/gust/internal/graph"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

func writeGustfile(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gustfile")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Execute(context.Background(), &out, &out, args)
	return out.String(), err
}

func TestNoArgumentsListsRecipes(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t,
		"# compile everything\n"+
			"build:\n"+
			"\ttouch built\n"+
			"\n"+
			"# run checks\n"+
			"check: build\n"+
			"\ttouch checked\n")

	out, err := execute(t, "-f", path)
	require.NoError(t, err)
	require.Equal(t, "build  compile everything\ncheck  run checks\n", out)

	// List mode must not execute anything.
	dir := filepath.Dir(path)
	require.NoFileExists(t, filepath.Join(dir, "built"))
	require.NoFileExists(t, filepath.Join(dir, "checked"))
}

func TestListFlagWinsOverRecipeNames(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "build:\n\ttouch built\n")

	out, err := execute(t, "-f", path, "-l", "build")
	require.NoError(t, err)
	require.Contains(t, out, "build")
	require.NoFileExists(t, filepath.Join(filepath.Dir(path), "built"))
}

func TestRunRecipeEchoesAndExecutes(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "greet:\n\techo hello\n")

	out, err := execute(t, "-f", path, "greet")
	require.NoError(t, err)
	require.Equal(t, "echo hello\nhello\n", out)
}

func TestQuietFlagSuppressesEcho(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "greet:\n\techo hello\n")

	out, err := execute(t, "-f", path, "-q", "greet")
	require.NoError(t, err)
	require.Equal(t, "hello\n", out)
}

func TestUnknownRecipeFailsWithoutExecution(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "@build:\n\ttouch built\n")

	_, err := execute(t, "-f", path, "nope")
	require.ErrorIs(t, err, graph.ErrNotFound)
	require.NoFileExists(t, filepath.Join(filepath.Dir(path), "built"))
}

func TestInvalidLogLevelIsConfigurationError(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "build:\n\ttrue\n")

	_, err := execute(t, "-f", path, "--log-level", "loud", "build")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestInvalidLogFormatIsConfigurationError(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t, "build:\n\ttrue\n")

	_, err := execute(t, "-f", path, "--log-format", "yaml", "build")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestMultipleRecipeNamesRunInOrder(t *testing.T) {
	t.Parallel()

	path := writeGustfile(t,
		"@one:\n\techo one >> log\n"+
			"\n"+
			"@two:\n\techo two >> log\n")

	_, err := execute(t, "-f", path, "one", "two")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "log"))
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))
}
