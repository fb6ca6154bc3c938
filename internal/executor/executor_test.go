package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/gust/internal/recipe"
)

func newTestExecutor(t *testing.T) (*Executor, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	exec := New(Options{Dir: dir, Stdout: &out, Stderr: &out})
	return exec, &out, dir
}

func body(lines ...recipe.Line) []recipe.Line { return lines }

func TestRunEchoesCommandBeforeOutput(t *testing.T) {
	t.Parallel()

	exec, out, _ := newTestExecutor(t)
	r := &recipe.Recipe{
		Name: "greet",
		Body: body(recipe.Line{Text: "echo hello", Echo: recipe.EchoCommand}),
	}

	require.NoError(t, exec.Run(context.Background(), []*recipe.Recipe{r}))
	require.Equal(t, "echo hello\nhello\n", out.String())
}

func TestRunSuppressedLineSkipsEcho(t *testing.T) {
	t.Parallel()

	exec, out, _ := newTestExecutor(t)
	r := &recipe.Recipe{
		Name: "greet",
		Body: body(recipe.Line{Text: "echo hello", Echo: recipe.EchoSuppressed}),
	}

	require.NoError(t, exec.Run(context.Background(), []*recipe.Recipe{r}))
	require.Equal(t, "hello\n", out.String())
}

func TestRunQuietOptionSuppressesAllEcho(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	exec := New(Options{Dir: dir, Stdout: &out, Stderr: &out, Quiet: true})
	r := &recipe.Recipe{
		Name: "greet",
		Body: body(recipe.Line{Text: "echo hello", Echo: recipe.EchoCommand}),
	}

	require.NoError(t, exec.Run(context.Background(), []*recipe.Recipe{r}))
	require.Equal(t, "hello\n", out.String())
}

func TestRunFailingLineAbortsRecipe(t *testing.T) {
	t.Parallel()

	exec, _, dir := newTestExecutor(t)
	r := &recipe.Recipe{
		Name:  "fails",
		Quiet: true,
		Body: body(
			recipe.Line{Text: "exit 3", Echo: recipe.EchoSuppressed},
			recipe.Line{Text: "touch after-failure", Echo: recipe.EchoSuppressed},
		),
	}

	err := exec.Run(context.Background(), []*recipe.Recipe{r})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.Code)
	require.Equal(t, "fails", exitErr.Recipe)
	require.Equal(t, "exit 3", exitErr.Line)

	require.NoFileExists(t, filepath.Join(dir, "after-failure"))
}

func TestRunFailedDependencySkipsDependentBody(t *testing.T) {
	t.Parallel()

	exec, _, dir := newTestExecutor(t)
	dep := &recipe.Recipe{
		Name:  "dep",
		Quiet: true,
		Body:  body(recipe.Line{Text: "exit 7", Echo: recipe.EchoSuppressed}),
	}
	target := &recipe.Recipe{
		Name:         "target",
		Quiet:        true,
		Dependencies: []string{"dep"},
		Body:         body(recipe.Line{Text: "touch dependent-ran", Echo: recipe.EchoSuppressed}),
	}

	// The resolved order places the dependency first; its failure must
	// abort before the dependent's body runs.
	err := exec.Run(context.Background(), []*recipe.Recipe{dep, target})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 7, exitErr.Code)
	require.Equal(t, "dep", exitErr.Recipe)

	require.NoFileExists(t, filepath.Join(dir, "dependent-ran"))
}

func TestRunCommandsExecuteInDeclaredOrder(t *testing.T) {
	t.Parallel()

	exec, _, dir := newTestExecutor(t)
	r := &recipe.Recipe{
		Name:  "ordered",
		Quiet: true,
		Body: body(
			recipe.Line{Text: "echo one >> log", Echo: recipe.EchoSuppressed},
			recipe.Line{Text: "echo two >> log", Echo: recipe.EchoSuppressed},
			recipe.Line{Text: "echo three >> log", Echo: recipe.EchoSuppressed},
		),
	}

	require.NoError(t, exec.Run(context.Background(), []*recipe.Recipe{r}))

	data, err := os.ReadFile(filepath.Join(dir, "log"))
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\nthree\n", string(data))
}

func TestRunEmptyBodyIsNoOp(t *testing.T) {
	t.Parallel()

	exec, out, _ := newTestExecutor(t)
	r := &recipe.Recipe{Name: "noop"}

	require.NoError(t, exec.Run(context.Background(), []*recipe.Recipe{r}))
	require.Empty(t, out.String())
}

func TestRunSignaledCommandIsDistinguished(t *testing.T) {
	t.Parallel()

	exec, _, _ := newTestExecutor(t)
	r := &recipe.Recipe{
		Name:  "doomed",
		Quiet: true,
		Body:  body(recipe.Line{Text: "kill -TERM $$", Echo: recipe.EchoSuppressed}),
	}

	err := exec.Run(context.Background(), []*recipe.Recipe{r})

	var sigErr *SignalError
	require.ErrorAs(t, err, &sigErr)
	require.Equal(t, syscall.SIGTERM, sigErr.Signal)
	require.Equal(t, 128+int(syscall.SIGTERM), sigErr.ExitCode())

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr), "signal death must not map to ExitError")
}
