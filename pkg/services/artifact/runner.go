package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command in a working directory with an
// explicit environment.
type CommandRunner interface {
	Run(ctx context.Context, dir string, env []string, name string, args ...string) error
}

// ExecRunner runs commands through os/exec, streaming output to the
// deployer's stdout/stderr.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) error {
	slog.Info("Running command", "cmd", name+" "+strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s failed: %w", name, err)
	}
	return nil
}

// mergedEnv appends the explicit build variables to a base environment,
// later entries overriding earlier ones by os/exec semantics.
func mergedEnv(base []string, vars map[string]string) []string {
	out := make([]string, 0, len(base)+len(vars))
	out = append(out, base...)
	for key, value := range vars {
		out = append(out, key+"="+value)
	}
	return out
}
