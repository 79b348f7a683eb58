// Package artifact builds the frontend project and validates its build
// output before it is shipped to the bucket. The build tool itself is an
// external collaborator; this package only decides whether to invoke it and
// with which environment.
package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type BuilderI interface {
	Build(ctx context.Context, opts BuildOptions) error
}

// BuildOptions carries everything a build invocation needs. Env holds the
// build-time variables and is passed explicitly on the child command's
// environment rather than being set process-wide.
type BuildOptions struct {
	FrontendDir string
	OutputDir   string
	Env         map[string]string
}

// NpmBuilder runs the frontend build through npm. The command runner is a
// seam so tests can assert the build tool is or is not invoked.
type NpmBuilder struct {
	Runner CommandRunner
}

func NewNpmBuilder(runner CommandRunner) *NpmBuilder {
	if runner == nil {
		runner = &ExecRunner{}
	}
	return &NpmBuilder{Runner: runner}
}

// Build produces the frontend build output. When the output directory already
// holds files the build tool is not invoked and the existing artifacts are
// reused. A failed build falls back to a previous non-empty output with a
// warning; with no previous output the build failure is fatal.
func (b *NpmBuilder) Build(ctx context.Context, opts BuildOptions) error {
	if err := validatePrerequisites(opts.FrontendDir); err != nil {
		return err
	}

	nonEmpty, err := DirNonEmpty(opts.OutputDir)
	if err != nil {
		return err
	}
	if nonEmpty {
		slog.Info("Build output already exists, skipping build", "dir", opts.OutputDir)
		return nil
	}

	env := mergedEnv(os.Environ(), opts.Env)

	slog.Info("Installing dependencies")
	if err := b.Runner.Run(ctx, opts.FrontendDir, env, "npm", "ci"); err != nil {
		return fmt.Errorf("npm ci failed: %w", err)
	}

	slog.Info("Building application")
	if err := b.Runner.Run(ctx, opts.FrontendDir, env, "npm", "run", "build"); err != nil {
		nonEmpty, dirErr := DirNonEmpty(opts.OutputDir)
		if dirErr == nil && nonEmpty {
			slog.Warn("Build failed but a previous build output exists, continuing with existing files", "dir", opts.OutputDir)
			return nil
		}
		return fmt.Errorf("npm run build failed and no existing build output found: %w", err)
	}

	return EnsureBuildOutput(opts.OutputDir)
}

// EnsureBuildOutput verifies the build output directory exists and is not
// empty. It is also the check the pipeline runs when the build step is
// skipped explicitly.
func EnsureBuildOutput(dir string) error {
	nonEmpty, err := DirNonEmpty(dir)
	if err != nil {
		return err
	}
	if !nonEmpty {
		return fmt.Errorf("build output directory %s is missing or empty, run the build first", dir)
	}
	return nil
}

// DirNonEmpty reports whether the directory exists and contains at least one
// entry. A missing directory is not an error here.
func DirNonEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read build output directory %s: %w", dir, err)
	}
	return len(entries) > 0, nil
}

func validatePrerequisites(frontendDir string) error {
	info, err := os.Stat(frontendDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("frontend directory not found: %s", frontendDir)
	}
	packageJSON := filepath.Join(frontendDir, "package.json")
	if _, err := os.Stat(packageJSON); err != nil {
		return fmt.Errorf("package.json not found: %s", packageJSON)
	}
	return nil
}
