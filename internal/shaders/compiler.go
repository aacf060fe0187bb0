package shaders

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/psydoom/psydoom-tools/internal/procrun"
	"github.com/sirupsen/logrus"
)

// ErrCompileFailed is returned for each shader the compiler rejects.
var ErrCompileFailed = errors.New("shader compilation failed")

// Options configures a compile run.
type Options struct {
	Compiler    string
	OutDir      string
	Concurrency int
}

// Compiler turns shader sources into SPIR-V headers.
type Compiler struct {
	log   logrus.FieldLogger
	opts  Options
	procs procrun.Runner
}

// NewCompiler creates a new shader compiler.
func NewCompiler(log logrus.FieldLogger, opts Options) *Compiler {
	return &Compiler{
		log:   log.WithField("component", "shaders"),
		opts:  opts,
		procs: procrun.NewRunner(log, procrun.Config{Concurrency: opts.Concurrency}),
	}
}

// args returns the compiler arguments producing C array text in out.
func args(src, out string) []string {
	return []string{"--target-env=vulkan1.0", "-O", "-mfmt=c", "-o", out, src}
}

// Compile compiles every shader in parallel and writes a header for each one
// that succeeds. onDone, when non-nil, is called once per shader with its
// error, never concurrently. The returned error joins every failure.
func (c *Compiler) Compile(ctx context.Context, shaders []Shader, onDone func(Shader, error)) error {
	if err := os.MkdirAll(c.opts.OutDir, 0o755); err != nil { //nolint:gosec // output headers are not secret
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "psydoom-shaders-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	jobs := make([]procrun.Job, len(shaders))
	stderr := make([]bytes.Buffer, len(shaders))

	for i, s := range shaders {
		jobs[i] = procrun.Job{
			Name:   s.Name,
			Path:   c.opts.Compiler,
			Args:   args(s.Source, filepath.Join(tmpDir, s.Name+".inc")),
			Stderr: &stderr[i],
		}
	}

	c.log.WithFields(logrus.Fields{
		"shaders": len(shaders),
		"out":     c.opts.OutDir,
	}).Info("Compiling shaders")

	var errs []error

	c.procs.Run(ctx, jobs, func(o procrun.Outcome) {
		s := shaders[o.Index]

		err := c.finish(o, s, &stderr[o.Index], tmpDir)
		if err != nil {
			errs = append(errs, err)
		}

		if onDone != nil {
			onDone(s, err)
		}
	})

	return errors.Join(errs...)
}

// finish turns one compiler outcome into a header or an error.
func (c *Compiler) finish(o procrun.Outcome, s Shader, stderr *bytes.Buffer, tmpDir string) error {
	if !o.Passed() {
		detail := firstLine(stderr.String())
		switch {
		case o.Err != nil:
			detail = o.Err.Error()
		case detail == "":
			detail = fmt.Sprintf("exit code %d", o.ExitCode)
		}

		return fmt.Errorf("%w: %s: %s", ErrCompileFailed, s.Source, detail)
	}

	array, err := os.ReadFile(filepath.Join(tmpDir, s.Name+".inc"))
	if err != nil {
		return fmt.Errorf("%w: %s: reading compiler output: %w", ErrCompileFailed, s.Source, err)
	}

	dest := filepath.Join(c.opts.OutDir, s.HeaderFile())
	if err := writeFileAtomic(dest, WrapHeader(s.ArrayName(), array)); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	c.log.WithFields(logrus.Fields{
		"shader":   s.Source,
		"header":   dest,
		"duration": o.Duration,
	}).Debug("Shader compiled")

	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so a
// reader never sees a truncated header.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // headers are checked into source control
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
