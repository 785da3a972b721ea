package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mcncl/dartyper/internal/errors"
)

// Opener shows a saved file to the user.
type Opener interface {
	Open(path string) error
}

// EditorOpener runs an editor command with the file as its last argument.
type EditorOpener struct {
	Command string
}

// NewEditorOpener uses $VISUAL, then $EDITOR. It returns nil when neither
// is set.
func NewEditorOpener() *EditorOpener {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if cmd := strings.TrimSpace(os.Getenv(key)); cmd != "" {
			return &EditorOpener{Command: cmd}
		}
	}
	return nil
}

// Open runs the editor attached to the current terminal and waits for it.
func (o *EditorOpener) Open(path string) error {
	fields := strings.Fields(o.Command)
	if len(fields) == 0 {
		return fmt.Errorf("empty editor command")
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Writer saves generated files into a project. A file that cannot be saved
// is printed instead, so the generated code is never lost.
type Writer struct {
	// ProjectDir overrides project root discovery.
	ProjectDir string
	// ForceStdout prints every file instead of saving it.
	ForceStdout bool
	Stdout      io.Writer
	Opener      Opener
	Logger      *slog.Logger
}

// Outcome reports where a file went.
type Outcome struct {
	Path  string
	Saved bool
}

// NewWriter creates a Writer that prints to os.Stdout and logs to the
// default logger.
func NewWriter() *Writer {
	return &Writer{Stdout: os.Stdout, Logger: slog.Default()}
}

// Persist writes code to relPath below the project root. Missing project
// roots and file system failures are logged and degrade to printing the
// code; only a failing stdout is returned as an error.
func (w *Writer) Persist(relPath, code string) (Outcome, error) {
	if w.ForceStdout {
		return w.print(relPath, code)
	}

	root, err := w.projectRoot()
	if err != nil {
		w.logger().Warn("not saving model", "path", relPath, "error", err)
		return w.print(relPath, code)
	}

	full := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		w.logger().Warn("failed to create model directory", "path", full, "error", err)
		return w.print(relPath, code)
	}
	if err := os.WriteFile(full, []byte(code), 0o644); err != nil {
		w.logger().Warn("failed to write model", "path", full, "error", err)
		return w.print(relPath, code)
	}
	w.logger().Debug("model saved", "path", full)

	if w.Opener != nil {
		if err := w.Opener.Open(full); err != nil {
			w.logger().Warn("failed to open model in editor", "path", full, "error", err)
		}
	}
	return Outcome{Path: full, Saved: true}, nil
}

func (w *Writer) projectRoot() (string, error) {
	if w.ProjectDir != "" {
		info, err := os.Stat(w.ProjectDir)
		if err != nil {
			return "", errors.NewOutputError(fmt.Sprintf("project directory '%s' is not accessible", w.ProjectDir), err)
		}
		if !info.IsDir() {
			return "", errors.NewOutputError(fmt.Sprintf("project directory '%s' is not a directory", w.ProjectDir), errors.ErrInvalidFilePath)
		}
		return w.ProjectDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewOutputError("failed to get working directory", err)
	}
	return FindProjectRoot(cwd)
}

func (w *Writer) print(relPath, code string) (Outcome, error) {
	out := w.Stdout
	if out == nil {
		out = os.Stdout
	}
	if _, err := io.WriteString(out, code); err != nil {
		return Outcome{}, errors.NewOutputError("failed to write to stdout", err)
	}
	return Outcome{Path: relPath}, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
