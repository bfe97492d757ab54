package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/Veraticus/txrisk/internal/common"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var (
	// ErrNoMountPoint means the host output is not a terminal the form can draw on.
	ErrNoMountPoint = errors.New("mount point not found: output is not a terminal")
	// ErrAlreadyMounted is returned by every Mount after the first.
	ErrAlreadyMounted = errors.New("form is already mounted")
)

// Host is the environment the form attaches to.
type Host struct {
	Input  io.Reader
	Output io.Writer
}

// Bootstrap attaches the form to a host exactly once.
type Bootstrap struct {
	isTerminal func(io.Writer) bool
	run        func(*tea.Program) (tea.Model, error)
	opts       []Option
	mounted    atomic.Bool
}

// NewBootstrap prepares a one-shot mount with the given form options.
func NewBootstrap(opts ...Option) *Bootstrap {
	return &Bootstrap{
		opts:       opts,
		isTerminal: outputIsTerminal,
		run:        (*tea.Program).Run,
	}
}

// Mount looks up the mount point on host and runs the form there until the
// user quits or ctx is canceled. A missing mount point is logged and returned
// as ErrNoMountPoint without rendering anything.
func (b *Bootstrap) Mount(ctx context.Context, host Host) error {
	if !b.mounted.CompareAndSwap(false, true) {
		return ErrAlreadyMounted
	}

	if host.Output == nil || !b.isTerminal(host.Output) {
		common.LogError(ErrNoMountPoint, "Root container not found, the form needs an interactive terminal", common.Fields{
			"output": fmt.Sprintf("%T", host.Output),
		})
		return ErrNoMountPoint
	}

	cfg := defaultConfig()
	for _, opt := range b.opts {
		opt(&cfg)
	}
	cfg.Context = ctx

	var root tea.Model = newModel(cfg)
	if cfg.StrictMode {
		recorder := NewRecorder(true)
		defer recorder.Close()
		common.LogInfo("Strict mode enabled", common.Fields{"record_dir": recorder.Dir()})
		root = newStrictModel(root.(Model), recorder)
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(host.Output),
		tea.WithAltScreen(),
	}
	if host.Input != nil {
		programOpts = append(programOpts, tea.WithInput(host.Input))
	}

	if _, err := b.run(tea.NewProgram(root, programOpts...)); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run form: %w", err)
	}

	return nil
}

// outputIsTerminal reports whether w is backed by a terminal file descriptor.
func outputIsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
