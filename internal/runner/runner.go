package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"convertd/internal/magick"
)

var (
	ErrConvertFailed = errors.New("runner: conversion failed")
	ErrEncoderFailed = errors.New("runner: encoder stage failed")
)

type Config struct {
	// Timeout bounds one conversion; zero means the caller's context rules.
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 60 * time.Second}
}

// Runner executes synthesized commands. The command itself is a pure value;
// process lifetimes, the MozJPEG pipe, and failure propagation from either
// stage live here.
type Runner struct {
	config *Config
}

func New(cfg *Config) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Runner{config: cfg}
}

func (r *Runner) Run(ctx context.Context, cmd *magick.Command) error {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	if chained := cmd.ChainedArgv(); chained != nil {
		return r.runChain(ctx, cmd.Argv(), chained)
	}
	return r.runSingle(ctx, cmd.Argv())
}

func (r *Runner) runSingle(ctx context.Context, argv []string) error {
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := c.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %v, output: %s", ErrConvertFailed, err, bytes.TrimSpace(output))
	}
	return nil
}

// runChain wires the primary tool's stdout into the encoder's stdin and
// waits for both. A failure in either stage fails the conversion; the first
// stage is waited on first so the pipe closes and the second can finish.
func (r *Runner) runChain(ctx context.Context, primary, chained []string) error {
	first := exec.CommandContext(ctx, primary[0], primary[1:]...)
	second := exec.CommandContext(ctx, chained[0], chained[1:]...)

	pipe, err := first.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: creating pipe: %v", ErrConvertFailed, err)
	}
	second.Stdin = pipe

	var firstErr, secondErr bytes.Buffer
	first.Stderr = &firstErr
	second.Stderr = &secondErr

	if err := first.Start(); err != nil {
		return fmt.Errorf("%w: starting converter: %v", ErrConvertFailed, err)
	}
	if err := second.Start(); err != nil {
		_ = first.Process.Kill()
		_ = first.Wait()
		return fmt.Errorf("%w: starting encoder: %v", ErrEncoderFailed, err)
	}

	werr := first.Wait()
	eerr := second.Wait()

	if werr != nil {
		return fmt.Errorf("%w: %v, output: %s", ErrConvertFailed, werr, bytes.TrimSpace(firstErr.Bytes()))
	}
	if eerr != nil {
		return fmt.Errorf("%w: %v, output: %s", ErrEncoderFailed, eerr, bytes.TrimSpace(secondErr.Bytes()))
	}
	return nil
}
