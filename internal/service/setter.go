package service

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"sundial/internal/logger"
)

// backendProcess is the display-temperature tool the setter drives.
const backendProcess = "hyprsunset"

// HyprctlSetter applies temperatures through `hyprctl hyprsunset temperature`.
type HyprctlSetter struct {
	command string
}

// NewHyprctlSetter returns a setter invoking the given command (normally
// "hyprctl"; tests and other compositors substitute their own tool).
func NewHyprctlSetter(command string) *HyprctlSetter {
	return &HyprctlSetter{command: command}
}

// Apply invokes the external tool under the caller's context. The invocation
// is treated as a retryable side effect; callers decide the retry cadence.
func (s *HyprctlSetter) Apply(ctx context.Context, kelvin int) error {
	args := []string{backendProcess, "temperature", strconv.Itoa(kelvin)}

	out, err := exec.CommandContext(ctx, s.command, args...).CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail != "" {
			return fmt.Errorf("%s %s: %w: %s", s.command, strings.Join(args, " "), err, detail)
		}
		return fmt.Errorf("%s %s: %w", s.command, strings.Join(args, " "), err)
	}
	return nil
}

// backendRunning reports whether the backend process is alive.
func backendRunning(ctx context.Context) bool {
	err := exec.CommandContext(ctx, "pidof", backendProcess).Run()
	return err == nil
}

// EnsureBackendRunning spawns the backend when it is not running yet.
// Failure is reported but left to the caller; the tick loop retries setter
// calls anyway, so a late-starting backend heals on its own.
func EnsureBackendRunning(ctx context.Context, log *logger.Logger) error {
	if backendRunning(ctx) {
		return nil
	}

	log.Infow("starting display backend", "process", backendProcess)
	cmd := exec.Command(backendProcess)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", backendProcess, err)
	}
	// Detach: the backend outlives individual daemon restarts.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("release %s: %w", backendProcess, err)
	}
	return nil
}
