package render

import (
	"context"
	"os/exec"
	"syscall"
	"time"
)

// terminationGrace is how long a cancelled encode is given to exit
// cleanly after SIGTERM before the driver escalates to SIGKILL (§5
// "Cancellation").
const terminationGrace = 5 * time.Second

// runCancellable starts cmd and waits for it to finish. If ctx is
// cancelled first, it signals the process with SIGTERM, gives it
// terminationGrace to exit, and escalates to SIGKILL if it hasn't.
// exec.CommandContext's default behaviour (an immediate hard kill) skips
// this grace period entirely, so the subprocess is started directly
// rather than via CommandContext.
func runCancellable(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case err := <-done:
		return err
	case <-time.After(terminationGrace):
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}
