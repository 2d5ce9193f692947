package render

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCancellableReturnsNormallyOnSuccess(t *testing.T) {
	cmd := exec.Command("true")
	err := runCancellable(context.Background(), cmd)
	require.NoError(t, err)
}

func TestRunCancellablePropagatesNonZeroExit(t *testing.T) {
	cmd := exec.Command("false")
	err := runCancellable(context.Background(), cmd)
	require.Error(t, err)
}

func TestRunCancellableStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.Command("sleep", "5")

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := runCancellable(ctx, cmd)
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Less(t, elapsed, terminationGrace+2*time.Second)
}
