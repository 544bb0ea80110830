package lucid

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Invoker failure classes. Callers treat all three identically: non-fatal,
// degrade to local results, record in the failure gate.
var (
	ErrTimeout     = goerr.New("lucid command timed out")
	ErrNonZeroExit = goerr.New("lucid command failed")
	ErrSpawnFailed = goerr.New("lucid command could not start")
)

// runCommand executes the lucid binary with the given arguments and a hard
// wall-clock timeout. No shell interpretation. On success it returns stdout
// decoded as UTF-8, with invalid bytes replaced.
func runCommand(ctx context.Context, bin string, args []string, timeout time.Duration) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, bin, args...)
	// Kill-on-deadline only reaches the direct child. Grandchildren inherit
	// the stdout/stderr pipes and would keep Run blocked for the lifetime of
	// the whole process tree; WaitDelay abandons the pipes shortly after the
	// deadline so the timeout stays a hard wall-clock bound.
	cmd.WaitDelay = 100 * time.Millisecond
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return "", goerr.Wrap(ErrTimeout, "deadline exceeded",
			goerr.V("command", bin),
			goerr.V("timeout_ms", timeout.Milliseconds()))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", goerr.Wrap(ErrNonZeroExit, "non-zero exit",
				goerr.V("command", bin),
				goerr.V("exit_code", exitErr.ExitCode()),
				goerr.V("stderr", lossyUTF8(stderr.Bytes())))
		}
		return "", goerr.Wrap(ErrSpawnFailed, "spawn failed",
			goerr.V("command", bin),
			goerr.V("cause", err.Error()))
	}

	return lossyUTF8(stdout.Bytes()), nil
}

func lossyUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
