// Package lucid implements the hybrid local/distributed memory recall
// engine. A LucidMemory answers from a local backend and, when local results
// are thin, consults the lucid distributed-context binary as a subprocess.
// Remote trouble never fails a call: recall degrades to local-only results
// and a cooldown suppresses repeated attempts against a failing binary.
package lucid

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/zeroclaw/memory/internal/logging"
	"github.com/zeroclaw/memory/internal/memory"
	"github.com/zeroclaw/memory/internal/model"
)

// Options configures a LucidMemory. Zero fields fall back to defaults.
type Options struct {
	// Command is the lucid binary name or path.
	Command string

	// Budget bounds lucid's internal search effort. Opaque to us.
	Budget int

	// LocalHitThreshold is the local result count at or above which the
	// remote side is not consulted.
	LocalHitThreshold int

	SyncTimeout     time.Duration
	RecallTimeout   time.Duration
	FailureCooldown time.Duration

	Logger *slog.Logger
}

// DefaultOptions returns the stock knob values.
func DefaultOptions() Options {
	return Options{
		Command:           "lucid",
		Budget:            200,
		LocalHitThreshold: 1,
		SyncTimeout:       150 * time.Millisecond,
		RecallTimeout:     800 * time.Millisecond,
		FailureCooldown:   10 * time.Second,
	}
}

// LucidMemory is a memory.Memory that composes a local backend with the
// lucid distributed-context tool.
type LucidMemory struct {
	workspaceDir string
	local        memory.Memory
	cmd          string
	budget       int
	threshold    int
	syncTimeout  time.Duration
	recallTO     time.Duration
	gate         *failureGate
	logger       *slog.Logger
	syncs        sync.WaitGroup
}

var _ memory.Memory = (*LucidMemory)(nil)

// New builds a LucidMemory with defaults, honoring the ZEROCLAW_LUCID_CMD
// and ZEROCLAW_LUCID_THRESHOLD environment overrides.
func New(workspaceDir string, local memory.Memory) *LucidMemory {
	opts := DefaultOptions()
	if cmd := os.Getenv("ZEROCLAW_LUCID_CMD"); cmd != "" {
		opts.Command = cmd
	}
	opts.LocalHitThreshold = readEnvInt("ZEROCLAW_LUCID_THRESHOLD", opts.LocalHitThreshold, 0)

	return NewWithOptions(workspaceDir, local, opts)
}

// NewWithOptions builds a LucidMemory with explicit knobs. The environment
// is not consulted.
func NewWithOptions(workspaceDir string, local memory.Memory, opts Options) *LucidMemory {
	def := DefaultOptions()
	if opts.Command == "" {
		opts.Command = def.Command
	}
	if opts.Budget <= 0 {
		opts.Budget = def.Budget
	}
	if opts.SyncTimeout <= 0 {
		opts.SyncTimeout = def.SyncTimeout
	}
	if opts.RecallTimeout <= 0 {
		opts.RecallTimeout = def.RecallTimeout
	}
	if opts.FailureCooldown <= 0 {
		opts.FailureCooldown = def.FailureCooldown
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &LucidMemory{
		workspaceDir: workspaceDir,
		local:        local,
		cmd:          opts.Command,
		budget:       opts.Budget,
		threshold:    opts.LocalHitThreshold,
		syncTimeout:  opts.SyncTimeout,
		recallTO:     opts.RecallTimeout,
		gate:         newFailureGate(opts.FailureCooldown),
		logger:       opts.Logger,
	}
}

func readEnvInt(name string, def, min int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < min {
		return def
	}
	return v
}

// Name identifies the backend.
func (m *LucidMemory) Name() string {
	return "lucid"
}

// Store writes to the local backend synchronously, then syncs to lucid in a
// detached goroutine. The sync outcome is discarded: it never reaches the
// caller and never touches the failure gate, which exists to protect the
// latency-sensitive recall path only.
func (m *LucidMemory) Store(ctx context.Context, key, content string, category model.Category) error {
	if err := m.local.Store(ctx, key, content, category); err != nil {
		return err
	}

	m.syncs.Add(1)
	go func() {
		defer m.syncs.Done()
		m.syncToLucid(key, content, category)
	}()
	return nil
}

// Flush waits for in-flight background syncs. Each is already bounded by
// the sync timeout; this is for orderly shutdown, not correctness.
func (m *LucidMemory) Flush() {
	m.syncs.Wait()
}

func (m *LucidMemory) syncToLucid(key, content string, category model.Category) {
	args := []string{
		"store",
		key + ": " + content,
		"--type=" + lucidType(category),
		"--project=" + m.workspaceDir,
	}
	_, _ = runCommand(context.Background(), m.cmd, args, m.syncTimeout)
}

// Recall queries the local backend and, when results are thin, merges in
// lucid context. Only local-store errors propagate.
func (m *LucidMemory) Recall(ctx context.Context, query string, limit int) ([]model.Entry, error) {
	local, err := m.local.Recall(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	// Good enough locally trumps freshness from remote.
	if limit <= 0 || len(local) >= limit || len(local) >= m.threshold {
		return local, nil
	}
	if m.gate.inCooldown() {
		return local, nil
	}

	args := []string{
		"context",
		query,
		fmt.Sprintf("--budget=%d", m.budget),
		"--project=" + m.workspaceDir,
	}
	out, err := runCommand(ctx, m.cmd, args, m.recallTO)
	if err != nil {
		m.gate.markFailure()
		m.logger.Debug("lucid context unavailable; using local results",
			"command", m.cmd, "error", err)
		return local, nil
	}

	// Remote ran fine. Finding nothing is not a failure.
	m.gate.clear()

	remote := parseContextBlock(out)
	if len(remote) == 0 {
		return local, nil
	}
	return mergeResults(local, remote, limit), nil
}

// Get delegates to the local backend.
func (m *LucidMemory) Get(ctx context.Context, key string) (*model.Entry, error) {
	return m.local.Get(ctx, key)
}

// List delegates to the local backend.
func (m *LucidMemory) List(ctx context.Context, category *model.Category) ([]model.Entry, error) {
	return m.local.List(ctx, category)
}

// Forget delegates to the local backend.
func (m *LucidMemory) Forget(ctx context.Context, key string) (bool, error) {
	return m.local.Forget(ctx, key)
}

// Count delegates to the local backend.
func (m *LucidMemory) Count(ctx context.Context) (int, error) {
	return m.local.Count(ctx)
}

// HealthCheck delegates to the local backend.
func (m *LucidMemory) HealthCheck(ctx context.Context) bool {
	return m.local.HealthCheck(ctx)
}
