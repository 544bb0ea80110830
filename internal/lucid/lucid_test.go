package lucid

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zeroclaw/memory/internal/model"
	"github.com/zeroclaw/memory/internal/store"
)

const fakeLucidBody = `case "$1" in
store)
  echo '{"success":true,"id":"mem_1"}'
  ;;
context)
  cat <<'EOF'
Context snapshot follows.
<lucid-context>
- [decision] Rust toolchain pinned for the build
- [context] Working in src/auth.rs
</lucid-context>
EOF
  ;;
*)
  echo "unsupported command" >&2
  exit 1
  ;;
esac`

// probeLucidBody appends a line to $MARKER on every context call.
func probeLucidBody(marker string, contextBody string) string {
	return `case "$1" in
store)
  echo '{"success":true,"id":"mem_store"}'
  ;;
context)
  printf 'context\n' >> "` + marker + `"
` + contextBody + `
  ;;
*)
  echo "unsupported command" >&2
  exit 1
  ;;
esac`
}

func newTestMemory(t *testing.T, cmd string, opts Options) (*LucidMemory, *store.SQLiteStore) {
	t.Helper()
	dir := t.TempDir()
	local, err := store.New(filepath.Join(dir, "memory.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	opts.Command = cmd
	return NewWithOptions(dir, local, opts), local
}

func markerLines(path string) int {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	return len(strings.Split(strings.TrimSpace(string(b)), "\n"))
}

func TestName(t *testing.T) {
	m, _ := newTestMemory(t, "nonexistent-lucid-binary", Options{})
	if m.Name() != "lucid" {
		t.Errorf("expected 'lucid', got %q", m.Name())
	}
}

func TestStore_SucceedsWhenLucidMissing(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, "nonexistent-lucid-binary", Options{})

	if err := m.Store(ctx, "lang", "User prefers Rust", model.Core); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := m.Get(ctx, "lang")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Content != "User prefers Rust" {
		t.Errorf("expected stored entry, got %+v", got)
	}
}

func TestRecall_MergesLocalAndRemote(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bin := writeScript(t, dir, "fake-lucid.sh", fakeLucidBody)

	m, _ := newTestMemory(t, bin, Options{LocalHitThreshold: 3})

	if err := m.Store(ctx, "lang", "User prefers Rust", model.Core); err != nil {
		t.Fatalf("store: %v", err)
	}

	entries, err := m.Recall(ctx, "rust", 5)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(entries) > 5 {
		t.Fatalf("limit exceeded: %d", len(entries))
	}

	var localIdx, remoteIdx = -1, -1
	for i, e := range entries {
		if e.Content == "User prefers Rust" {
			localIdx = i
		}
		if strings.Contains(e.Content, "Rust toolchain") {
			remoteIdx = i
		}
	}
	if localIdx == -1 {
		t.Error("expected local entry in results")
	}
	if remoteIdx == -1 {
		t.Error("expected remote entry in results")
	}
	if localIdx > remoteIdx {
		t.Error("local entries must precede remote entries")
	}
}

func TestRecall_SkipsRemoteWhenLocalHitsEnough(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	marker := filepath.Join(dir, "context_calls.log")
	bin := writeScript(t, dir, "probe-lucid.sh", probeLucidBody(marker, `  cat <<'EOF'
<lucid-context>
- [decision] should not be consulted on local hits
</lucid-context>
EOF`))

	m, _ := newTestMemory(t, bin, Options{LocalHitThreshold: 1})

	m.Store(ctx, "pref", "Rust should stay local-first", model.Core)

	entries, err := m.Recall(ctx, "rust", 5)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	found := false
	for _, e := range entries {
		if strings.Contains(e.Content, "local-first") {
			found = true
		}
	}
	if !found {
		t.Error("expected local entry")
	}
	if n := markerLines(marker); n != 0 {
		t.Errorf("expected no remote calls, got %d", n)
	}
}

func TestRecall_LimitZeroNeverInvokesRemote(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	marker := filepath.Join(dir, "context_calls.log")
	bin := writeScript(t, dir, "probe-lucid.sh", probeLucidBody(marker, `  echo nothing`))

	m, _ := newTestMemory(t, bin, Options{LocalHitThreshold: 99})

	entries, err := m.Recall(ctx, "anything", 0)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty result for limit 0, got %d", len(entries))
	}
	if n := markerLines(marker); n != 0 {
		t.Errorf("expected no remote calls, got %d", n)
	}
}

func TestRecall_FailureCooldownSuppressesRetries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	marker := filepath.Join(dir, "failing_calls.log")
	bin := writeScript(t, dir, "failing-lucid.sh", probeLucidBody(marker, `  echo "simulated failure" >&2
  exit 1`))

	m, _ := newTestMemory(t, bin, Options{
		LocalHitThreshold: 99,
		FailureCooldown:   5 * time.Second,
	})

	first, err := m.Recall(ctx, "auth", 5)
	if err != nil {
		t.Fatalf("first recall: %v", err)
	}
	second, err := m.Recall(ctx, "auth", 5)
	if err != nil {
		t.Fatalf("second recall: %v", err)
	}

	if len(first) != 0 || len(second) != 0 {
		t.Error("expected local-only (empty) results on remote failure")
	}
	if n := markerLines(marker); n != 1 {
		t.Errorf("expected exactly 1 remote call within cooldown, got %d", n)
	}
}

func TestRecall_CooldownExpiryAllowsOneMoreAttempt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	marker := filepath.Join(dir, "failing_calls.log")
	bin := writeScript(t, dir, "failing-lucid.sh", probeLucidBody(marker, `  exit 1`))

	m, _ := newTestMemory(t, bin, Options{
		LocalHitThreshold: 99,
		FailureCooldown:   50 * time.Millisecond,
	})

	m.Recall(ctx, "auth", 5)
	time.Sleep(80 * time.Millisecond)
	m.Recall(ctx, "auth", 5)

	if n := markerLines(marker); n != 2 {
		t.Errorf("expected 2 remote calls across cooldown windows, got %d", n)
	}
}

func TestRecall_EmptyRemoteSuccessClearsGate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bin := writeScript(t, dir, "empty-lucid.sh", `echo "no block here"`)

	m, _ := newTestMemory(t, bin, Options{LocalHitThreshold: 99})

	// A prior failure that has already aged out of the window.
	m.gate.markFailure()
	m.gate.window = 0

	entries, err := m.Recall(ctx, "anything", 5)
	if err != nil {
		t.Fatalf("recall: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected local-only empty result, got %d", len(entries))
	}
	if !m.gate.last.IsZero() {
		t.Error("successful remote run should clear the recorded failure")
	}
}

func TestStore_SyncRunsInBackground(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	marker := filepath.Join(dir, "store_calls.log")
	bin := writeScript(t, dir, "probe-lucid.sh", `case "$1" in
store)
  printf 'store\n' >> "`+marker+`"
  ;;
esac`)

	m, _ := newTestMemory(t, bin, Options{})

	if err := m.Store(ctx, "k", "v", model.Daily); err != nil {
		t.Fatalf("store: %v", err)
	}

	// Store must not block on the sync; Flush drains it for the assertion.
	m.Flush()
	if n := markerLines(marker); n != 1 {
		t.Errorf("expected 1 background store sync, got %d", n)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	local, err := store.New(filepath.Join(dir, "memory.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer local.Close()

	t.Setenv("ZEROCLAW_LUCID_CMD", "custom-lucid")
	t.Setenv("ZEROCLAW_LUCID_THRESHOLD", "5")

	m := New(dir, local)
	if m.cmd != "custom-lucid" {
		t.Errorf("expected env command override, got %q", m.cmd)
	}
	if m.threshold != 5 {
		t.Errorf("expected env threshold override, got %d", m.threshold)
	}

	t.Setenv("ZEROCLAW_LUCID_THRESHOLD", "not-a-number")
	m = New(dir, local)
	if m.threshold != 1 {
		t.Errorf("expected default threshold on bad env, got %d", m.threshold)
	}
}

func TestForgetCountHealthDelegate(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemory(t, "nonexistent-lucid-binary", Options{})

	m.Store(ctx, "a", "x", model.Core)

	if n, _ := m.Count(ctx); n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}
	if !m.HealthCheck(ctx) {
		t.Error("expected healthy")
	}

	removed, err := m.Forget(ctx, "a")
	if err != nil || !removed {
		t.Errorf("forget: removed=%v err=%v", removed, err)
	}

	core := model.Core
	list, _ := m.List(ctx, &core)
	if len(list) != 0 {
		t.Errorf("expected empty list after forget, got %d", len(list))
	}
}
