package session

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msto63/mcalc/foundation/calc/evaluator"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
	"github.com/msto63/mcalc/pkg/core/config"
)

// memoryStore keeps entries in a slice
type memoryStore struct {
	history.NopStore
	entries []*history.Entry
	fail    error
	closed  bool
}

func (m *memoryStore) Record(ctx context.Context, e *history.Entry) error {
	if m.fail != nil {
		return m.fail
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryStore) Close() error {
	m.closed = true
	return nil
}

func TestSession_Evaluate(t *testing.T) {
	store := &memoryStore{}
	s := New(Options{Logger: mdwlog.NewNop(), Store: store})
	ctx := context.Background()

	tests := []struct {
		input    string
		want     int64
		wantKind string
	}{
		{"x = 5", 5, ""},
		{"x * (2 + 1)", 15, ""},
		{"y", 0, "UnknownIdentifier"},
		{"4 / (x - 5)", 0, "DivisionByZero"},
		{"3 $ 4", 0, "UnexpectedCharacter"},
	}

	for _, tt := range tests {
		out := s.Evaluate(ctx, tt.input)
		if out.Input != tt.input {
			t.Errorf("Outcome.Input = %q, want %q", out.Input, tt.input)
		}
		if got := out.Kind(); got != tt.wantKind {
			t.Errorf("Evaluate(%q) kind = %q, want %q (err: %v)", tt.input, got, tt.wantKind, out.Err)
		}
		if tt.wantKind == "" && (out.Failed() || out.Value != tt.want) {
			t.Errorf("Evaluate(%q) = %d, %v; want %d", tt.input, out.Value, out.Err, tt.want)
		}
	}

	if len(store.entries) != len(tests) {
		t.Fatalf("recorded %d entries, want %d", len(store.entries), len(tests))
	}
	for i, e := range store.entries {
		if e.SessionID != s.ID() {
			t.Errorf("entry %d SessionID = %q, want %q", i, e.SessionID, s.ID())
		}
		if e.Kind != tests[i].wantKind {
			t.Errorf("entry %d Kind = %q, want %q", i, e.Kind, tests[i].wantKind)
		}
		if (e.Error != "") != (tests[i].wantKind != "") {
			t.Errorf("entry %d Error = %q", i, e.Error)
		}
	}
}

func TestSession_Vars(t *testing.T) {
	s := New(Options{Logger: mdwlog.NewNop()})
	ctx := context.Background()

	if got := s.Vars(); len(got) != 0 {
		t.Errorf("Vars() = %v, want empty", got)
	}

	s.Evaluate(ctx, "b = 2")
	s.Evaluate(ctx, "a = 1")
	s.Evaluate(ctx, "c = 1 / 0")

	want := []Binding{{"a", 1}, {"b", 2}}
	got := s.Vars()
	if len(got) != len(want) {
		t.Fatalf("Vars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vars()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSession_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Evaluator.Strict = true
	cfg.Evaluator.MaxDepth = 2

	s := New(Options{Config: cfg, Logger: mdwlog.NewNop()})
	ctx := context.Background()

	var evalErr *evaluator.EvalError
	if out := s.Evaluate(ctx, "1 + 2 3"); !errors.As(out.Err, &evalErr) || evalErr.Kind != evaluator.TrailingInput {
		t.Errorf("strict session accepted trailing input: %v", out.Err)
	}
	if out := s.Evaluate(ctx, "(((1)))"); out.Kind() != "NestingTooDeep" {
		t.Errorf("MaxDepth not applied: %v", out.Err)
	}
}

func TestSession_DistinctIDs(t *testing.T) {
	a := New(Options{Logger: mdwlog.NewNop()})
	b := New(Options{Logger: mdwlog.NewNop()})

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session IDs = %q, %q", a.ID(), b.ID())
	}

	a.Evaluate(context.Background(), "x = 1")
	if out := b.Evaluate(context.Background(), "x"); out.Kind() != "UnknownIdentifier" {
		t.Errorf("sessions share variables: %v", out.Err)
	}
}

func TestSession_RecordFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelWarn, Format: mdwlog.FormatText, Output: &buf})

	store := &memoryStore{fail: mdwerror.New("disk full").WithCode(mdwerror.CodeDatabaseError)}
	s := New(Options{Logger: logger, Store: store})

	out := s.Evaluate(context.Background(), "6 * 7")
	if out.Failed() || out.Value != 42 {
		t.Errorf("Evaluate() = %d, %v; want 42", out.Value, out.Err)
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("record failure not logged: %q", buf.String())
	}
}

func TestSession_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatLogfmt, Output: &buf})
	s := New(Options{Logger: logger})

	s.Evaluate(context.Background(), "q")

	out := buf.String()
	for _, want := range []string{`message="evaluate completed"`, `kind="UnknownIdentifier"`, `error_code="CALC_EVALUATION"`, "correlation_id=" + s.ID()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSession_HistoryWithSQLite(t *testing.T) {
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: filepath.Join(t.TempDir(), "h.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}

	s := New(Options{Logger: mdwlog.NewNop(), Store: store})
	defer s.Close()
	ctx := context.Background()

	s.Evaluate(ctx, "n = 3")
	s.Evaluate(ctx, "n / 0")

	entries, err := s.History(ctx)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("History() returned %d entries, want 2", len(entries))
	}
	if entries[0].Result != 3 || entries[1].Kind != "DivisionByZero" {
		t.Errorf("History() = %+v, %+v", entries[0], entries[1])
	}
}

func TestSession_Close(t *testing.T) {
	store := &memoryStore{}
	s := New(Options{Logger: mdwlog.NewNop(), Store: store})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !store.closed {
		t.Error("Close() did not close the store")
	}
}
