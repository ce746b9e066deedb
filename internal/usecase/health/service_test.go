package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockIndex struct {
	articles   int
	vocabulary int
	ok         bool
}

func (m *mockIndex) Stats() (int, int, bool) { return m.articles, m.vocabulary, m.ok }

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockIndex{articles: 600, vocabulary: 1000, ok: true}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["index"] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks["index"])
	}
	if r.Checks["store"] != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks["store"])
	}
	if r.CorpusSize != 600 || r.VocabularySize != 1000 {
		t.Errorf("expected index stats in the report, got %d/%d", r.CorpusSize, r.VocabularySize)
	}
}

func TestCheck_IndexMissing(t *testing.T) {
	svc := New(&mockIndex{}, &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index"] != CheckError {
		t.Errorf("expected index %q, got %q", CheckError, r.Checks["index"])
	}
	if r.Checks["store"] != CheckOK {
		t.Errorf("expected store %q, got %q", CheckOK, r.Checks["store"])
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockIndex{articles: 10, vocabulary: 20, ok: true}, &mockPinger{err: errors.New("locked")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["store"] != CheckError {
		t.Errorf("expected store %q, got %q", CheckError, r.Checks["store"])
	}
}

func TestCheck_NoStore(t *testing.T) {
	svc := New(&mockIndex{articles: 10, vocabulary: 20, ok: true}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["store"]; ok {
		t.Error("store check should be absent when store is nil")
	}
}

func TestCheck_VersionReported(t *testing.T) {
	svc := New(&mockIndex{ok: true}, nil)
	r := svc.Check(context.Background())

	if r.Version == "" {
		t.Error("expected version in the report")
	}
}
