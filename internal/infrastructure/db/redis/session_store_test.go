package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/librarydesk/console/internal/core/domain"
)

// stubCmdable answers the three commands the session store issues. Any other
// command hits the nil embedded interface and panics.
type stubCmdable struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newStubCmdable() *stubCmdable {
	return &stubCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *stubCmdable) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	default:
		cmd.SetErr(errors.New("unsupported value type"))
		return cmd
	}
	s.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (s *stubCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if s.getErr != nil {
		cmd.SetErr(s.getErr)
		return cmd
	}
	v, ok := s.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (s *stubCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			delete(s.ttls, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestSessionKey(t *testing.T) {
	a := sessionKey("3f1c9c2e-1")
	b := sessionKey("3f1c9c2e-2")

	if !strings.HasPrefix(a, sessionKeyPrefix) {
		t.Fatalf("missing prefix: %s", a)
	}
	if len(a) != len(sessionKeyPrefix)+64 {
		t.Fatalf("expected a 256-bit hex digest, got %s", a)
	}
	if strings.Contains(a, "3f1c9c2e") {
		t.Fatalf("raw session id leaked into key %s", a)
	}
	if a == b {
		t.Fatal("distinct ids must map to distinct keys")
	}
	if a != sessionKey("3f1c9c2e-1") {
		t.Fatal("key must be deterministic")
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newStubCmdable()
	store := NewSessionStore(client, 30*time.Minute)

	in := &domain.Session{
		ID:           "3f1c9c2e-1",
		Username:     "mia",
		Role:         domain.RoleMember,
		MemberID:     7,
		BackendToken: "backend-token",
	}
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "mia" || got.Role != domain.RoleMember || got.MemberID != 7 || got.BackendToken != "backend-token" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, in.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, in.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessionStore_SaveUsesHashedKeyAndTTL(t *testing.T) {
	client := newStubCmdable()
	store := NewSessionStore(client, 45*time.Minute)

	if err := store.Save(context.Background(), &domain.Session{ID: "3f1c9c2e-1", Username: "lib"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	key := sessionKey("3f1c9c2e-1")
	if _, ok := client.data[key]; !ok {
		t.Fatalf("expected value under %s, got keys %v", key, client.data)
	}
	if _, ok := client.data["3f1c9c2e-1"]; ok {
		t.Fatal("raw session id used as key")
	}
	if ttl := client.ttls[key]; ttl != 45*time.Minute {
		t.Fatalf("expected ttl 45m, got %s", ttl)
	}
}

func TestSessionStore_Get_MissingKey(t *testing.T) {
	store := NewSessionStore(newStubCmdable(), time.Minute)

	sess, err := store.Get(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestSessionStore_Get_ConnectionError(t *testing.T) {
	client := newStubCmdable()
	client.getErr = errors.New("dial tcp: connection refused")
	store := NewSessionStore(client, time.Minute)

	_, err := store.Get(context.Background(), "3f1c9c2e-1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatal("a transport failure must not read as a missing session")
	}
	if !errors.Is(err, client.getErr) {
		t.Fatalf("expected the cause to be wrapped, got %v", err)
	}
}

func TestSessionStore_Get_CorruptValue(t *testing.T) {
	client := newStubCmdable()
	client.data[sessionKey("3f1c9c2e-1")] = "{not json"
	store := NewSessionStore(client, time.Minute)

	if _, err := store.Get(context.Background(), "3f1c9c2e-1"); err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}
