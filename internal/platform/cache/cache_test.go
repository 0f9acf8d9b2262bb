package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestNotifications_NilClientIsNoOp(t *testing.T) {
	n := NewNotifications(nil, time.Minute)
	ctx := context.Background()
	fid := uuid.New()

	var dest []string
	if n.Get(ctx, fid, &dest) {
		t.Error("expected Get to miss with nil client")
	}

	// Set and Invalidate must not panic
	n.Set(ctx, fid, []string{"a"})
	n.Invalidate(ctx, fid)
}

func TestNotifications_NilReceiverIsNoOp(t *testing.T) {
	var n *Notifications
	ctx := context.Background()
	fid := uuid.New()

	var dest []string
	if n.Get(ctx, fid, &dest) {
		t.Error("expected Get to miss with nil receiver")
	}
	n.Set(ctx, fid, []string{"a"})
	n.Invalidate(ctx, fid)
}

func TestNewRedisClient_EmptyURL(t *testing.T) {
	client := NewRedisClient(context.Background(), "", zerolog.Nop())
	if client != nil {
		t.Error("expected nil client for empty URL")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	client := NewRedisClient(context.Background(), "://not-a-url", zerolog.Nop())
	if client != nil {
		t.Error("expected nil client for invalid URL")
	}
}

func TestNotifications_KeyPerFacility(t *testing.T) {
	n := NewNotifications(nil, time.Minute)
	a, b := uuid.New(), uuid.New()
	if n.key(a) == n.key(b) {
		t.Error("expected distinct cache keys per facility")
	}
}
