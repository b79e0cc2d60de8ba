// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleBot, "NeuralPilot"},
		{Role("system"), "system"},
	}
	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("Role(%q).DisplayName() = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendKeepsOrder(t *testing.T) {
	conv := NewConversation("sess-1")
	conv.AppendFinal(RoleBot, "welcome")
	user := conv.AppendFinal(RoleUser, "hi")
	pending := conv.AppendPending(RoleBot)

	snap := conv.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "welcome", snap[0].Content)
	assert.Equal(t, user.ID, snap[1].ID)
	assert.Equal(t, pending.ID, snap[2].ID)
	assert.Equal(t, StatePending, snap[2].State)
	assert.Equal(t, "", snap[2].Content)
	assert.Equal(t, "sess-1", conv.SessionID)
}

func TestConversation_IDsAreUnique(t *testing.T) {
	conv := NewConversation("s")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := conv.AppendFinal(RoleUser, "x")
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestConversation_ResolveReplacesInPlace(t *testing.T) {
	conv := NewConversation("s")
	conv.AppendFinal(RoleUser, "q")
	pending := conv.AppendPending(RoleBot)
	require.Equal(t, 1, conv.PendingCount())

	got, err := conv.Resolve(pending.ID, "answer", false)
	require.NoError(t, err)
	assert.Equal(t, StateFinal, got.State)
	assert.Equal(t, "answer", got.Content)
	assert.False(t, got.Failed)
	assert.False(t, got.ResolvedAt.IsZero())
	assert.GreaterOrEqual(t, int64(got.Latency()), int64(0))

	// Position and length unchanged
	require.Equal(t, 2, conv.Len())
	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, pending.ID, last.ID)
	assert.Equal(t, 0, conv.PendingCount())
}

func TestConversation_ResolveTwiceRejected(t *testing.T) {
	conv := NewConversation("s")
	pending := conv.AppendPending(RoleBot)

	_, err := conv.Resolve(pending.ID, "first", false)
	require.NoError(t, err)

	got, err := conv.Resolve(pending.ID, "second", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))
	assert.Equal(t, "first", got.Content)
	assert.False(t, got.Failed)
}

func TestConversation_ResolveFinalEntryRejected(t *testing.T) {
	conv := NewConversation("s")
	e := conv.AppendFinal(RoleUser, "hello")

	_, err := conv.Resolve(e.ID, "changed", false)
	assert.True(t, errors.Is(err, ErrAlreadyResolved))

	stored, ok := conv.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, "hello", stored.Content)
}

func TestConversation_ResolveUnknown(t *testing.T) {
	conv := NewConversation("s")
	_, err := conv.Resolve("nope", "x", false)
	assert.True(t, errors.Is(err, ErrUnknownEntry))
}

func TestConversation_SnapshotIsCopy(t *testing.T) {
	conv := NewConversation("s")
	conv.AppendFinal(RoleUser, "original")

	snap := conv.Snapshot()
	snap[0].Content = "mutated"

	stored, _ := conv.Last()
	assert.Equal(t, "original", stored.Content)
}

func TestConversation_LastByRole(t *testing.T) {
	conv := NewConversation("s")
	_, ok := conv.LastByRole(RoleBot)
	assert.False(t, ok)

	conv.AppendFinal(RoleBot, "welcome")
	conv.AppendFinal(RoleUser, "q")
	conv.AppendPending(RoleBot)

	// Pending entries are skipped
	got, ok := conv.LastByRole(RoleBot)
	require.True(t, ok)
	assert.Equal(t, "welcome", got.Content)
}

func TestConversation_Pending(t *testing.T) {
	conv := NewConversation("s")
	_, ok := conv.Pending()
	assert.False(t, ok)

	p := conv.AppendPending(RoleBot)
	got, ok := conv.Pending()
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
}

func TestEntry_Preview(t *testing.T) {
	e := Entry{Content: "backpropagation through time"}
	assert.Equal(t, "backpro...", e.Preview(10))
	assert.Equal(t, e.Content, e.Preview(100))
}
