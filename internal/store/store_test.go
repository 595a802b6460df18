package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if assert.NoError(t, err, "PRAGMA %s", tt.pragma) {
			assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"kv", "llm_request_events", "award_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.KV().Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.KV().Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestKV_GetMissing(t *testing.T) {
	s := openTestStore(t)

	got, ok, err := s.KV().Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestKV_PutOverwritesAndDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "betopper_user", []byte(`{"points":0}`)))
	require.NoError(t, kv.Put(ctx, "betopper_user", []byte(`{"points":40}`)))

	got, ok, err := kv.Get(ctx, "betopper_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"points":40}`, string(got))

	var rows int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM kv").Scan(&rows))
	assert.Equal(t, 1, rows)

	require.NoError(t, kv.Delete(ctx, "betopper_user"))
	_, ok, err = kv.Get(ctx, "betopper_user")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.Delete(ctx, "betopper_user"), "deleting a missing key")
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), seq)
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "notes",
		InputTokens: 100, OutputTokens: 400, LatencyMs: 1200, Success: true,
		RequestBody: "[user]\nnotes prompt", ResponseBody: "notes body",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-3-pro-preview", Purpose: "question-bank",
		InputTokens: 200, OutputTokens: 800, LatencyMs: 3000, Success: false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "question-bank", events[0].Purpose, "newest first")
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "notes body", got.ResponseBody)
	assert.Equal(t, "[user]\nnotes prompt", got.RequestBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Model: "m1", Purpose: "notes", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "m1", Purpose: "notes", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Model: "m2", Purpose: "chat", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, d))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "chat", byPurpose[0].Purpose)
	assert.Equal(t, "notes", byPurpose[1].Purpose)
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, 40, byPurpose[1].InputTokens)
	assert.Equal(t, 60, byPurpose[1].OutputTokens)
	assert.Equal(t, int64(200), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "m1", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
}

func TestAwardEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	awards := []AwardEventData{
		{EventID: "a", Amount: 25, Reason: "Question Set Generated", PointsAfter: 25},
		{EventID: "b", Amount: 5, Reason: "Problem Mastery", PointsAfter: 30},
		{EventID: "c", Amount: 5, Reason: "Problem Mastery", PointsAfter: 35},
	}
	for _, a := range awards {
		require.NoError(t, repo.AppendAward(ctx, a))
	}

	got, err := repo.QueryAwards(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].EventID)
	assert.Equal(t, 35, got[0].PointsAfter)

	totals, err := repo.PointsByReason(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, ReasonTotal{Reason: "Question Set Generated", Count: 1, Points: 25}, totals[0])
	assert.Equal(t, ReasonTotal{Reason: "Problem Mastery", Count: 2, Points: 10}, totals[1])

	require.NoError(t, repo.ClearAwards(ctx))
	got, err = repo.QueryAwards(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "notes", Success: true}))
	require.NoError(t, repo.AppendAward(ctx, AwardEventData{EventID: "x", Amount: 15, Reason: "Academic Research", PointsAfter: 15}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	awards, err := repo.QueryAwards(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), llmEvents[0].Sequence)
	assert.Equal(t, int64(2), awards[0].Sequence)

	after, err := repo.QueryAwards(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	assert.Empty(t, after)
}
