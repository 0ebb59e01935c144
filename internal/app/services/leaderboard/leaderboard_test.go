package leaderboard_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
	"github.com/MirzaKrupic/CampusConnect/internal/testutil"
)

// Cache entries expire on their own schedule, unrelated to call timeouts.
const testTTL = time.Hour

type boardFixture struct {
	users *testutil.FakeUserStore
	cache *testutil.FakeCache
	svc   *leaderboard.Service
}

func newBoardFixture(t *testing.T) *boardFixture {
	t.Helper()
	users := testutil.NewFakeUserStore()
	groups := testutil.NewFakeGroupStore()
	memberships := testutil.NewFakeMembershipStore(users, groups)
	graph := testutil.NewFakeGraph()
	cache := testutil.NewFakeCache()
	log := zap.NewNop()
	userSvc := usersvc.New(users, memberships, graph, cache, testTTL, log)
	return &boardFixture{
		users: users,
		cache: cache,
		svc:   leaderboard.New(cache, userSvc, log),
	}
}

func TestIncrementScore_Accumulates(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fx.svc.IncrementScore(ctx, 1, leaderboard.JoinPoints); err != nil {
		t.Fatalf("IncrementScore failed: %v", err)
	}
	total, err := fx.svc.IncrementScore(ctx, 1, leaderboard.CommentPoints)
	if err != nil {
		t.Fatalf("IncrementScore failed: %v", err)
	}
	if total != leaderboard.JoinPoints+leaderboard.CommentPoints {
		t.Errorf("expected accumulated score 7, got %v", total)
	}
}

func TestTopScores_OrderAndLimit(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for user, points := range map[int64]float64{1: 5, 2: 17, 3: 12} {
		if _, err := fx.svc.IncrementScore(ctx, user, points); err != nil {
			t.Fatalf("IncrementScore failed: %v", err)
		}
	}

	top, err := fx.svc.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 2 || top[0].UserID != 2 || top[1].UserID != 3 {
		t.Errorf("expected users 2,3 in order, got %+v", top)
	}
}

func TestTopScoresWithNames_UnknownUserKeptContiguous(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := fx.users.Create(ctx, "alice@test.com", "Alice")
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if _, err := fx.svc.IncrementScore(ctx, u.ID, 10); err != nil {
		t.Fatal(err)
	}
	// User 999 has a score but no row.
	if _, err := fx.svc.IncrementScore(ctx, 999, 20); err != nil {
		t.Fatal(err)
	}

	board, err := fx.svc.TopScoresWithNames(ctx, 10)
	if err != nil {
		t.Fatalf("TopScoresWithNames failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %+v", board)
	}
	if board[0].FullName != "Unknown" || board[0].Rank != 1 {
		t.Errorf("expected unknown leader at rank 1, got %+v", board[0])
	}
	if board[1].FullName != "Alice" || board[1].Rank != 2 {
		t.Errorf("expected Alice at rank 2, got %+v", board[1])
	}
}

func TestRank(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fx.svc.IncrementScore(ctx, 1, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := fx.svc.IncrementScore(ctx, 2, 20); err != nil {
		t.Fatal(err)
	}

	rank, ok, err := fx.svc.Rank(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("Rank failed: ok=%v err=%v", ok, err)
	}
	if rank != 2 {
		t.Errorf("expected rank 2, got %d", rank)
	}

	if _, ok, err := fx.svc.Rank(ctx, 42); err != nil || ok {
		t.Errorf("expected absent rank, ok=%v err=%v", ok, err)
	}
}

func TestLeaderboard_CacheOutageFails(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.cache.Err = errors.New("connection refused")
	if _, err := fx.svc.TopScores(ctx, 10); err == nil {
		t.Fatal("expected failure when the cache store is down")
	}
	if _, err := fx.svc.IncrementScore(ctx, 1, 5); err == nil {
		t.Fatal("expected increment to fail when the cache store is down")
	}
}

func TestIncrementScore_NegativeDelta(t *testing.T) {
	fx := newBoardFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fx.svc.IncrementScore(ctx, 1, 10); err != nil {
		t.Fatalf("IncrementScore failed: %v", err)
	}
	total, err := fx.svc.IncrementScore(ctx, 1, -3)
	if err != nil {
		t.Fatalf("IncrementScore failed: %v", err)
	}
	if total != 7 {
		t.Errorf("expected net score 7, got %v", total)
	}

	top, err := fx.svc.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 1 || top[0].Points != 7 {
		t.Errorf("expected the board to hold the net score, got %+v", top)
	}
}
