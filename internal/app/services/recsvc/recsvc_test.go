package recsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/recsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
	"github.com/MirzaKrupic/CampusConnect/internal/testutil"
)

func seedGraph(t *testing.T, g *testutil.FakeGraph, userIDs ...int64) {
	t.Helper()
	ctx := context.Background()
	for _, id := range userIDs {
		if err := g.UpsertUserNode(ctx, models.User{ID: id, FullName: "User", Email: "u@test.com"}); err != nil {
			t.Fatalf("seed user node %d failed: %v", id, err)
		}
	}
}

func seedGroupNodes(t *testing.T, g *testutil.FakeGraph, groupIDs ...int64) {
	t.Helper()
	ctx := context.Background()
	for _, id := range groupIDs {
		if err := g.UpsertGroupNode(ctx, models.Group{ID: id, Name: "Group", CourseCode: "CS100"}); err != nil {
			t.Fatalf("seed group node %d failed: %v", id, err)
		}
	}
}

func friend(t *testing.T, g *testutil.FakeGraph, a, b int64) {
	t.Helper()
	ctx := context.Background()
	if err := g.UpsertFriendEdge(ctx, a, b); err != nil {
		t.Fatalf("edge %d->%d failed: %v", a, b, err)
	}
	if err := g.UpsertFriendEdge(ctx, b, a); err != nil {
		t.Fatalf("edge %d->%d failed: %v", b, a, err)
	}
}

func TestFriendRecommendations_TwoHopOnly(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	// 1 - 2 - 3 - 4: user 3 is two hops from 1, user 4 is three.
	seedGraph(t, graph, 1, 2, 3, 4)
	friend(t, graph, 1, 2)
	friend(t, graph, 2, 3)
	friend(t, graph, 3, 4)

	recs, err := svc.FriendRecommendations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FriendRecommendations failed: %v", err)
	}
	if len(recs) != 1 || recs[0].UserID != 3 {
		t.Fatalf("expected only user 3, got %+v", recs)
	}
	if recs[0].MutualFriends != 1 {
		t.Errorf("expected 1 mutual friend, got %d", recs[0].MutualFriends)
	}
}

func TestFriendRecommendations_RankingAndTieBreak(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	// User 1's friends: 2, 3. Candidate 5 is reachable through both,
	// candidates 4 and 6 through one each.
	seedGraph(t, graph, 1, 2, 3, 4, 5, 6)
	friend(t, graph, 1, 2)
	friend(t, graph, 1, 3)
	friend(t, graph, 2, 5)
	friend(t, graph, 3, 5)
	friend(t, graph, 2, 6)
	friend(t, graph, 3, 4)

	recs, err := svc.FriendRecommendations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FriendRecommendations failed: %v", err)
	}
	want := []int64{5, 4, 6} // 5 has two mutuals; 4 and 6 tie and order by id
	if len(recs) != len(want) {
		t.Fatalf("expected %d candidates, got %+v", len(want), recs)
	}
	for i, id := range want {
		if recs[i].UserID != id {
			t.Errorf("position %d: expected user %d, got %d", i, id, recs[i].UserID)
		}
	}
}

func TestFriendRecommendations_ExcludesDirectFriends(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	// 3 is both a direct friend of 1 and a friend-of-friend via 2.
	seedGraph(t, graph, 1, 2, 3)
	friend(t, graph, 1, 2)
	friend(t, graph, 1, 3)
	friend(t, graph, 2, 3)

	recs, err := svc.FriendRecommendations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FriendRecommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no candidates, got %+v", recs)
	}
}

func TestFriendRecommendations_LimitApplies(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	seedGraph(t, graph, 1, 2, 3, 4, 5)
	friend(t, graph, 1, 2)
	friend(t, graph, 2, 3)
	friend(t, graph, 2, 4)
	friend(t, graph, 2, 5)

	recs, err := svc.FriendRecommendations(ctx, 1, 2)
	if err != nil {
		t.Fatalf("FriendRecommendations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected limit of 2, got %d", len(recs))
	}
}

func TestFriendRecommendations_UnknownUser(t *testing.T) {
	svc := recsvc.New(testutil.NewFakeGraph())
	if _, err := svc.FriendRecommendations(context.Background(), 99, 10); !errors.Is(err, recsvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFriendRecommendations_NoFriendsEmpty(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	seedGraph(t, graph, 1)

	recs, err := svc.FriendRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("expected empty result, got error %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no candidates, got %+v", recs)
	}
}

func TestGroupRecommendations_RankedByFriendMembers(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	seedGraph(t, graph, 1, 2, 3)
	if err := graph.UpsertGroupNode(ctx, models.Group{ID: 10, Name: "Algorithms", CourseCode: "CS201"}); err != nil {
		t.Fatal(err)
	}
	if err := graph.UpsertGroupNode(ctx, models.Group{ID: 11, Name: "Databases", CourseCode: "CS301"}); err != nil {
		t.Fatal(err)
	}
	friend(t, graph, 1, 2)
	friend(t, graph, 1, 3)
	// Both friends in group 11, one in group 10; user 1 in neither.
	for _, m := range []struct{ user, group int64 }{{2, 10}, {2, 11}, {3, 11}} {
		if err := graph.UpsertMembershipEdge(ctx, m.user, m.group, "member"); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := svc.GroupRecommendations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("GroupRecommendations failed: %v", err)
	}
	if len(recs) != 2 || recs[0].GroupID != 11 || recs[0].FriendCount != 2 {
		t.Fatalf("expected group 11 first with 2 friends, got %+v", recs)
	}
	if recs[1].GroupID != 10 || recs[1].FriendCount != 1 {
		t.Errorf("expected group 10 second with 1 friend, got %+v", recs[1])
	}
}

func TestGroupRecommendations_ExcludesOwnGroups(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	seedGraph(t, graph, 1, 2)
	seedGroupNodes(t, graph, 10)
	friend(t, graph, 1, 2)
	if err := graph.UpsertMembershipEdge(ctx, 1, 10, "member"); err != nil {
		t.Fatal(err)
	}
	if err := graph.UpsertMembershipEdge(ctx, 2, 10, "member"); err != nil {
		t.Fatal(err)
	}

	recs, err := svc.GroupRecommendations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("GroupRecommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no candidates, got %+v", recs)
	}
}

func TestCommonGroups(t *testing.T) {
	graph := testutil.NewFakeGraph()
	svc := recsvc.New(graph)
	ctx := context.Background()

	seedGraph(t, graph, 1, 2)
	seedGroupNodes(t, graph, 10, 11, 12)
	for _, m := range []struct{ user, group int64 }{{1, 10}, {1, 11}, {2, 11}, {2, 12}} {
		if err := graph.UpsertMembershipEdge(ctx, m.user, m.group, "member"); err != nil {
			t.Fatal(err)
		}
	}

	common, err := svc.CommonGroups(ctx, 1, 2)
	if err != nil {
		t.Fatalf("CommonGroups failed: %v", err)
	}
	if len(common) != 1 || common[0].GroupID != 11 {
		t.Errorf("expected only group 11, got %+v", common)
	}
}

func TestRecommendations_GraphOutageFails(t *testing.T) {
	graph := testutil.NewFakeGraph()
	graph.Err = errors.New("connection refused")
	svc := recsvc.New(graph)

	if _, err := svc.FriendRecommendations(context.Background(), 1, 10); err == nil {
		t.Fatal("expected failure when the graph store is down")
	}
}
