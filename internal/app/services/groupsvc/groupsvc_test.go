package groupsvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/groupsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/leaderboard"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
	"github.com/MirzaKrupic/CampusConnect/internal/testutil"
)

// Cache entries expire on their own schedule, unrelated to call timeouts.
const testTTL = time.Hour

type groupFixture struct {
	users       *testutil.FakeUserStore
	groups      *testutil.FakeGroupStore
	memberships *testutil.FakeMembershipStore
	posts       *testutil.FakePostStore
	graph       *testutil.FakeGraph
	cache       *testutil.FakeCache
	scores      *leaderboard.Service
	svc         *groupsvc.Service
}

func newGroupFixture(t *testing.T) *groupFixture {
	t.Helper()
	users := testutil.NewFakeUserStore()
	groups := testutil.NewFakeGroupStore()
	memberships := testutil.NewFakeMembershipStore(users, groups)
	posts := testutil.NewFakePostStore()
	graph := testutil.NewFakeGraph()
	cache := testutil.NewFakeCache()
	log := zap.NewNop()
	userSvc := usersvc.New(users, memberships, graph, cache, testTTL, log)
	scores := leaderboard.New(cache, userSvc, log)
	return &groupFixture{
		users:       users,
		groups:      groups,
		memberships: memberships,
		posts:       posts,
		graph:       graph,
		cache:       cache,
		scores:      scores,
		svc:         groupsvc.New(groups, memberships, posts, graph, cache, scores, testTTL, log),
	}
}


// seedUser creates the relational row and its graph mirror, the state a
// clean CreateUser leaves behind.
func seedUser(t *testing.T, fx *groupFixture, ctx context.Context, email, name string) models.User {
	t.Helper()
	u, err := fx.users.Create(ctx, email, name)
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if err := fx.graph.UpsertUserNode(ctx, u); err != nil {
		t.Fatalf("seed user node failed: %v", err)
	}
	return u
}

func TestCreateGroup_MirrorsAndCaches(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, fo, err := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if fo.Partial() {
		t.Errorf("expected clean fan-out, pending = %v", fo.Pending())
	}
	if !fx.cache.Contains(cachestore.GroupKey(g.ID)) {
		t.Error("expected cached group summary")
	}
}

func TestJoinGroup_FullFanOut(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")

	m, fo, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, "")
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if fo.Partial() {
		t.Errorf("expected clean fan-out, pending = %v", fo.Pending())
	}
	if m.Role != "member" {
		t.Errorf("expected default role member, got %q", m.Role)
	}

	// Summary invalidated so the next read rebuilds with the new count.
	if fx.cache.Contains(cachestore.GroupKey(g.ID)) {
		t.Error("expected group summary to be invalidated")
	}

	events, err := fx.svc.RecentActivity(ctx, g.ID, 10)
	if err != nil {
		t.Fatalf("RecentActivity failed: %v", err)
	}
	if len(events) != 1 || events[0].Type != models.ActivityJoin {
		t.Errorf("expected one join event, got %+v", events)
	}

	top, err := fx.scores.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 1 || top[0].Points != leaderboard.JoinPoints {
		t.Errorf("expected join points awarded once, got %+v", top)
	}
}

func TestJoinGroup_DuplicateIsConflict(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")

	if _, _, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, ""); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	_, _, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, "moderator")
	if !errors.Is(err, groupsvc.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}

	// The original row is untouched.
	members, _ := fx.svc.Members(ctx, g.ID)
	if len(members) != 1 || members[0].Role != "member" {
		t.Errorf("expected single unchanged membership, got %+v", members)
	}
}

func TestJoinGroup_MissingUserOrGroup(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	if _, _, err := fx.svc.JoinGroup(ctx, 999, g.ID, ""); !errors.Is(err, groupsvc.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	if _, _, err := fx.svc.JoinGroup(ctx, u.ID, 999, ""); !errors.Is(err, groupsvc.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing group, got %v", err)
	}
}

func TestJoinGroup_CacheOutageIsPartial(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")

	fx.cache.Err = errors.New("connection refused")
	_, fo, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, "")
	if err != nil {
		t.Fatalf("JoinGroup must survive a cache outage: %v", err)
	}
	if !fo.Partial() {
		t.Fatal("expected partial fan-out")
	}

	// The authoritative row exists despite every cache step failing.
	ok, _ := fx.memberships.Exists(ctx, u.ID, g.ID)
	if !ok {
		t.Error("expected membership row")
	}
}

func TestGetGroup_RebuildsSummaryOnMiss(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	if _, _, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, ""); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if _, err := fx.posts.Create(ctx, models.Post{AuthorID: u.ID, GroupID: g.ID, Type: "note", Title: "t"}); err != nil {
		t.Fatalf("seed post failed: %v", err)
	}

	sum, err := fx.svc.GetGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if sum.MemberCount != 1 || sum.PostCount != 1 {
		t.Errorf("expected counts 1/1, got %d/%d", sum.MemberCount, sum.PostCount)
	}
	if !fx.cache.Contains(cachestore.GroupKey(g.ID)) {
		t.Error("expected rebuilt summary to be cached")
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fx.svc.GetGroup(ctx, 999); !errors.Is(err, groupsvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentActivity_CacheOutageFails(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	fx.cache.Err = errors.New("connection refused")

	if _, err := fx.svc.RecentActivity(ctx, g.ID, 10); err == nil {
		t.Fatal("expected activity read to fail when the cache store is down")
	}
}

func TestRecentActivity_SkipsUndecodableEntries(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	if _, _, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, ""); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if err := fx.cache.AppendBounded(ctx, cachestore.ActivityKey(g.ID), []byte("{broken"), groupsvc.ActivityMaxLen); err != nil {
		t.Fatalf("seed broken entry failed: %v", err)
	}

	events, err := fx.svc.RecentActivity(ctx, g.ID, 10)
	if err != nil {
		t.Fatalf("RecentActivity failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected the broken entry to be skipped, got %d events", len(events))
	}
}

func TestJoinGroup_LostUserMirrorIsReportedPending(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The user row exists but its graph mirror was lost, the state a
	// partial CreateUser leaves behind.
	u, err := fx.users.Create(ctx, "alice@test.com", "Alice")
	if err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")

	_, fo, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, "")
	if err != nil {
		t.Fatalf("JoinGroup must survive a missing graph mirror: %v", err)
	}
	if !fo.Partial() {
		t.Fatal("expected partial fan-out when the edge could not be written")
	}
	found := false
	for _, step := range fo.Pending() {
		if step == "graph membership edge" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the edge step in pending, got %v", fo.Pending())
	}
}

func TestUpdateMemberRole(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")
	if _, _, err := fx.svc.JoinGroup(ctx, u.ID, g.ID, ""); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	fo, err := fx.svc.UpdateMemberRole(ctx, u.ID, g.ID, "moderator")
	if err != nil {
		t.Fatalf("UpdateMemberRole failed: %v", err)
	}
	if fo.Partial() {
		t.Errorf("expected clean fan-out, pending = %v", fo.Pending())
	}

	members, err := fx.svc.Members(ctx, g.ID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 1 || members[0].Role != "moderator" {
		t.Errorf("expected role moderator on the row, got %+v", members)
	}
}

func TestUpdateMemberRole_NotAMember(t *testing.T) {
	fx := newGroupFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := seedUser(t, fx, ctx, "alice@test.com", "Alice")
	g, _, _ := fx.svc.CreateGroup(ctx, "Algorithms", "CS201")

	if _, err := fx.svc.UpdateMemberRole(ctx, u.ID, g.ID, "moderator"); !errors.Is(err, groupsvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a non-member, got %v", err)
	}
}
