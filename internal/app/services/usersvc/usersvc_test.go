package usersvc_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
	"github.com/MirzaKrupic/CampusConnect/internal/testutil"
)

// Cache entries expire on their own schedule, unrelated to call timeouts.
const testTTL = time.Hour

type userFixture struct {
	users       *testutil.FakeUserStore
	memberships *testutil.FakeMembershipStore
	graph       *testutil.FakeGraph
	cache       *testutil.FakeCache
	svc         *usersvc.Service
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	users := testutil.NewFakeUserStore()
	groups := testutil.NewFakeGroupStore()
	memberships := testutil.NewFakeMembershipStore(users, groups)
	graph := testutil.NewFakeGraph()
	cache := testutil.NewFakeCache()
	return &userFixture{
		users:       users,
		memberships: memberships,
		graph:       graph,
		cache:       cache,
		svc:         usersvc.New(users, memberships, graph, cache, testTTL, zap.NewNop()),
	}
}

func TestCreateUser_PopulatesMirrorAndCache(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, fo, err := fx.svc.CreateUser(ctx, "Alice@Example.COM", "Alice Smith")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if fo.Partial() {
		t.Errorf("expected clean fan-out, pending = %v", fo.Pending())
	}
	if u.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}

	present, err := fx.graph.HasUserNode(ctx, u.ID)
	if err != nil || !present {
		t.Errorf("expected graph node for user %d", u.ID)
	}
	if !fx.cache.Contains(cachestore.UserKey(u.ID)) {
		t.Error("expected cached user entry")
	}
}

func TestCreateUser_DuplicateEmailAborts(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := fx.svc.CreateUser(ctx, "bob@test.com", "Bob"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, _, err := fx.svc.CreateUser(ctx, "BOB@test.com", "Bobby")
	if !errors.Is(err, usersvc.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreateUser_CacheOutageIsPartial(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.cache.Err = errors.New("connection refused")
	u, fo, err := fx.svc.CreateUser(ctx, "carol@test.com", "Carol")
	if err != nil {
		t.Fatalf("CreateUser should survive a cache outage: %v", err)
	}
	if !fo.Partial() {
		t.Fatal("expected partial fan-out")
	}
	if _, err := fx.users.GetByID(ctx, u.ID); err != nil {
		t.Errorf("authoritative row must exist: %v", err)
	}
}

func TestGetUser_CacheHitSkipsStore(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cached := models.User{ID: 42, Email: "cached@test.com", FullName: "Cached"}
	data, _ := json.Marshal(cached)
	fx.cache.Put(cachestore.UserKey(42), data)

	// The store has no row 42; only the cache can answer.
	u, err := fx.svc.GetUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.Email != "cached@test.com" {
		t.Errorf("expected cached entry, got %+v", u)
	}
}

func TestGetUser_MissLoadsAndPopulates(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _, err := fx.svc.CreateUser(ctx, "dave@test.com", "Dave")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	fx.cache.Invalidate(ctx, cachestore.UserKey(created.ID))

	u, err := fx.svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("expected user %d, got %d", created.ID, u.ID)
	}
	if !fx.cache.Contains(cachestore.UserKey(created.ID)) {
		t.Error("expected cache to be repopulated after miss")
	}
}

func TestGetUser_CacheOutageFallsThrough(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, _, err := fx.svc.CreateUser(ctx, "erin@test.com", "Erin")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	fx.cache.Err = errors.New("connection refused")
	u, err := fx.svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser must degrade to the authoritative store: %v", err)
	}
	if u.Email != "erin@test.com" {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := fx.svc.GetUser(ctx, 999); !errors.Is(err, usersvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddFriend_SymmetricEdges(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _, _ := fx.svc.CreateUser(ctx, "a@test.com", "A")
	b, _, _ := fx.svc.CreateUser(ctx, "b@test.com", "B")

	fo, err := fx.svc.AddFriend(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if fo.Partial() {
		t.Errorf("expected clean fan-out, pending = %v", fo.Pending())
	}

	for _, pair := range [][2]int64{{a.ID, b.ID}, {b.ID, a.ID}} {
		ok, err := fx.graph.AreFriends(ctx, pair[0], pair[1])
		if err != nil || !ok {
			t.Errorf("expected edge %d->%d", pair[0], pair[1])
		}
	}
}

func TestAddFriend_Guards(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _, _ := fx.svc.CreateUser(ctx, "a@test.com", "A")
	b, _, _ := fx.svc.CreateUser(ctx, "b@test.com", "B")

	if _, err := fx.svc.AddFriend(ctx, a.ID, a.ID); !errors.Is(err, usersvc.ErrSelfFriend) {
		t.Errorf("expected ErrSelfFriend, got %v", err)
	}
	if _, err := fx.svc.AddFriend(ctx, a.ID, 999); !errors.Is(err, usersvc.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := fx.svc.AddFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if _, err := fx.svc.AddFriend(ctx, a.ID, b.ID); !errors.Is(err, usersvc.ErrAlreadyFriends) {
		t.Errorf("expected ErrAlreadyFriends, got %v", err)
	}
}

func TestAddFriend_ReverseEdgeFailureIsPartial(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _, _ := fx.svc.CreateUser(ctx, "a@test.com", "A")
	b, _, _ := fx.svc.CreateUser(ctx, "b@test.com", "B")

	// Allow the forward edge, fail the reverse one.
	fx.graph.FailEdgeAfter = 1

	fo, err := fx.svc.AddFriend(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("AddFriend must not fail on the reverse edge: %v", err)
	}
	if !fo.Partial() {
		t.Fatal("expected partial fan-out")
	}

	forward, _ := fx.graph.AreFriends(ctx, a.ID, b.ID)
	reverse, _ := fx.graph.AreFriends(ctx, b.ID, a.ID)
	if !forward || reverse {
		t.Errorf("expected asymmetric edges, forward=%v reverse=%v", forward, reverse)
	}
}

func TestProfile_EnrichesWithDegreeAndGroups(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _, _ := fx.svc.CreateUser(ctx, "a@test.com", "A")
	b, _, _ := fx.svc.CreateUser(ctx, "b@test.com", "B")
	if _, err := fx.svc.AddFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	p, err := fx.svc.Profile(ctx, a.ID)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if p.FriendCount != 1 {
		t.Errorf("expected friend count 1, got %d", p.FriendCount)
	}
	if p.GroupCount != 0 || len(p.Groups) != 0 {
		t.Errorf("expected no groups, got %+v", p.Groups)
	}
}

func TestProfile_GraphOutageFails(t *testing.T) {
	fx := newUserFixture(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _, _ := fx.svc.CreateUser(ctx, "a@test.com", "A")
	fx.graph.Err = errors.New("connection refused")

	if _, err := fx.svc.Profile(ctx, a.ID); err == nil {
		t.Fatal("expected profile to fail when the graph store is down")
	}
}
