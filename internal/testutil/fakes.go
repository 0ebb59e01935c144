// Package testutil provides in-memory fakes for the store adapters so
// service tests can exercise coordination logic, partial-failure paths,
// and cache degradation without any running backend.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	cachestore "github.com/MirzaKrupic/CampusConnect/internal/app/store/cache"
	graphstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/graph"
	groupstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/groups"
	membershipstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/memberships"
	poststore "github.com/MirzaKrupic/CampusConnect/internal/app/store/posts"
	userstore "github.com/MirzaKrupic/CampusConnect/internal/app/store/users"
	"github.com/MirzaKrupic/CampusConnect/internal/app/system/normalize"
	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// FakeUserStore is an in-memory stand-in for the relational user store.
type FakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.User
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{byID: map[int64]models.User{}}
}

func (f *FakeUserStore) Create(ctx context.Context, email, fullName string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = normalize.Email(email)
	for _, u := range f.byID {
		if u.Email == email {
			return models.User{}, userstore.ErrDuplicateEmail
		}
	}
	f.nextID++
	u := models.User{ID: f.nextID, Email: email, FullName: fullName, CreatedAt: time.Now().UTC()}
	f.byID[u.ID] = u
	return u, nil
}

func (f *FakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	return &u, nil
}

func (f *FakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = normalize.Email(email)
	for _, u := range f.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, userstore.ErrNotFound
}

// Has reports whether a user row exists, for membership FK checks.
func (f *FakeUserStore) Has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok
}

// FakeGroupStore is an in-memory stand-in for the relational group store.
type FakeGroupStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Group
}

func NewFakeGroupStore() *FakeGroupStore {
	return &FakeGroupStore{byID: map[int64]models.Group{}}
}

func (f *FakeGroupStore) Create(ctx context.Context, name, courseCode string) (models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g := models.Group{ID: f.nextID, Name: name, CourseCode: courseCode, CreatedAt: time.Now().UTC()}
	f.byID[g.ID] = g
	return g, nil
}

func (f *FakeGroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[id]
	if !ok {
		return nil, groupstore.ErrNotFound
	}
	return &g, nil
}

func (f *FakeGroupStore) List(ctx context.Context, limit int) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	groups := make([]models.Group, 0, len(f.byID))
	for _, g := range f.byID {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID > groups[j].ID })
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}

func (f *FakeGroupStore) Has(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok
}

// FakeMembershipStore is an in-memory stand-in for the relational
// membership store. It enforces the composite uniqueness and the foreign
// keys against the fake user and group stores.
type FakeMembershipStore struct {
	mu     sync.Mutex
	users  *FakeUserStore
	groups *FakeGroupStore
	rows   map[[2]int64]models.GroupMembership
}

func NewFakeMembershipStore(users *FakeUserStore, groups *FakeGroupStore) *FakeMembershipStore {
	return &FakeMembershipStore{users: users, groups: groups, rows: map[[2]int64]models.GroupMembership{}}
}

func (f *FakeMembershipStore) Add(ctx context.Context, userID, groupID int64, role string) (models.GroupMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, groupID}
	if _, ok := f.rows[key]; ok {
		return models.GroupMembership{}, membershipstore.ErrDuplicateMembership
	}
	if !f.users.Has(userID) || !f.groups.Has(groupID) {
		return models.GroupMembership{}, membershipstore.ErrMissingRow
	}
	if role == "" {
		role = "member"
	}
	m := models.GroupMembership{UserID: userID, GroupID: groupID, Role: role, JoinedAt: time.Now().UTC()}
	f.rows[key] = m
	return m, nil
}

func (f *FakeMembershipStore) UpdateRole(ctx context.Context, userID, groupID int64, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{userID, groupID}
	m, ok := f.rows[key]
	if !ok {
		return membershipstore.ErrMissingRow
	}
	m.Role = role
	f.rows[key] = m
	return nil
}

func (f *FakeMembershipStore) Exists(ctx context.Context, userID, groupID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[[2]int64{userID, groupID}]
	return ok, nil
}

func (f *FakeMembershipStore) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for key := range f.rows {
		if key[1] == groupID {
			n++
		}
	}
	return n, nil
}

func (f *FakeMembershipStore) ListByGroup(ctx context.Context, groupID int64) ([]models.GroupMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var members []models.GroupMember
	for key, m := range f.rows {
		if key[1] != groupID {
			continue
		}
		gm := models.GroupMember{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
		if u, err := f.users.GetByID(ctx, m.UserID); err == nil {
			gm.Email = u.Email
			gm.FullName = u.FullName
		}
		members = append(members, gm)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members, nil
}

func (f *FakeMembershipStore) ListByUser(ctx context.Context, userID int64) ([]models.UserGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var groups []models.UserGroup
	for key, m := range f.rows {
		if key[0] != userID {
			continue
		}
		ug := models.UserGroup{GroupID: m.GroupID, Role: m.Role, JoinedAt: m.JoinedAt}
		if g, err := f.groups.GetByID(ctx, m.GroupID); err == nil {
			ug.Name = g.Name
			ug.CourseCode = g.CourseCode
		}
		groups = append(groups, ug)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].GroupID < groups[j].GroupID })
	return groups, nil
}

// FakeCache is an in-memory stand-in for the Redis cache store. Setting
// Err makes every operation fail with it, which is how tests simulate a
// cache outage.
type FakeCache struct {
	Err error

	mu     sync.Mutex
	data   map[string][]byte
	sets   map[string]map[string]float64
	lists  map[string][][]byte
	counts map[string]int64
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data:   map[string][]byte{},
		sets:   map[string]map[string]float64{},
		lists:  map[string][][]byte{},
		counts: map[string]int64{},
	}
}

func (f *FakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.Err != nil {
		return nil, false, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	return val, ok, nil
}

func (f *FakeCache) SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = val
	return nil
}

func (f *FakeCache) Invalidate(ctx context.Context, key string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// Put seeds a raw cache entry, for hit and corrupt-entry tests.
func (f *FakeCache) Put(key string, val []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = val
}

// Contains reports whether a key is currently cached.
func (f *FakeCache) Contains(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

func (f *FakeCache) IncrScore(ctx context.Context, set, member string, delta float64) (float64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[set] == nil {
		f.sets[set] = map[string]float64{}
	}
	f.sets[set][member] += delta
	return f.sets[set][member], nil
}

func (f *FakeCache) SetScore(ctx context.Context, set, member string, score float64) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[set] == nil {
		f.sets[set] = map[string]float64{}
	}
	f.sets[set][member] = score
	return nil
}

func (f *FakeCache) TopRange(ctx context.Context, set string, count int64) ([]cachestore.ScoredMember, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]cachestore.ScoredMember, 0, len(f.sets[set]))
	for m, s := range f.sets[set] {
		members = append(members, cachestore.ScoredMember{Member: m, Score: s})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member < members[j].Member
	})
	if count > 0 && int64(len(members)) > count {
		members = members[:count]
	}
	return members, nil
}

func (f *FakeCache) Rank(ctx context.Context, set, member string) (int64, bool, error) {
	if f.Err != nil {
		return 0, false, f.Err
	}
	top, err := f.TopRange(ctx, set, 0)
	if err != nil {
		return 0, false, err
	}
	for i, m := range top {
		if m.Member == member {
			return int64(i), true, nil
		}
	}
	return 0, false, nil
}

func (f *FakeCache) AppendBounded(ctx context.Context, list string, entry []byte, maxLen int64) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := append([][]byte{entry}, f.lists[list]...)
	if maxLen > 0 && int64(len(entries)) > maxLen {
		entries = entries[:maxLen]
	}
	f.lists[list] = entries
	return nil
}

func (f *FakeCache) RecentRange(ctx context.Context, list string, limit int64) ([][]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.lists[list]
	if limit > 0 && int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	out := make([][]byte, len(entries))
	copy(out, entries)
	return out, nil
}

func (f *FakeCache) CountWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func (f *FakeCache) Ping(ctx context.Context) error { return f.Err }

// FakePostStore is an in-memory stand-in for the Mongo post store.
type FakePostStore struct {
	Err error

	mu       sync.Mutex
	posts    []models.Post
	comments []models.Comment
}

func NewFakePostStore() *FakePostStore {
	return &FakePostStore{}
}

func (f *FakePostStore) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if f.Err != nil {
		return models.Post{}, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *FakePostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, poststore.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == oid {
			cp := p
			return &cp, nil
		}
	}
	return nil, poststore.ErrNotFound
}

func (f *FakePostStore) UpdateByAuthor(ctx context.Context, id string, authorID int64, set bson.M) (*models.Post, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, poststore.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID != oid || p.AuthorID != authorID {
			continue
		}
		if v, ok := set["title"].(string); ok {
			p.Title = v
		}
		if v, ok := set["body"].(string); ok {
			p.Body = v
		}
		if v, ok := set["tags"].([]string); ok {
			p.Tags = v
		}
		p.UpdatedAt = time.Now().UTC()
		f.posts[i] = p
		cp := p
		return &cp, nil
	}
	return nil, poststore.ErrNotFound
}

func (f *FakePostStore) filter(keep func(models.Post) bool, limit, skip int64) []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for i := len(f.posts) - 1; i >= 0; i-- {
		if !keep(f.posts[i]) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, f.posts[i])
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out
}

func (f *FakePostStore) ListByGroup(ctx context.Context, groupID int64, limit, skip int64) ([]models.Post, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.filter(func(p models.Post) bool { return p.GroupID == groupID }, limit, skip), nil
}

func (f *FakePostStore) ListByAuthor(ctx context.Context, authorID int64, limit int64) ([]models.Post, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.filter(func(p models.Post) bool { return p.AuthorID == authorID }, limit, 0), nil
}

func (f *FakePostStore) SearchByTags(ctx context.Context, tags []string, limit int64) ([]models.Post, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	want := map[string]bool{}
	for _, t := range tags {
		want[t] = true
	}
	return f.filter(func(p models.Post) bool {
		for _, t := range p.Tags {
			if want[t] {
				return true
			}
		}
		return false
	}, limit, 0), nil
}

func (f *FakePostStore) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.posts {
		if p.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (f *FakePostStore) CreateComment(ctx context.Context, postID string, authorID int64, body string) (models.Comment, error) {
	if f.Err != nil {
		return models.Comment{}, f.Err
	}
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return models.Comment{}, poststore.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    oid,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *FakePostStore) ListComments(ctx context.Context, postID string, limit int64) ([]models.Comment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, poststore.ErrNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == oid {
			out = append(out, c)
			if limit > 0 && int64(len(out)) >= limit {
				break
			}
		}
	}
	return out, nil
}

// FakeGraph is an in-memory stand-in for the Neo4j graph store. Setting
// Err fails every operation; setting FailEdgeAfter fails friend-edge
// upserts after that many succeed, which is how tests force an
// asymmetric friendship.
type FakeGraph struct {
	Err           error
	FailEdgeAfter int // 0 means never fail

	mu        sync.Mutex
	edgeCount int
	users     map[int64]models.User
	groups    map[int64]models.Group
	friends   map[int64]map[int64]bool
	members   map[int64]map[int64]string
}

func NewFakeGraph() *FakeGraph {
	return &FakeGraph{
		users:   map[int64]models.User{},
		groups:  map[int64]models.Group{},
		friends: map[int64]map[int64]bool{},
		members: map[int64]map[int64]string{},
	}
}

func (f *FakeGraph) UpsertUserNode(ctx context.Context, u models.User) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *FakeGraph) UpsertGroupNode(ctx context.Context, g models.Group) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = g
	return nil
}

func (f *FakeGraph) UpsertMembershipEdge(ctx context.Context, userID, groupID int64, role string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return graphstore.ErrNodeMissing
	}
	if _, ok := f.groups[groupID]; !ok {
		return graphstore.ErrNodeMissing
	}
	if f.members[userID] == nil {
		f.members[userID] = map[int64]string{}
	}
	f.members[userID][groupID] = role
	return nil
}

func (f *FakeGraph) UpsertFriendEdge(ctx context.Context, fromID, toID int64) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[fromID]; !ok {
		return graphstore.ErrNodeMissing
	}
	if _, ok := f.users[toID]; !ok {
		return graphstore.ErrNodeMissing
	}
	f.edgeCount++
	if f.FailEdgeAfter > 0 && f.edgeCount > f.FailEdgeAfter {
		return context.DeadlineExceeded
	}
	if f.friends[fromID] == nil {
		f.friends[fromID] = map[int64]bool{}
	}
	f.friends[fromID][toID] = true
	return nil
}

func (f *FakeGraph) HasUserNode(ctx context.Context, id int64) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

func (f *FakeGraph) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.friends[a][b], nil
}

func (f *FakeGraph) FriendIDs(ctx context.Context, id int64) ([]int64, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.friends[id]))
	for fid := range f.friends[id] {
		ids = append(ids, fid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *FakeGraph) Degree(ctx context.Context, id int64) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.friends[id])), nil
}

func (f *FakeGraph) FriendCandidates(ctx context.Context, userID int64, limit int) ([]models.FriendRecommendation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	mutual := map[int64]int64{}
	for friend := range f.friends[userID] {
		for fof := range f.friends[friend] {
			if fof == userID || f.friends[userID][fof] {
				continue
			}
			mutual[fof]++
		}
	}
	recs := make([]models.FriendRecommendation, 0, len(mutual))
	for id, n := range mutual {
		r := models.FriendRecommendation{UserID: id, MutualFriends: n}
		if u, ok := f.users[id]; ok {
			r.FullName = u.FullName
			r.Email = u.Email
		}
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].MutualFriends != recs[j].MutualFriends {
			return recs[i].MutualFriends > recs[j].MutualFriends
		}
		return recs[i].UserID < recs[j].UserID
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (f *FakeGraph) GroupCandidates(ctx context.Context, userID int64, limit int) ([]models.GroupRecommendation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[int64]int64{}
	for friend := range f.friends[userID] {
		for gid := range f.members[friend] {
			if _, mine := f.members[userID][gid]; mine {
				continue
			}
			counts[gid]++
		}
	}
	recs := make([]models.GroupRecommendation, 0, len(counts))
	for id, n := range counts {
		r := models.GroupRecommendation{GroupID: id, FriendCount: n}
		if g, ok := f.groups[id]; ok {
			r.Name = g.Name
			r.CourseCode = g.CourseCode
		}
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].FriendCount != recs[j].FriendCount {
			return recs[i].FriendCount > recs[j].FriendCount
		}
		return recs[i].GroupID < recs[j].GroupID
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (f *FakeGraph) CommonGroups(ctx context.Context, a, b int64) ([]models.GroupRef, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GroupRef
	for gid := range f.members[a] {
		if _, ok := f.members[b][gid]; !ok {
			continue
		}
		ref := models.GroupRef{GroupID: gid}
		if g, ok := f.groups[gid]; ok {
			ref.Name = g.Name
			ref.CourseCode = g.CourseCode
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })
	return out, nil
}

func (f *FakeGraph) Ping(ctx context.Context) error { return f.Err }
