// internal/app/store/graph/graphstore.go
package graphstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/MirzaKrupic/CampusConnect/internal/domain/models"
)

// ErrNodeMissing is returned by edge upserts when a referenced node does
// not exist, usually because an earlier node-mirror step was lost. A MATCH
// that finds nothing produces zero rows and the MERGE never runs, which
// Neo4j reports as success; the RETURN clause makes the miss visible.
var ErrNodeMissing = errors.New("graph node does not exist")

// Node labels and relationship types in the social graph.
const (
	LabelUser  = "User"
	LabelGroup = "Group"

	RelFriend   = "FRIEND"
	RelMemberOf = "MEMBER_OF"
)

// Store runs Cypher against Neo4j, the sole store for the social graph.
// User and Group nodes mirror PostgreSQL rows keyed by the same id;
// FRIEND edges have no relational record at all, so graph unavailability
// is fatal for friendship and recommendation operations.
type Store struct {
	driver neo4j.DriverWithContext
	dbName string
}

func New(driver neo4j.DriverWithContext, dbName string) *Store {
	return &Store{driver: driver, dbName: dbName}
}

func (s *Store) run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.dbName),
	)
	if err != nil {
		return nil, fmt.Errorf("graph query: %w", err)
	}
	return result, nil
}

// EnsureConstraints creates the uniqueness constraints on node ids.
// Idempotent; called once at startup.
func (s *Store) EnsureConstraints(ctx context.Context) error {
	stmts := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
		"CREATE CONSTRAINT group_id_unique IF NOT EXISTS FOR (g:Group) REQUIRE g.id IS UNIQUE",
	}
	for _, stmt := range stmts {
		if _, err := s.run(ctx, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// UpsertUserNode mirrors a user row as a graph node keyed by the same id.
func (s *Store) UpsertUserNode(ctx context.Context, u models.User) error {
	_, err := s.run(ctx, `
		MERGE (u:User {id: $id})
		SET u.email = $email, u.full_name = $full_name`,
		map[string]any{"id": u.ID, "email": u.Email, "full_name": u.FullName})
	return err
}

// UpsertGroupNode mirrors a group row as a graph node keyed by the same id.
func (s *Store) UpsertGroupNode(ctx context.Context, g models.Group) error {
	_, err := s.run(ctx, `
		MERGE (g:Group {id: $id})
		SET g.name = $name, g.course_code = $course_code`,
		map[string]any{"id": g.ID, "name": g.Name, "course_code": g.CourseCode})
	return err
}

// UpsertMembershipEdge mirrors a membership row as a MEMBER_OF edge.
// Returns ErrNodeMissing when either endpoint node is absent.
func (s *Store) UpsertMembershipEdge(ctx context.Context, userID, groupID int64, role string) error {
	res, err := s.run(ctx, `
		MATCH (u:User {id: $user_id})
		MATCH (g:Group {id: $group_id})
		MERGE (u)-[r:MEMBER_OF]->(g)
		SET r.role = $role
		RETURN r`,
		map[string]any{"user_id": userID, "group_id": groupID, "role": role})
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("membership edge %d->%d: %w", userID, groupID, ErrNodeMissing)
	}
	return nil
}

// UpsertFriendEdge writes one direction of a friendship. The coordinator
// calls it twice; symmetry is its contract, not this store's. Returns
// ErrNodeMissing when either user node is absent.
func (s *Store) UpsertFriendEdge(ctx context.Context, fromID, toID int64) error {
	res, err := s.run(ctx, `
		MATCH (a:User {id: $from})
		MATCH (b:User {id: $to})
		MERGE (a)-[r:FRIEND]->(b)
		RETURN r`,
		map[string]any{"from": fromID, "to": toID})
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("friend edge %d->%d: %w", fromID, toID, ErrNodeMissing)
	}
	return nil
}

// HasUserNode reports whether a User node with the given id exists.
func (s *Store) HasUserNode(ctx context.Context, id int64) (bool, error) {
	res, err := s.run(ctx,
		"MATCH (u:User {id: $id}) RETURN count(u) > 0 AS present",
		map[string]any{"id": id})
	if err != nil {
		return false, err
	}
	return singleBool(res, "present")
}

// AreFriends reports whether a FRIEND edge a->b exists.
func (s *Store) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	res, err := s.run(ctx, `
		MATCH (:User {id: $a})-[:FRIEND]->(:User {id: $b})
		RETURN count(*) > 0 AS friends`,
		map[string]any{"a": a, "b": b})
	if err != nil {
		return false, err
	}
	return singleBool(res, "friends")
}

// FriendIDs returns the ids of a user's direct friends.
func (s *Store) FriendIDs(ctx context.Context, id int64) ([]int64, error) {
	res, err := s.run(ctx, `
		MATCH (:User {id: $id})-[:FRIEND]->(f:User)
		RETURN f.id AS id ORDER BY id`,
		map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(res.Records))
	for _, rec := range res.Records {
		v, ok := rec.Get("id")
		if !ok {
			continue
		}
		if n, ok := v.(int64); ok {
			ids = append(ids, n)
		}
	}
	return ids, nil
}

// Degree returns the number of outgoing FRIEND edges for a user.
func (s *Store) Degree(ctx context.Context, id int64) (int64, error) {
	res, err := s.run(ctx, `
		MATCH (:User {id: $id})-[:FRIEND]->()
		RETURN count(*) AS degree`,
		map[string]any{"id": id})
	if err != nil {
		return 0, err
	}
	return singleInt(res, "degree")
}

// FriendCandidates runs the two-hop friend-of-friend traversal: candidates
// reachable over exactly two FRIEND edges, excluding the user and direct
// friends, ranked by distinct mutual friends descending, then id ascending.
func (s *Store) FriendCandidates(ctx context.Context, userID int64, limit int) ([]models.FriendRecommendation, error) {
	res, err := s.run(ctx, `
		MATCH (me:User {id: $id})-[:FRIEND]->(friend)-[:FRIEND]->(fof:User)
		WHERE me <> fof AND NOT (me)-[:FRIEND]->(fof)
		WITH fof, count(DISTINCT friend) AS mutual
		ORDER BY mutual DESC, fof.id ASC
		LIMIT $limit
		RETURN fof.id AS user_id, fof.full_name AS full_name,
		       fof.email AS email, mutual`,
		map[string]any{"id": userID, "limit": limit})
	if err != nil {
		return nil, err
	}
	recs := make([]models.FriendRecommendation, 0, len(res.Records))
	for _, rec := range res.Records {
		m := rec.AsMap()
		recs = append(recs, models.FriendRecommendation{
			UserID:        asInt64(m["user_id"]),
			FullName:      asString(m["full_name"]),
			Email:         asString(m["email"]),
			MutualFriends: asInt64(m["mutual"]),
		})
	}
	return recs, nil
}

// GroupCandidates runs the friends-in-group traversal: groups where the
// user's direct friends are members, excluding the user's own groups,
// ranked by distinct friend-members descending, then id ascending.
func (s *Store) GroupCandidates(ctx context.Context, userID int64, limit int) ([]models.GroupRecommendation, error) {
	res, err := s.run(ctx, `
		MATCH (me:User {id: $id})-[:FRIEND]->(friend)-[:MEMBER_OF]->(g:Group)
		WHERE NOT (me)-[:MEMBER_OF]->(g)
		WITH g, count(DISTINCT friend) AS friends
		ORDER BY friends DESC, g.id ASC
		LIMIT $limit
		RETURN g.id AS group_id, g.name AS name,
		       g.course_code AS course_code, friends`,
		map[string]any{"id": userID, "limit": limit})
	if err != nil {
		return nil, err
	}
	recs := make([]models.GroupRecommendation, 0, len(res.Records))
	for _, rec := range res.Records {
		m := rec.AsMap()
		recs = append(recs, models.GroupRecommendation{
			GroupID:     asInt64(m["group_id"]),
			Name:        asString(m["name"]),
			CourseCode:  asString(m["course_code"]),
			FriendCount: asInt64(m["friends"]),
		})
	}
	return recs, nil
}

// CommonGroups returns groups both users belong to.
func (s *Store) CommonGroups(ctx context.Context, a, b int64) ([]models.GroupRef, error) {
	res, err := s.run(ctx, `
		MATCH (:User {id: $a})-[:MEMBER_OF]->(g:Group)<-[:MEMBER_OF]-(:User {id: $b})
		RETURN g.id AS group_id, g.name AS name, g.course_code AS course_code
		ORDER BY g.id`,
		map[string]any{"a": a, "b": b})
	if err != nil {
		return nil, err
	}
	groups := make([]models.GroupRef, 0, len(res.Records))
	for _, rec := range res.Records {
		m := rec.AsMap()
		groups = append(groups, models.GroupRef{
			GroupID:    asInt64(m["group_id"]),
			Name:       asString(m["name"]),
			CourseCode: asString(m["course_code"]),
		})
	}
	return groups, nil
}

// Ping verifies connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

func singleBool(res *neo4j.EagerResult, key string) (bool, error) {
	if len(res.Records) == 0 {
		return false, nil
	}
	v, ok := res.Records[0].Get(key)
	if !ok {
		return false, fmt.Errorf("graph result missing %q", key)
	}
	b, _ := v.(bool)
	return b, nil
}

func singleInt(res *neo4j.EagerResult, key string) (int64, error) {
	if len(res.Records) == 0 {
		return 0, nil
	}
	v, ok := res.Records[0].Get(key)
	if !ok {
		return 0, fmt.Errorf("graph result missing %q", key)
	}
	return asInt64(v), nil
}

func asInt64(v any) int64 {
	n, _ := v.(int64)
	return n
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
