package feed

import (
	"context"
	"fmt"
	"time"
)

var (
	seedActors  = []string{"alice", "bob", "carol", "dmitri", "eve", "farah", "gus", "hana"}
	seedVerbs   = []string{"minted", "liked", "followed", "commented on", "collected", "listed"}
	seedObjects = []string{"Drop #12", "Genesis", "Night Market", "Tide Pool", "Static Bloom", "Paper Moons"}
)

// Seed inserts n deterministic activities spaced a minute apart, ending at
// now. Seeding an already populated store is a no-op.
func (s *Store) Seed(ctx context.Context, n int, now time.Time) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO activity (actor, verb, object, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		actor := seedActors[i%len(seedActors)]
		verb := seedVerbs[(i/len(seedActors))%len(seedVerbs)]
		object := seedObjects[i%len(seedObjects)]
		if verb == "followed" {
			object = seedActors[(i+3)%len(seedActors)]
		}
		created := now.Add(-time.Duration(n-i) * time.Minute)
		if _, err := stmt.ExecContext(ctx, actor, verb, object, created.Unix()); err != nil {
			return fmt.Errorf("seed activity %d: %w", i, err)
		}
	}

	return tx.Commit()
}
