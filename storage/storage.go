package storage

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sanguo-reversi-server/room"
)

const (
	EloK            = 32
	InitialElo      = 1000
	botUserIDPrefix = "bot:"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS match_history (
	id UUID PRIMARY KEY,
	played_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	player0_user_id TEXT NOT NULL,
	player1_user_id TEXT NOT NULL,
	player0_name TEXT NOT NULL,
	player1_name TEXT NOT NULL,
	player0_hp INT NOT NULL,
	player1_hp INT NOT NULL,
	winner_index SMALLINT,
	turns INT NOT NULL DEFAULT 0,
	player0_elo_before INT,
	player0_elo_after INT,
	player1_elo_before INT,
	player1_elo_after INT
);
CREATE INDEX IF NOT EXISTS idx_match_history_player0 ON match_history(player0_user_id);
CREATE INDEX IF NOT EXISTS idx_match_history_player1 ON match_history(player1_user_id);
CREATE TABLE IF NOT EXISTS player_ratings (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	elo          INT  NOT NULL DEFAULT 1000,
	wins         INT  NOT NULL DEFAULT 0,
	losses       INT  NOT NULL DEFAULT 0,
	draws        INT  NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_player_ratings_elo ON player_ratings(elo DESC);
`

// Store persists and retrieves match history and player ratings.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// computeEloUpdates returns new ratings (newR0, newR1) given current ratings
// and winnerIdx (0 or 1; this game has no draws).
func computeEloUpdates(r0, r1 int, winnerIdx int) (newR0, newR1 int) {
	var score0, score1 float64
	if winnerIdx == 0 {
		score0, score1 = 1, 0
	} else {
		score0, score1 = 0, 1
	}
	e0 := 1 / (1 + math.Pow(10, float64(r1-r0)/400))
	e1 := 1 - e0
	delta0 := EloK * (score0 - e0)
	delta1 := EloK * (score1 - e1)
	newR0 = r0 + int(math.Round(delta0))
	newR1 = r1 + int(math.Round(delta1))
	if newR0 < 0 {
		newR0 = 0
	}
	if newR1 < 0 {
		newR1 = 0
	}
	return newR0, newR1
}

// RecordMatch persists a finished match: ratings first (when both players are
// identified), then the history row with elo snapshots. Guests (empty user
// id) get a history row but no rating update.
func (s *Store) RecordMatch(ctx context.Context, sum room.MatchSummary) error {
	if s == nil || s.pool == nil {
		return nil
	}
	var elo0Before, elo0After, elo1Before, elo1After *int
	if sum.UserIDs[0] != "" && sum.UserIDs[1] != "" {
		b0, a0, b1, a1, err := s.updateRatings(ctx, sum)
		if err != nil {
			return err
		}
		elo0Before, elo0After, elo1Before, elo1After = &b0, &a0, &b1, &a1
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO match_history (id, player0_user_id, player1_user_id, player0_name, player1_name, player0_hp, player1_hp, winner_index, turns, player0_elo_before, player0_elo_after, player1_elo_before, player1_elo_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		sum.MatchID, sum.UserIDs[0], sum.UserIDs[1], sum.Names[0], sum.Names[1], sum.HPLeft[0], sum.HPLeft[1], sum.WinnerSeat, sum.Turns,
		elo0Before, elo0After, elo1Before, elo1After)
	return err
}

// updateRatings updates Elo and W/L for both players in one transaction and
// returns each player's elo before and after the match.
func (s *Store) updateRatings(ctx context.Context, sum room.MatchSummary) (elo0Before, elo0After, elo1Before, elo1After int, err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	defer tx.Rollback(ctx)

	// Ensure both players have a row (default 1000 elo, 0 W/L)
	_, _ = tx.Exec(ctx, `INSERT INTO player_ratings (user_id, display_name, elo, wins, losses, draws) VALUES ($1, '', 1000, 0, 0, 0) ON CONFLICT (user_id) DO NOTHING`, sum.UserIDs[0])
	_, _ = tx.Exec(ctx, `INSERT INTO player_ratings (user_id, display_name, elo, wins, losses, draws) VALUES ($1, '', 1000, 0, 0, 0) ON CONFLICT (user_id) DO NOTHING`, sum.UserIDs[1])

	var r0, w0, l0, r1, w1, l1 int
	err = tx.QueryRow(ctx, `SELECT elo, wins, losses FROM player_ratings WHERE user_id = $1`, sum.UserIDs[0]).Scan(&r0, &w0, &l0)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	err = tx.QueryRow(ctx, `SELECT elo, wins, losses FROM player_ratings WHERE user_id = $1`, sum.UserIDs[1]).Scan(&r1, &w1, &l1)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	elo0Before, elo1Before = r0, r1
	newR0, newR1 := computeEloUpdates(r0, r1, sum.WinnerSeat)
	elo0After, elo1After = newR0, newR1

	if sum.WinnerSeat == 0 {
		w0++
		l1++
	} else {
		l0++
		w1++
	}

	_, err = tx.Exec(ctx, `UPDATE player_ratings SET display_name = $1, elo = $2, wins = $3, losses = $4, updated_at = now() WHERE user_id = $5`,
		sum.Names[0], newR0, w0, l0, sum.UserIDs[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	_, err = tx.Exec(ctx, `UPDATE player_ratings SET display_name = $1, elo = $2, wins = $3, losses = $4, updated_at = now() WHERE user_id = $5`,
		sum.Names[1], newR1, w1, l1, sum.UserIDs[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, 0, 0, 0, err
	}
	return elo0Before, elo0After, elo1Before, elo1After, nil
}

// MatchRecord is a single row returned for the history API.
type MatchRecord struct {
	ID               string `json:"id"`
	PlayedAt         string `json:"played_at"` // ISO8601
	Player0UserID    string `json:"player0_user_id"`
	Player1UserID    string `json:"player1_user_id"`
	Player0Name      string `json:"player0_name"`
	Player1Name      string `json:"player1_name"`
	Player0HP        int    `json:"player0_hp"`
	Player1HP        int    `json:"player1_hp"`
	WinnerIndex      int    `json:"winner_index"`
	Turns            int    `json:"turns"`
	YourIndex        *int   `json:"your_index"` // 0 or 1 for the requesting user; set by ListByUserID
	Player0EloBefore *int   `json:"player0_elo_before,omitempty"`
	Player0EloAfter  *int   `json:"player0_elo_after,omitempty"`
	Player1EloBefore *int   `json:"player1_elo_before,omitempty"`
	Player1EloAfter  *int   `json:"player1_elo_after,omitempty"`
}

// ListByUserID returns all matches where the user participated, ordered by played_at DESC.
// Each record has your_index set to 0 or 1 so the client can show "You" vs opponent.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]MatchRecord, error) {
	if s == nil || s.pool == nil {
		return []MatchRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, player0_user_id, player1_user_id, player0_name, player1_name, player0_hp, player1_hp, winner_index, turns,
			player0_elo_before, player0_elo_after, player1_elo_before, player1_elo_after
		FROM match_history
		WHERE player0_user_id = $1 OR player1_user_id = $1
		ORDER BY played_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var playedAt time.Time
		if err := rows.Scan(&r.ID, &playedAt, &r.Player0UserID, &r.Player1UserID, &r.Player0Name, &r.Player1Name, &r.Player0HP, &r.Player1HP, &r.WinnerIndex, &r.Turns,
			&r.Player0EloBefore, &r.Player0EloAfter, &r.Player1EloBefore, &r.Player1EloAfter); err != nil {
			return nil, err
		}
		r.PlayedAt = playedAt.UTC().Format(time.RFC3339)
		yi := 0
		if r.Player1UserID == userID {
			yi = 1
		}
		r.YourIndex = &yi
		out = append(out, r)
	}
	return out, rows.Err()
}

// LeaderboardEntry is a single row for the leaderboard API.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Elo         int    `json:"elo"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	IsBot       bool   `json:"is_bot"`
}

// ListLeaderboard returns entries ordered by elo DESC, with optional limit and offset.
func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if s == nil || s.pool == nil {
		return []LeaderboardEntry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, display_name, elo, wins, losses
		FROM player_ratings
		ORDER BY elo DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Elo, &e.Wins, &e.Losses); err != nil {
			return nil, err
		}
		e.IsBot = strings.HasPrefix(e.UserID, botUserIDPrefix)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLeaderboardEntryByUserID returns one player's entry, or (nil, nil) if not found.
func (s *Store) GetLeaderboardEntryByUserID(ctx context.Context, userID string) (*LeaderboardEntry, error) {
	if s == nil || s.pool == nil || userID == "" {
		return nil, nil
	}
	var e LeaderboardEntry
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, display_name, elo, wins, losses
		FROM player_ratings
		WHERE user_id = $1`,
		userID).Scan(&e.UserID, &e.DisplayName, &e.Elo, &e.Wins, &e.Losses)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.IsBot = strings.HasPrefix(e.UserID, botUserIDPrefix)
	return &e, nil
}
