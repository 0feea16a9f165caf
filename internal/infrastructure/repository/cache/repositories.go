package cache

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	basecache "github.com/riskibarqy/esports-sync/internal/platform/cache"
)

const (
	leaguePrefix     = "league:"
	tournamentPrefix = "tournament:"
	gameDataPrefix   = "gamedata:"
)

// LeagueRepository caches the read paths of the league table. Every write
// drops the whole league keyspace.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, items []league.League) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.next.UpsertMany(ctx, items)
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, leaguePrefix+"list", func(ctx context.Context) ([]league.League, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID league.ID) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, leaguePrefix+"id:"+string(leagueID), func(ctx context.Context) (cachedLeagueByID, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		return cachedLeagueByID{value: item, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) SetFantasyAvailable(ctx context.Context, leagueID league.ID, available bool) error {
	defer r.cache.DeletePrefix(ctx, leaguePrefix)
	return r.next.SetFantasyAvailable(ctx, leagueID, available)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) UpsertMany(ctx context.Context, items []tournament.Tournament) error {
	defer r.cache.DeletePrefix(ctx, tournamentPrefix)
	return r.next.UpsertMany(ctx, items)
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID tournament.ID) (tournament.Tournament, bool, error) {
	return r.next.GetByID(ctx, tournamentID)
}

func (r *TournamentRepository) ListByLeague(ctx context.Context, leagueID league.ID) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, tournamentPrefix+"league:"+string(leagueID), func(ctx context.Context) ([]tournament.Tournament, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

// GameDataRepository caches joined player game data pages. The stats
// tracker writes every few minutes, so entries live at most one TTL or
// until the next write.
type GameDataRepository struct {
	next  gamedata.Repository
	cache *basecache.Store
}

func NewGameDataRepository(next gamedata.Repository, cache *basecache.Store) *GameDataRepository {
	return &GameDataRepository{next: next, cache: cache}
}

func (r *GameDataRepository) UpsertMetadata(ctx context.Context, items []gamedata.Metadata) error {
	defer r.cache.DeletePrefix(ctx, gameDataPrefix)
	return r.next.UpsertMetadata(ctx, items)
}

func (r *GameDataRepository) UpsertStats(ctx context.Context, items []gamedata.Stats) error {
	defer r.cache.DeletePrefix(ctx, gameDataPrefix)
	return r.next.UpsertStats(ctx, items)
}

func (r *GameDataRepository) ListPlayerGameData(ctx context.Context, filter gamedata.Filter) ([]gamedata.PlayerGameData, error) {
	key := fmt.Sprintf("%sgame=%s:player=%s:limit=%d:offset=%d", gameDataPrefix, filter.GameID, filter.PlayerID, filter.Limit, filter.Offset)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]gamedata.PlayerGameData, error) {
		return r.next.ListPlayerGameData(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]gamedata.PlayerGameData(nil), items...), nil
}
