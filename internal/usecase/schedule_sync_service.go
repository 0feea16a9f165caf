package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ScheduleSyncResult counts the work of one schedule run.
type ScheduleSyncResult struct {
	Pages   int `json:"pages"`
	Matches int `json:"matches"`
}

func (r *ScheduleSyncResult) add(other ScheduleSyncResult) {
	r.Pages += other.Pages
	r.Matches += other.Matches
}

// ScheduleSyncService walks the provider's paginated schedule with two
// persisted cursors: the forward pointer toward the live edge and the
// one-time backfill bookmark walking back through history.
type ScheduleSyncService struct {
	feed      EsportsFeed
	matchRepo match.Repository
	cursors   *synccursor.Store
	logger    *logging.Logger
}

func NewScheduleSyncService(
	feed EsportsFeed,
	matchRepo match.Repository,
	cursors *synccursor.Store,
	logger *logging.Logger,
) *ScheduleSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleSyncService{
		feed:      feed,
		matchRepo: matchRepo,
		cursors:   cursors,
		logger:    logger.Named("schedule_sync"),
	}
}

// FetchNewSchedule catches up from the forward cursor to the live edge. On a
// fresh deployment without a forward cursor it runs the full backfill.
func (s *ScheduleSyncService) FetchNewSchedule(ctx context.Context) (ScheduleSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.FetchNewSchedule")
	defer span.End()

	forward, ok, err := s.cursors.LoadForward(ctx)
	if err != nil {
		return ScheduleSyncResult{}, err
	}
	if !ok {
		s.logger.InfoContext(ctx, "no forward schedule cursor, starting full backfill")
		return s.FetchEntireSchedule(ctx)
	}

	var result ScheduleSyncResult
	token := forward.CurrentToken
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.feed.GetSchedule(ctx, token)
		if err != nil {
			return result, fmt.Errorf("fetch schedule page token=%q: %w", token, err)
		}
		stored, err := s.storePage(ctx, page)
		if err != nil {
			return result, err
		}
		result.add(ScheduleSyncResult{Pages: 1, Matches: stored})

		// Live edge: keep the cursor on this page so the next run re-reads it.
		if page.NewerToken == "" || page.NewerToken == token {
			break
		}
		token = page.NewerToken
		if err := s.cursors.SaveForward(ctx, synccursor.Forward{CurrentToken: token}); err != nil {
			return result, err
		}
	}

	span.SetAttributes(attribute.Int("schedule.pages", result.Pages), attribute.Int("schedule.matches", result.Matches))
	s.logger.InfoContext(ctx, "schedule caught up", "pages", result.Pages, "matches", result.Matches, "current_token", token)
	return result, nil
}

// FetchEntireSchedule seeds both cursors from the newest page, walks back to
// the beginning of provider history and finishes with one catch-up pass.
// With a forward cursor already stored it only resumes an unfinished
// backward walk and catches up.
func (s *ScheduleSyncService) FetchEntireSchedule(ctx context.Context) (ScheduleSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.FetchEntireSchedule")
	defer span.End()

	var result ScheduleSyncResult
	_, seeded, err := s.cursors.LoadForward(ctx)
	if err != nil {
		return result, err
	}

	if !seeded {
		page, err := s.feed.GetSchedule(ctx, "")
		if err != nil {
			return result, fmt.Errorf("fetch newest schedule page: %w", err)
		}
		stored, err := s.storePage(ctx, page)
		if err != nil {
			return result, err
		}
		result.add(ScheduleSyncResult{Pages: 1, Matches: stored})

		// The forward cursor marks the deployment as seeded, so it is written
		// last. A failure in between leaves it absent and the next run seeds again.
		if err := s.cursors.SaveBackfill(ctx, synccursor.Backfill{OlderToken: page.OlderToken}); err != nil {
			return result, err
		}
		if err := s.cursors.SaveForward(ctx, synccursor.Forward{CurrentToken: page.NewerToken}); err != nil {
			return result, err
		}
		s.logger.InfoContext(ctx, "schedule cursors seeded", "newer_token", page.NewerToken, "older_token", page.OlderToken)
	}

	backward, err := s.BackpropOlderSchedules(ctx)
	result.add(backward)
	if err != nil {
		return result, err
	}

	forward, err := s.FetchNewSchedule(ctx)
	result.add(forward)
	return result, err
}

// BackpropOlderSchedules follows the backfill bookmark until provider
// history is exhausted, saving the bookmark after every page.
func (s *ScheduleSyncService) BackpropOlderSchedules(ctx context.Context) (ScheduleSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.BackpropOlderSchedules")
	defer span.End()

	var result ScheduleSyncResult
	cursor, ok, err := s.cursors.LoadBackfill(ctx)
	if err != nil {
		return result, err
	}
	if !ok || cursor.Done() {
		return result, nil
	}

	for !cursor.Done() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.feed.GetSchedule(ctx, cursor.OlderToken)
		if err != nil {
			return result, fmt.Errorf("fetch older schedule page token=%q: %w", cursor.OlderToken, err)
		}
		stored, err := s.storePage(ctx, page)
		if err != nil {
			return result, err
		}
		result.add(ScheduleSyncResult{Pages: 1, Matches: stored})

		if page.OlderToken == cursor.OlderToken {
			return result, fmt.Errorf("schedule page %q points back to itself", cursor.OlderToken)
		}
		cursor = synccursor.Backfill{OlderToken: page.OlderToken}
		if err := s.cursors.SaveBackfill(ctx, cursor); err != nil {
			return result, err
		}
	}

	s.logger.InfoContext(ctx, "schedule backfill complete", "pages", result.Pages, "matches", result.Matches)
	return result, nil
}

// storePage resolves the tournament of every match on the page, one extra
// provider call each, and upserts the page in one storage call.
func (s *ScheduleSyncService) storePage(ctx context.Context, page SchedulePage) (int, error) {
	if len(page.Matches) == 0 {
		return 0, nil
	}

	items := make([]match.Match, 0, len(page.Matches))
	for _, item := range page.Matches {
		tournamentID, err := s.feed.GetTournamentIDForMatch(ctx, item.ID)
		if err != nil {
			return 0, fmt.Errorf("resolve tournament for match=%s: %w", item.ID, err)
		}
		item.TournamentID = tournamentID
		if err := item.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip invalid schedule match", "match_id", item.ID, "error", err)
			continue
		}
		items = append(items, item)
	}

	if err := s.matchRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert schedule matches: %w", err)
	}
	return len(items), nil
}
