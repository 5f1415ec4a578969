package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/links"
	"prep-pilot/internal/recommender"
)

const (
	defaultTopN      = 12
	othersSampleSize = 20
	othersSampleSeed = 42
	morePoolSize     = 200
	defaultPageSize  = 12
)

var (
	ErrNoUserData   = errors.New("no file uploaded and no leetcode username provided")
	ErrLeetCodeAPI  = errors.New("leetcode api error")
	ErrCatalogStale = errors.New("system data load error")
)

// SolvedFetcher pulls a user's accepted submissions from LeetCode.
type SolvedFetcher interface {
	FetchSolved(ctx context.Context, username string) (solved.Set, error)
}

// HistoryRepository tracks which titles each user was already recommended.
type HistoryRepository interface {
	Get(userID string) (map[string]struct{}, error)
	Update(userID string, titles []string) error
}

// ProblemCard is one problem as rendered in API responses. Score is only
// meaningful on ranked recommendations.
type ProblemCard struct {
	Title       string  `json:"title"`
	Difficulty  string  `json:"difficulty"`
	TopicTags   string  `json:"topic_tags"`
	Company     string  `json:"company"`
	Score       float64 `json:"score,omitempty"`
	GfgLink     string  `json:"gfg_link"`
	StriverLink string  `json:"striver_link"`
}

type RecommendInput struct {
	LeetCodeUsername string
	// Upload is the parsed CSV upload; nil when the username path is used.
	Upload *solved.Set
}

type MoreInput struct {
	LeetCodeUsername string
	Upload           *solved.Set
	Seen             []string
	PageSize         int
}

type RecommendOutput struct {
	Recommended []ProblemCard `json:"recommended"`
	Others      []ProblemCard `json:"others"`
}

type Recommend struct {
	engine          *recommender.Engine
	fetcher         SolvedFetcher
	history         HistoryRepository
	minTrainSamples int
	log             *zap.Logger
}

func NewRecommendUsecase(engine *recommender.Engine, fetcher SolvedFetcher, history HistoryRepository, minTrainSamples int, log *zap.Logger) *Recommend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommend{
		engine:          engine,
		fetcher:         fetcher,
		history:         history,
		minTrainSamples: minTrainSamples,
		log:             log,
	}
}

// Recommend ranks unsolved problems for the user, preferring the per-request
// forest re-ranker and falling back to plain similarity when there is not
// enough labeled data. Alongside the ranked list it returns a deterministic
// sample of other catalog problems the user has not touched.
func (u *Recommend) Recommend(ctx context.Context, in RecommendInput) (RecommendOutput, error) {
	set, err := u.resolveSolved(ctx, in.LeetCodeUsername, in.Upload)
	if err != nil {
		return RecommendOutput{}, err
	}

	snap, err := u.engine.Snapshot()
	if err != nil {
		return RecommendOutput{}, fmt.Errorf("%w: %v", ErrCatalogStale, err)
	}

	history := u.historyFor(in.LeetCodeUsername)

	recs, err := snap.RankWithForest(set, defaultTopN, u.minTrainSamples)
	if err != nil {
		u.log.Debug("forest re-rank unavailable, using similarity", zap.Error(err))
		recs, err = snap.Rank(set, defaultTopN)
		if err != nil {
			return RecommendOutput{}, err
		}
	}

	recommended, recTitles := buildCards(recs, history)

	exclude := set.Titles()
	for t := range recTitles {
		exclude[t] = struct{}{}
	}
	others := sampleOthers(snap, exclude, othersSampleSize)

	u.persistHistory(in.LeetCodeUsername, recTitles)

	return RecommendOutput{Recommended: recommended, Others: others}, nil
}

// More pages through a larger similarity pool, skipping titles the client
// already has on screen plus everything in the user's history and solved set.
func (u *Recommend) More(ctx context.Context, in MoreInput) ([]ProblemCard, error) {
	set, err := u.resolveSolved(ctx, in.LeetCodeUsername, in.Upload)
	if err != nil {
		return nil, err
	}

	snap, err := u.engine.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogStale, err)
	}

	pool, err := snap.Rank(set, morePoolSize)
	if err != nil {
		return nil, err
	}

	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	skip := u.historyFor(in.LeetCodeUsername)
	for _, s := range in.Seen {
		if t := catalog.NormalizeTitle(s); t != "" {
			skip[t] = struct{}{}
		}
	}
	for t := range set.Titles() {
		skip[t] = struct{}{}
	}

	filtered := make([]ProblemCard, 0, pageSize)
	titles := make([]string, 0, pageSize)
	for _, sc := range pool {
		norm := catalog.NormalizeTitle(sc.Row.Title)
		if norm == "" {
			continue
		}
		if _, ok := skip[norm]; ok {
			continue
		}
		filtered = append(filtered, cardFromRow(sc.Row, sc.Score))
		titles = append(titles, sc.Row.Title)
		if len(filtered) >= pageSize {
			break
		}
	}

	if len(titles) > 0 {
		u.persistHistory(in.LeetCodeUsername, titlesToSet(titles))
	}

	return filtered, nil
}

func (u *Recommend) resolveSolved(ctx context.Context, username string, upload *solved.Set) (solved.Set, error) {
	return resolveSolvedWith(ctx, u.fetcher, username, upload)
}

func (u *Recommend) historyFor(username string) map[string]struct{} {
	if username == "" {
		return map[string]struct{}{}
	}
	h, err := u.history.Get(username)
	if err != nil {
		u.log.Warn("history read failed", zap.String("user", username), zap.Error(err))
		return map[string]struct{}{}
	}
	return h
}

// persistHistory is best-effort: a failed write never fails the request.
func (u *Recommend) persistHistory(username string, titles map[string]struct{}) {
	if username == "" || len(titles) == 0 {
		return
	}
	flat := make([]string, 0, len(titles))
	for t := range titles {
		flat = append(flat, t)
	}
	if err := u.history.Update(username, flat); err != nil {
		u.log.Warn("history write failed", zap.String("user", username), zap.Error(err))
	}
}

func buildCards(recs []recommender.Scored, history map[string]struct{}) ([]ProblemCard, map[string]struct{}) {
	cards := make([]ProblemCard, 0, len(recs))
	titles := make(map[string]struct{}, len(recs))
	for _, sc := range recs {
		norm := catalog.NormalizeTitle(sc.Row.Title)
		if _, ok := history[norm]; ok {
			continue
		}
		titles[norm] = struct{}{}
		cards = append(cards, cardFromRow(sc.Row, sc.Score))
	}
	return cards, titles
}

func cardFromRow(row catalog.Row, score float64) ProblemCard {
	card := ProblemCard{
		Title:      row.Title,
		Difficulty: row.Difficulty.String(),
		TopicTags:  catalog.JoinTopics(row.Topics),
		Company:    row.Company,
		Score:      score,
	}
	if len(row.Topics) > 0 {
		card.GfgLink = links.GeeksForGeeks(row.Topics[0])
		card.StriverLink = links.StriverSearch(row.Topics[0])
	}
	return card
}

// sampleOthers draws a fixed-seed sample of catalog rows outside the
// excluded set, so repeated identical requests return the same problems.
func sampleOthers(snap *recommender.Snapshot, exclude map[string]struct{}, n int) []ProblemCard {
	candidates := make([]catalog.Row, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		if _, ok := exclude[catalog.NormalizeTitle(row.Title)]; ok {
			continue
		}
		candidates = append(candidates, row)
	}
	if len(candidates) == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(othersSampleSeed))
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	cards := make([]ProblemCard, 0, n)
	for _, row := range candidates[:n] {
		cards = append(cards, cardFromRow(row, 0))
	}
	return cards
}

func titlesToSet(titles []string) map[string]struct{} {
	out := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		out[catalog.NormalizeTitle(t)] = struct{}{}
	}
	return out
}
