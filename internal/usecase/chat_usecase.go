package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"prep-pilot/internal/domain/solved"
	"prep-pilot/internal/recommender"
)

const (
	chatTopN        = 8
	chatOthersSize  = 12
	chatWeakTopK    = 3
	helpReply       = "I can recommend problems - try asking 'Recommend problems' or 'Give me problems to practice'"
)

// ReplyGenerator crafts a conversational reply; nil or disabled generators
// fall back to the templated summary.
type ReplyGenerator interface {
	Enabled() bool
	GenerateReply(ctx context.Context, userMessage string, weakTopics, recTitles []string) (string, error)
}

type ChatInput struct {
	Message          string
	LeetCodeUsername string
	// FileContent is raw CSV text pasted into the chat payload.
	FileContent string
}

type ChatOutput struct {
	Reply       string        `json:"reply"`
	Recommended []ProblemCard `json:"recommended,omitempty"`
	Others      []ProblemCard `json:"others,omitempty"`
}

type Chat struct {
	engine          *recommender.Engine
	fetcher         SolvedFetcher
	history         HistoryRepository
	replies         ReplyGenerator
	minTrainSamples int
	log             *zap.Logger
}

func NewChatUsecase(engine *recommender.Engine, fetcher SolvedFetcher, history HistoryRepository, replies ReplyGenerator, minTrainSamples int, log *zap.Logger) *Chat {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chat{
		engine:          engine,
		fetcher:         fetcher,
		history:         history,
		replies:         replies,
		minTrainSamples: minTrainSamples,
		log:             log,
	}
}

// Chat answers a free-form message. Messages asking for recommendations run
// the recommendation flow and summarize it; everything else gets a short
// help reply.
func (u *Chat) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	set, err := u.resolveChatSolved(ctx, in)
	if err != nil {
		return ChatOutput{}, err
	}

	if !wantsRecommendation(in.Message) {
		return ChatOutput{Reply: helpReply}, nil
	}

	snap, err := u.engine.Snapshot()
	if err != nil {
		return ChatOutput{}, fmt.Errorf("%w: %v", ErrCatalogStale, err)
	}

	history := u.historyFor(in.LeetCodeUsername)

	recs, err := snap.RankWithForest(set, chatTopN, u.minTrainSamples)
	if err != nil {
		recs, err = snap.Rank(set, chatTopN)
		if err != nil {
			return ChatOutput{}, err
		}
	}

	recommended, recTitles := buildCards(recs, history)

	exclude := set.Titles()
	for t := range recTitles {
		exclude[t] = struct{}{}
	}
	for t := range history {
		exclude[t] = struct{}{}
	}
	others := sampleOthers(snap, exclude, chatOthersSize)

	u.persistChatHistory(in.LeetCodeUsername, recTitles)

	weak := snap.WeakTopics(set, chatWeakTopK)
	reply := u.craftReply(ctx, in.Message, weak, recommended)

	return ChatOutput{Reply: reply, Recommended: recommended, Others: others}, nil
}

// resolveChatSolved is laxer than the recommend flow: chat works even with
// no user data at all, it just has nothing personal to go on.
func (u *Chat) resolveChatSolved(ctx context.Context, in ChatInput) (solved.Set, error) {
	if in.LeetCodeUsername != "" {
		set, err := u.fetcher.FetchSolved(ctx, in.LeetCodeUsername)
		if err != nil {
			return solved.Set{}, fmt.Errorf("%w: %v", ErrLeetCodeAPI, err)
		}
		return set, nil
	}
	if in.FileContent != "" {
		set, err := solved.ParseCSV(strings.NewReader(in.FileContent))
		if err != nil {
			u.log.Debug("chat file content unparseable", zap.Error(err))
			return solved.Set{}, nil
		}
		return set, nil
	}
	return solved.Set{}, nil
}

func (u *Chat) historyFor(username string) map[string]struct{} {
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

func (u *Chat) persistChatHistory(username string, titles map[string]struct{}) {
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

func (u *Chat) craftReply(ctx context.Context, message string, weak []recommender.TopicScore, recommended []ProblemCard) string {
	weakTopics := make([]string, 0, len(weak))
	for _, w := range weak {
		weakTopics = append(weakTopics, w.Topic)
	}
	recTitles := make([]string, 0, len(recommended))
	for _, r := range recommended {
		recTitles = append(recTitles, r.Title)
	}

	if u.replies != nil && u.replies.Enabled() {
		reply, err := u.replies.GenerateReply(ctx, message, weakTopics, recTitles)
		if err == nil && reply != "" {
			return reply
		}
		u.log.Warn("llm reply failed, using template", zap.Error(err))
	}

	var b strings.Builder
	if len(weakTopics) > 0 {
		fmt.Fprintf(&b, "Based on your profile I suggest focusing on: %s. ", strings.Join(weakTopics, ", "))
	}
	if len(recTitles) > 0 {
		n := min(3, len(recTitles))
		fmt.Fprintf(&b, "Here are a few problems to start with: %s.", strings.Join(recTitles[:n], ", "))
	}
	if b.Len() == 0 {
		return fmt.Sprintf("Here are %d recommended problems.", len(recommended))
	}
	return strings.TrimSpace(b.String())
}

func wantsRecommendation(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range []string{"recommend", "problems", "practice"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
