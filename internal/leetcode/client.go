// Package leetcode fetches a user's solved problems from the LeetCode
// GraphQL API. Transport failures are returned as-is; the usecase layer
// surfaces them to the caller with a clear message.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"prep-pilot/internal/domain/catalog"
	"prep-pilot/internal/domain/solved"
)

const (
	defaultBaseURL = "https://leetcode.com/graphql"
	pageDelay      = time.Second
)

const problemListQuery = `
query problemsetQuestionList($categorySlug: String, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(
    categorySlug: $categorySlug
    skip: $skip
    filters: $filters
  ) {
    total: totalNum
    questions: data {
      acRate
      difficulty
      title
      topicTags {
        name
      }
      status
    }
  }
}`

// Client talks to the LeetCode GraphQL endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger

	// sleep is swapped out in tests to avoid real page delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type questionPayload struct {
	Difficulty string `json:"difficulty"`
	Title      string `json:"title"`
	TopicTags  []struct {
		Name string `json:"name"`
	} `json:"topicTags"`
	Status string `json:"status"`
}

type problemListResponse struct {
	Data struct {
		ProblemsetQuestionList struct {
			Total     int               `json:"total"`
			Questions []questionPayload `json:"questions"`
		} `json:"problemsetQuestionList"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchSolved pages through the problem list and keeps the problems the user
// has accepted submissions for, shaped like catalog rows with a "solved"
// status label.
func (c *Client) FetchSolved(ctx context.Context, username string) (solved.Set, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return solved.Set{}, errors.New("leetcode username is empty")
	}

	var set solved.Set
	skip := 0
	for {
		page, err := c.fetchPage(ctx, username, skip)
		if err != nil {
			return solved.Set{}, err
		}
		if len(page) == 0 {
			break
		}
		for _, q := range page {
			if q.Status != "ac" {
				continue
			}
			topics := make([]string, 0, len(q.TopicTags))
			for _, tag := range q.TopicTags {
				topics = append(topics, strings.ToLower(tag.Name))
			}
			set.Entries = append(set.Entries, solved.Entry{
				Title:      q.Title,
				Difficulty: catalog.ParseDifficulty(q.Difficulty),
				Topics:     topics,
				Status:     "solved",
			})
		}
		skip += len(page)
		if err := c.sleep(ctx, pageDelay); err != nil {
			return solved.Set{}, err
		}
	}

	c.log.Debug("fetched solved problems",
		zap.String("username", username),
		zap.Int("solved", len(set.Entries)),
	)
	return set, nil
}

func (c *Client) fetchPage(ctx context.Context, username string, skip int) ([]questionPayload, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: problemListQuery,
		Variables: map[string]any{
			"categorySlug": "",
			"skip":         skip,
			"filters":      map[string]any{},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode request for %s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("leetcode responded %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out problemListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode leetcode response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("leetcode graphql error: %s", out.Errors[0].Message)
	}
	return out.Data.ProblemsetQuestionList.Questions, nil
}
