package blog

import (
	"fmt"
	"strings"

	"blog_analyzer/pkg"

	"github.com/bytedance/sonic"
)

type rawDetails struct {
	Title     string `json:"title"`
	Topics    any    `json:"topics"`
	Sentiment string `json:"sentiment"`
}

// ParseDetails converts a model answer into an extraction result.
// An answer that is not a JSON object is an error; a well formed answer without
// usable topics or sentiment is an InvalidExtraction.
func ParseDetails(content string) (pkg.ExtractionResult, error) {
	body, err := jsonObject(content)
	if err != nil {
		return nil, err
	}

	var raw rawDetails
	if err := sonic.UnmarshalString(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse details response: %w", err)
	}

	sentiment := strings.ToLower(strings.TrimSpace(raw.Sentiment))
	if strings.EqualFold(sentiment, InvalidMarker) {
		return pkg.InvalidExtraction{Reason: "sentiment marked invalid"}, nil
	}
	if !pkg.Sentiment(sentiment).Valid() {
		return pkg.InvalidExtraction{Reason: fmt.Sprintf("unknown sentiment %q", raw.Sentiment)}, nil
	}

	var topics []string
	switch t := raw.Topics.(type) {
	case string:
		return pkg.InvalidExtraction{Reason: "topics marked invalid"}, nil
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				topics = append(topics, s)
			}
		}
	}
	if len(topics) == 0 {
		return pkg.InvalidExtraction{Reason: "no topics"}, nil
	}

	return pkg.ValidExtraction{
		Title:     strings.TrimSpace(raw.Title),
		Topics:    topics,
		Sentiment: pkg.Sentiment(sentiment),
	}, nil
}

// jsonObject strips code fences and surrounding prose from a model answer
func jsonObject(content string) (string, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object in details response: %q", truncate(content, 200))
	}
	return s[start : end+1], nil
}

// truncate keeps at most n bytes of s, cut on a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut] + "..."
}
