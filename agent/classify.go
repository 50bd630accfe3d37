package agent

import "strings"

// Category routes a task to a connector family.
type Category string

const (
	CategoryCrypto  Category = "crypto"
	CategoryNews    Category = "news"
	CategoryGeneral Category = "general"
)

// ParsedTask is the normalized form of a free-text request. Topic is
// always the original input; Query is the search term handed to the
// connector.
type ParsedTask struct {
	Topic    string   `json:"topic"`
	Query    string   `json:"query"`
	Category Category `json:"category"`
}

// Keyword lists evaluated in priority order: crypto before news before the
// general fallback. First match wins; there is no scoring.
var (
	cryptoKeywords = []string{"bitcoin", "btc", "crypto"}
	newsKeywords   = []string{"news", "article"}
)

// Classify maps a free-text task to a ParsedTask. A crypto match pins the
// query to the canonical asset name; a news match keeps the original text
// as the query, as does the general fallback.
func Classify(task string) (ParsedTask, error) {
	if task == "" {
		return ParsedTask{}, &ParseError{Task: task}
	}

	lower := strings.ToLower(task)

	if containsAny(lower, cryptoKeywords) {
		return ParsedTask{Topic: task, Query: "bitcoin", Category: CategoryCrypto}, nil
	}
	if containsAny(lower, newsKeywords) {
		return ParsedTask{Topic: task, Query: task, Category: CategoryNews}, nil
	}
	return ParsedTask{Topic: task, Query: task, Category: CategoryGeneral}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
