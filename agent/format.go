package agent

import (
	"fmt"
	"sort"
	"strings"
)

// bookkeeping keys skipped by the generic crypto key/value dump.
var bookkeepingKeys = map[string]bool{
	"query":   true,
	"source":  true,
	"success": true,
}

// generalFields are the recognized list-valued fields of a knowledge-base
// entry, rendered in this order when present.
var generalFields = []struct {
	key   string
	label string
	sep   string
}{
	{"applications", "Key Applications", ", "},
	{"examples", "Examples", ", "},
	{"types", "Types", ", "},
	{"libraries", "Popular Libraries/Tools", ", "},
	{"use_cases", "Use Cases", ", "},
	{"layers", "Components", ", "},
	{"process", "Process Steps", " -> "},
}

// Analyze turns a connector's structured data into a readable report. It
// is a pure function of its inputs; map keys are rendered in sorted order
// so repeated calls produce identical output.
func Analyze(data map[string]any, task ParsedTask) string {
	if len(data) == 0 {
		return "No data to analyze"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Research findings for %s:\n\n", task.Topic)

	switch task.Category {
	case CategoryCrypto:
		formatCrypto(&b, data)
	case CategoryNews:
		formatNews(&b, data)
	case CategoryGeneral:
		formatGeneral(&b, data)
	default:
		b.Reset()
		fmt.Fprintf(&b, "Research findings for %s:\n%v\n", task.Topic, data)
	}

	return b.String()
}

func formatCrypto(b *strings.Builder, data map[string]any) {
	if results, ok := data["results"].(map[string]any); ok {
		fmt.Fprintf(b, "%s Information:\n", stringField(results, "symbol", ""))
		fmt.Fprintf(b, "Current Price: %s\n", stringField(results, "price", "N/A"))
		fmt.Fprintf(b, "24h Change: %s\n", stringField(results, "change", "N/A"))
		fmt.Fprintf(b, "Market Cap: %s\n", stringField(results, "market_cap", "N/A"))
		return
	}

	for _, key := range sortedKeys(data) {
		if bookkeepingKeys[key] {
			continue
		}
		fmt.Fprintf(b, "%s: %v\n", strings.ToUpper(key), data[key])
	}
}

func formatNews(b *strings.Builder, data map[string]any) {
	for i, article := range articleList(data["articles"]) {
		fmt.Fprintf(b, "Article %d: %s\n", i+1, stringField(article, "title", "N/A"))
		fmt.Fprintf(b, "Content: %s\n", stringField(article, "content", "N/A"))
		fmt.Fprintf(b, "Source: %s\n", stringField(article, "source", "N/A"))
		fmt.Fprintf(b, "Date: %s\n\n", stringField(article, "date", "N/A"))
	}
}

func formatGeneral(b *strings.Builder, data map[string]any) {
	info, ok := data["info"].(map[string]any)
	if !ok {
		return
	}

	fmt.Fprintf(b, "**%s**\n\n", stringField(info, "title", "Information"))
	fmt.Fprintf(b, "%s\n\n", stringField(info, "description", ""))

	for _, field := range generalFields {
		if values, ok := info[field.key]; ok {
			fmt.Fprintf(b, "%s: %s\n", field.label, joinList(values, field.sep))
		}
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return fallback
}

// articleList accepts both decoded-JSON ([]any) and native
// ([]map[string]any) article slices.
func articleList(v any) []map[string]any {
	switch articles := v.(type) {
	case []map[string]any:
		return articles
	case []any:
		out := make([]map[string]any, 0, len(articles))
		for _, a := range articles {
			if m, ok := a.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func joinList(v any, sep string) string {
	switch items := v.(type) {
	case []string:
		return strings.Join(items, sep)
	case []any:
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
