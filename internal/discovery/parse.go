package discovery

import (
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/goccy/go-json"
	hjson "github.com/hjson/hjson-go/v4"
)

// extractJSON returns the span from the first open delimiter to the last close
// delimiter. Models often wrap the payload in prose or markdown fences.
func extractJSON(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}

	end := strings.LastIndexByte(text, close)
	if end < start {
		// unterminated; json-repair closes it
		return text[start:], true
	}

	return text[start : end+1], true
}

// decodeLenient tries a repaired strict decode first and Hjson second.
func decodeLenient(raw string, v any) error {
	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	return ErrUnparseableResponse
}

func parseObject(text string, v any) error {
	raw, ok := extractJSON(text, '{', '}')
	if !ok {
		return ErrUnparseableResponse
	}
	return decodeLenient(raw, v)
}

func parseArray(text string, v any) error {
	raw, ok := extractJSON(text, '[', ']')
	if !ok {
		return ErrUnparseableResponse
	}
	return decodeLenient(raw, v)
}
