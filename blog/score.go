package blog

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ScoreFormat selects the output layout requested from the scoring model.
type ScoreFormat string

const (
	// ScoreFormatJSON asks for {"blog_index": {"total_score": N, "criteria": [...]}}.
	ScoreFormatJSON ScoreFormat = "json"

	// ScoreFormatText asks for "Criterion N: X/10" lines and a "Total: N/100" line.
	ScoreFormatText ScoreFormat = "text"
)

// ParseScoreFormat converts a config string to a ScoreFormat.
func ParseScoreFormat(s string) (ScoreFormat, bool) {
	switch ScoreFormat(strings.ToLower(strings.TrimSpace(s))) {
	case ScoreFormatJSON, "":
		return ScoreFormatJSON, true
	case ScoreFormatText:
		return ScoreFormatText, true
	}
	return "", false
}

const blogIndexSchema = `{
  "type": "object",
  "required": ["blog_index"],
  "properties": {
    "blog_index": {
      "type": "object",
      "required": ["total_score"],
      "properties": {
        "total_score": {"type": "number"},
        "criteria": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "score": {"type": "number", "minimum": 0, "maximum": 10}
            }
          }
        }
      }
    }
  }
}`

var blogIndexSchemaLoader = gojsonschema.NewStringLoader(blogIndexSchema)

var (
	fencedJSON   = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(\\{.*?\\})\\s*```")
	totalLine    = regexp.MustCompile(`(?im)^\W*total(?:\s+score)?\W*(\d{1,3})(?:\.\d+)?\s*/\s*100`)
	criterionRow = regexp.MustCompile(`(?im)^\W*criterion\s+\d+\s*[:.)-]?.*?(\d{1,2})(?:\.\d+)?\s*/\s*10\b`)
)

type blogIndex struct {
	BlogIndex struct {
		TotalScore float64 `json:"total_score"`
	} `json:"blog_index"`
}

// ParseScore extracts a 0-100 quality score from a scoring response. It
// tries, in order: a fenced JSON block, each JSON object embedded in the
// text, a "Total: N/100" line and the sum of "Criterion N: X/10" lines. JSON
// candidates must match the blog_index schema. The result is clamped to
// [0,100]; ok is false when nothing matched and the score is 0.
func ParseScore(text string) (score int, ok bool) {
	for _, candidate := range jsonCandidates(text) {
		if v, valid := scoreFromJSON(candidate); valid {
			return clampScore(v), true
		}
	}

	if m := totalLine.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return clampScore(float64(n)), true
	}

	rows := criterionRow.FindAllStringSubmatch(text, -1)
	if len(rows) > 0 {
		sum := 0
		for _, m := range rows {
			n, _ := strconv.Atoi(m[1])
			if n > 10 {
				n = 10
			}
			sum += n
		}
		return clampScore(float64(sum)), true
	}
	return 0, false
}

// jsonCandidates returns the fenced block, then every complete JSON object
// in order of appearance. Decoding stops at the end of each object, so
// stray braces in surrounding prose do not spoil it.
func jsonCandidates(text string) []string {
	var out []string
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		out = append(out, m[1])
	}
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '{')
		if j < 0 {
			break
		}
		i += j
		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		if err := dec.Decode(&raw); err != nil {
			i++
			continue
		}
		out = append(out, string(raw))
		i += int(dec.InputOffset())
	}
	return out
}

func scoreFromJSON(doc string) (float64, bool) {
	result, err := gojsonschema.Validate(blogIndexSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil || !result.Valid() {
		return 0, false
	}
	var idx blogIndex
	if err := json.Unmarshal([]byte(doc), &idx); err != nil {
		return 0, false
	}
	return idx.BlogIndex.TotalScore, true
}

func clampScore(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v + 0.5)
}
