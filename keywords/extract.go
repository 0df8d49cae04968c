package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxKeywords caps extraction output when no limit is configured.
const DefaultMaxKeywords = 16

// Source carries the raw text inputs of one pin. Any field may be empty;
// extraction over an all-empty source returns no keywords.
type Source struct {
	Title       string
	Description string
	Boards      []string // board names, low-confidence context
	Filename    string   // media filename, extension already stripped by the caller
	Hashtags    []string // user-supplied tags, stored with a leading '#'

	// Linked-page metadata and extracted image text, weakest context.
	PageTitle       string
	PageDescription string
	ImageText       string
}

// clean drops single-rune tokens and stopwords.
func clean(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if utf8.RuneCountInString(t) > 1 && !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}

// ngrams returns the order-preserving sliding-window n-grams of tokens,
// joined with single spaces. No wraparound.
func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// scoreTerms accumulates a weight per distinct term or phrase. The weights
// encode source confidence: title over description, phrases over singles,
// early tokens over late ones.
func scoreTerms(src Source) map[string]float64 {
	tClean := clean(Tokenize(src.Title))
	dClean := clean(Tokenize(src.Description))
	bClean := clean(Tokenize(strings.Join(src.Boards, " ")))
	fClean := clean(Tokenize(src.Filename))
	pClean := clean(Tokenize(src.PageTitle + " " + src.PageDescription))
	iClean := clean(Tokenize(src.ImageText))

	hClean := make([]string, 0, len(src.Hashtags))
	for _, h := range src.Hashtags {
		if n := Normalize(h); n != "" && utf8.RuneCountInString(n) > 1 && !IsStopword(n) {
			hClean = append(hClean, n)
		}
	}

	scores := make(map[string]float64)
	bump := func(term string, w float64) {
		if term == "" {
			return
		}
		scores[term] += w
	}

	// singles
	for i, tok := range tClean {
		bump(tok, 4+max0(3-i))
	}
	for i, tok := range dClean {
		bump(tok, 2+max0(2-i))
	}
	for _, tok := range bClean {
		bump(tok, 2)
	}
	for _, tok := range fClean {
		bump(tok, 1)
	}
	for _, tok := range pClean {
		bump(tok, 2)
	}
	for _, tok := range iClean {
		bump(tok, 1)
	}
	for _, tok := range hClean {
		if !strings.HasPrefix(tok, "#") {
			tok = "#" + tok
		}
		bump(tok, 3)
	}

	// phrases from title and description
	for i, p := range ngrams(tClean, 2) {
		bump(p, 6+max0(2-i))
	}
	for i, p := range ngrams(tClean, 3) {
		bump(p, 7+max0(1-i))
	}
	for i, p := range ngrams(dClean, 2) {
		bump(p, 3+max0(1-i))
	}
	for _, p := range ngrams(dClean, 3) {
		bump(p, 4)
	}

	// cross-source bonus for terms present in both title and description
	inDesc := make(map[string]bool, len(dClean))
	for _, tok := range dClean {
		inDesc[tok] = true
	}
	seen := make(map[string]bool, len(tClean))
	for _, tok := range tClean {
		if inDesc[tok] && !seen[tok] {
			bump(tok, 2)
			seen[tok] = true
		}
	}

	return scores
}

func max0(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}

// rankAndClamp orders scored terms and applies the selection rules: score
// descending, phrases before singles on ties, lexicographic last. A single
// token is dropped when an already-selected term contains it, so a generic
// single never rides alongside its more specific phrase.
func rankAndClamp(scores map[string]float64, maxKeywords int) []string {
	type entry struct {
		term   string
		score  float64
		phrase bool
	}

	entries := make([]entry, 0, len(scores))
	for term, score := range scores {
		entries = append(entries, entry{term: term, score: score, phrase: strings.Contains(term, " ")})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		if entries[i].phrase != entries[j].phrase {
			return entries[i].phrase
		}
		return entries[i].term < entries[j].term
	})

	picked := make([]string, 0, maxKeywords)
	for _, e := range entries {
		if !e.phrase {
			blocked := false
			for _, p := range picked {
				if strings.Contains(p, e.term) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
		}
		picked = append(picked, e.term)
		if len(picked) >= maxKeywords {
			break
		}
	}
	return picked
}

// Extract produces the ranked, deduplicated keyword set for one pin. It
// never fails; an all-empty source yields an empty slice.
func Extract(src Source, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	if src.Title == "" && src.Description == "" && len(src.Boards) == 0 &&
		src.Filename == "" && len(src.Hashtags) == 0 &&
		src.PageTitle == "" && src.PageDescription == "" && src.ImageText == "" {
		return []string{}
	}
	return rankAndClamp(scoreTerms(src), maxKeywords)
}

// QueryTerms normalizes a free-text search query into ledger-ready keywords:
// tokenized, stopwords and single-rune tokens dropped.
func QueryTerms(query string) []string {
	return clean(Tokenize(query))
}
