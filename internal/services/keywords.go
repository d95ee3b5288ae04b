package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// DefaultKeywordLimit is the number of keywords attached to a summary
const DefaultKeywordLimit = 10

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
	"this": true, "that": true, "these": true, "those": true, "i": true, "you": true,
	"he": true, "she": true, "it": true, "we": true, "they": true, "my": true,
	"your": true, "his": true, "her": true, "its": true, "our": true, "their": true,
	"page": true, "pdf": true,
}

// skipTags are POS tags that never carry topic words
var skipTags = map[string]bool{
	"DT":   true, // determiner
	"IN":   true, // preposition
	"TO":   true,
	"CC":   true, // coordinating conjunction
	"PRP":  true,
	"PRP$": true,
	"WP":   true,
	"WDT":  true,
	"MD":   true, // modal
}

var tagWeights = map[string]float64{
	"NN":   1.5,
	"NNS":  1.5,
	"NNP":  2.0,
	"NNPS": 2.0,
	"VB":   1.2,
	"VBD":  1.2,
	"VBG":  1.2,
	"VBN":  1.2,
	"VBP":  1.2,
	"VBZ":  1.2,
	"JJ":   1.3,
	"JJR":  1.3,
	"JJS":  1.3,
	"RB":   0.8,
	"RBR":  0.8,
	"RBS":  0.8,
}

// Keyword is a scored term of a document
type Keyword struct {
	Word      string  `json:"word"`
	Frequency int     `json:"frequency"`
	Score     float64 `json:"score"`
}

// KeywordExtractor ranks the salient terms of a text using POS tagging
// and named entity recognition.
type KeywordExtractor struct {
	minLength int
}

// NewKeywordExtractor creates a new keyword extractor
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{minLength: 3}
}

// Extract returns every candidate keyword of text, highest score first.
// Ties are broken alphabetically so results are stable.
func (ke *KeywordExtractor) Extract(text string) ([]Keyword, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	terms := make(map[string]*Keyword)

	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if ke.skip(word, tok.Tag) {
			continue
		}
		weight, ok := tagWeights[tok.Tag]
		if !ok {
			weight = 1.0
		}
		if kw, exists := terms[word]; exists {
			kw.Frequency++
			kw.Score += weight
		} else {
			terms[word] = &Keyword{Word: word, Frequency: 1, Score: weight}
		}
	}

	// named entities get a flat boost
	for _, ent := range doc.Entities() {
		word := strings.ToLower(ent.Text)
		if len(word) < ke.minLength || stopWords[word] {
			continue
		}
		if kw, exists := terms[word]; exists {
			kw.Score += 2.0
		} else {
			terms[word] = &Keyword{Word: word, Frequency: 1, Score: 2.0}
		}
	}

	keywords := make([]Keyword, 0, len(terms))
	for _, kw := range terms {
		kw.Score *= float64(kw.Frequency)
		keywords = append(keywords, *kw)
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Score != keywords[j].Score {
			return keywords[i].Score > keywords[j].Score
		}
		return keywords[i].Word < keywords[j].Word
	})

	return keywords, nil
}

// Top returns at most limit keyword strings of text
func (ke *KeywordExtractor) Top(text string, limit int) ([]string, error) {
	keywords, err := ke.Extract(text)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	words := make([]string, len(keywords))
	for i, kw := range keywords {
		words[i] = kw.Word
	}
	return words, nil
}

func (ke *KeywordExtractor) skip(word, tag string) bool {
	if len(word) < ke.minLength || stopWords[word] || skipTags[tag] {
		return true
	}
	return isNumeric(word) || isPunctuation(word)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return len(s) > 0
}

func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return len(s) > 0
}
