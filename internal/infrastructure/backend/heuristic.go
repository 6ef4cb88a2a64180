package backend

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

var (
	hateKeywords   = []string{"hate", "nazi", "racist", "racism", "exterminate", "kill all", "kill them", "go back to", "bigot", "discriminat"}
	abuseKeywords  = []string{"stupid", "idiot", "dumb", "suck", "trash", "moron", "ugly", "worthless", "garbage", "shut up", "loser", "pathetic"}
	threatKeywords = []string{"kill yourself", "drop dead", "i will kill", "i'll kill", "go die", "i hope you die", "die", "i will hurt you", "burn in hell", "go to hell"}
)

const (
	hateWeight   = 45
	abuseWeight  = 20
	threatWeight = 70
	baseScore    = 25
)

// HeuristicAnalyzer is the offline keyword classifier. It needs no network.
type HeuristicAnalyzer struct{}

func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

func (h *HeuristicAnalyzer) Name() string {
	return "heuristic"
}

func (h *HeuristicAnalyzer) Endpoint() string {
	return "offline"
}

func (h *HeuristicAnalyzer) Analyze(_ context.Context, text string) (domain.AnalysisResult, error) {
	lower := strings.ToLower(text)

	hate := countMatches(lower, hateKeywords)
	abuse := countMatches(lower, abuseKeywords)
	threat := countMatches(lower, threatKeywords)
	score := hate*hateWeight + abuse*abuseWeight + threat*threatWeight

	classification := domain.ClassificationSafe
	switch {
	case threat > 0:
		classification = domain.ClassificationToxic
	case hate > 0:
		classification = domain.ClassificationHateSpeech
	case abuse > 0:
		classification = domain.ClassificationOffensive
	}

	return domain.AnalysisResult{
		OriginalText:   text,
		Classification: classification,
		Confidence:     math.Min(100, float64(score+baseScore)),
		Emotions:       estimateEmotions(text, classification),
		RewrittenText:  rewrite(text, classification),
		Backend:        h.Name(),
	}, nil
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}

func containsAny(text string, keywords ...string) bool {
	return countMatches(text, keywords) > 0
}

type weightedWords struct {
	words  []string
	weight float64
}

func scoreWords(text string, groups ...weightedWords) float64 {
	var total float64
	for _, g := range groups {
		total += float64(countMatches(text, g.words)) * g.weight
	}
	return total
}

func estimateEmotions(text string, classification domain.Classification) domain.Emotions {
	t := strings.ToLower(text)

	anger := scoreWords(t,
		weightedWords{[]string{"hate", "furious", "enraged", "livid", "seething", "outraged", "infuriated"}, 30},
		weightedWords{[]string{"angry", "mad", "pissed", "annoyed", "irritated", "frustrated", "rage"}, 20},
		weightedWords{[]string{"annoying", "irritating", "bothered", "upset"}, 10},
		weightedWords{[]string{"kill", "destroy", "attack", "fight", "punch", "hit", "smash", "break"}, 25},
		weightedWords{[]string{"idiot", "stupid", "moron", "fool", "dumb", "pathetic", "worthless", "loser"}, 15},
		weightedWords{[]string{"damn", "hell", "crap", "shut up"}, 10},
	)
	if n := utf8.RuneCountInString(text); n > 0 {
		upper := 0
		for _, r := range text {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		switch ratio := float64(upper) / float64(n); {
		case ratio > 0.4:
			anger += 25
		case ratio > 0.2:
			anger += 15
		}
	}
	switch exclaims := strings.Count(text, "!"); {
	case exclaims >= 3:
		anger += 20
	case exclaims == 2:
		anger += 10
	}

	joy := scoreWords(t,
		weightedWords{[]string{"love", "amazing", "fantastic", "wonderful", "excellent", "perfect", "brilliant", "ecstatic", "thrilled"}, 25},
		weightedWords{[]string{"happy", "great", "good", "nice", "pleased", "glad", "excited", "delighted"}, 15},
		weightedWords{[]string{"ok", "fine", "alright", "decent"}, 8},
		weightedWords{[]string{"thank", "appreciate", "grateful", "blessing", "blessed"}, 20},
		weightedWords{[]string{"congrat", "proud", "success", "achieve", "accomplish", "win", "victory"}, 18},
	)
	if containsAny(text, "😊", "😀", "🙂", "😃", "😄", "❤️", "💖", "🎉", "👍", "✨") {
		joy += 20
	}

	sadness := scoreWords(t,
		weightedWords{[]string{"depressed", "miserable", "devastated", "heartbroken", "grief"}, 30},
		weightedWords{[]string{"sad", "unhappy", "upset", "disappointed", "hurt", "pain"}, 20},
		weightedWords{[]string{"unfortunate", "regret", "miss"}, 10},
		weightedWords{[]string{"loss", "lost", "lonely", "alone", "empty", "cry", "tear", "sorrow"}, 22},
	)
	if containsAny(text, "😢", "😭", "☹️", "😔", "💔") {
		sadness += 25
	}

	fear := scoreWords(t,
		weightedWords{[]string{"terrified", "horrified", "panic", "petrified", "nightmare"}, 30},
		weightedWords{[]string{"scared", "afraid", "frightened", "anxious", "worried", "nervous"}, 20},
		weightedWords{[]string{"concerned", "uneasy", "uncertain"}, 10},
		weightedWords{[]string{"threat", "danger", "risk", "warning", "alert", "emergency"}, 25},
	)

	disgust := scoreWords(t,
		weightedWords{[]string{"disgusting", "revolting", "repulsive", "vomit", "puke", "vile"}, 30},
		weightedWords{[]string{"gross", "nasty", "sick", "horrible", "awful", "terrible"}, 20},
		weightedWords{[]string{"unpleasant", "bad", "yuck"}, 10},
	)
	if containsAny(text, "🤢", "🤮", "😷", "🤧") {
		disgust += 25
	}

	switch classification {
	case domain.ClassificationToxic, domain.ClassificationHateSpeech:
		anger += 35
		disgust += 30
		joy -= 40
		fear += 15
	case domain.ClassificationOffensive:
		anger += 25
		disgust += 20
		joy -= 25
	default:
		if joy > 30 || containsAny(t, "love", "thank", "great", "happy", "wonderful") {
			joy += 20
			anger -= 15
			disgust -= 15
			fear -= 10
			sadness -= 10
		} else {
			joy += 10
		}
	}

	return domain.Emotions{
		Anger:   baseline(anger),
		Fear:    baseline(fear),
		Sadness: baseline(sadness),
		Disgust: baseline(disgust),
		Joy:     baseline(joy),
	}
}

// baseline lifts any detected emotion to at least 15 and clamps to 0-100.
func baseline(v float64) float64 {
	if v > 5 {
		v = math.Max(15, v)
	}
	return clampPercent(v)
}

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

var rewriteRules = []replacement{
	{regexp.MustCompile(`(?i)\b(stupid|idiot|dumb|moron|fool)\b`), "mistaken"},
	{regexp.MustCompile(`(?i)\b(trash|garbage|worthless)\b`), "inadequate"},
	{regexp.MustCompile(`(?i)\b(suck|awful|terrible)\b`), "unsatisfactory"},
	{regexp.MustCompile(`(?i)\b(shut up|be quiet)\b`), "please stop"},
	{regexp.MustCompile(`(?i)\b(ugly|hideous)\b`), "unattractive"},
	{regexp.MustCompile(`(?i)\b(loser|failure)\b`), "person"},
	{regexp.MustCompile(`(?i)\b(pathetic)\b`), "unfortunate"},
	{regexp.MustCompile(`(?i)\b(hate|racist|nazi|bigot)\b`), "discriminatory language"},
	{regexp.MustCompile(`(?i)\b(kill yourself|drop dead|go die)\b`), "[threatening language removed]"},
	{regexp.MustCompile(`(?i)\b(i will kill|i'll kill)\b`), "[threatening language removed]"},
	{regexp.MustCompile(`(?i)\b(i hope you die|die)\b`), "[threatening language removed]"},
	{regexp.MustCompile(`(?i)\b(burn in hell|go to hell)\b`), "[threatening language removed]"},
}

func rewrite(text string, classification domain.Classification) string {
	if classification == domain.ClassificationSafe {
		return text
	}

	r := text
	for _, rule := range rewriteRules {
		r = rule.pattern.ReplaceAllString(r, rule.with)
	}
	r = strings.TrimRight(strings.TrimSpace(r), ".")

	prefix := "I would like to express this more constructively: "
	if classification == domain.ClassificationToxic || classification == domain.ClassificationHateSpeech {
		prefix = "I respectfully express my disagreement: "
	}
	return prefix + r + "."
}

var _ ports.Analyzer = (*HeuristicAnalyzer)(nil)
