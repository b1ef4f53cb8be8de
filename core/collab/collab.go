// Package collab classifies who contributed to a project from its log text.
package collab

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// Options tunes BuildCollaboration.
type Options struct {
	Weights     contract.CollabWeights
	IncludeBots bool   // append bot rows to the CSV export
	MainUser    string // preferred primary contributor when present among humans
}

// DefaultOptions returns options with the default contribution weights.
func DefaultOptions() Options {
	return Options{Weights: contract.DefaultCollabWeights()}
}

// CSVHeader is the header row of the collaboration CSV export.
var CSVHeader = []string{"author", "classification", "score", "reviews", "kind"}

var botTokens = map[string]struct{}{
	"bot":              {},
	"ci":               {},
	"automation":       {},
	"dependabot":       {},
	"renovate":         {},
	"renovate-bot":     {},
	"github-actions":   {},
	"semantic-release": {},
}

var sharedTokens = map[string]struct{}{
	"shared": {},
	"team":   {},
	"pair":   {},
}

// tokenize lowercases s and splits it on anything but letters, digits and '-'.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// IsBot reports whether an author looks automated.
func IsBot(author, email string) bool {
	joined := strings.ToLower(author + " " + email)
	if strings.Contains(joined, "[bot]") {
		return true
	}
	for _, tok := range tokenize(joined) {
		if _, ok := botTokens[tok]; ok {
			return true
		}
		if strings.HasSuffix(tok, "-bot") {
			return true
		}
	}
	return false
}

// IsSharedAccount reports whether an author looks like a shared login.
func IsSharedAccount(author, email string) bool {
	for _, tok := range tokenize(author + " " + email) {
		if _, ok := sharedTokens[tok]; ok {
			return true
		}
	}
	return false
}

// Classify applies the classification rule to contributor counts.
func Classify(humans, bots int) schema.Classification {
	switch {
	case humans == 0 && bots > 0:
		return schema.BotOnlyProject
	case humans == 0:
		return schema.UnknownProject
	case humans == 1:
		return schema.IndividualProject
	default:
		return schema.CollaborativeProject
	}
}

// BuildCollaboration accumulates weighted per-author scores, separates bots
// from humans, and derives classification, primary contributor and CSV export.
func BuildCollaboration(events []schema.ContributionEvent, opts Options) schema.CollaborationSummary {
	summary := schema.CollaborationSummary{
		HumanContributors: make(map[string]float64),
		BotContributors:   make(map[string]float64),
		Contributors:      make(map[string]int),
		Coauthors:         make(map[string][]string),
		ReviewTotals:      make(map[string]int),
		SharedAccounts:    []string{},
	}

	var humanOrder, botOrder []string
	sharedSeen := make(map[string]struct{})

	for _, ev := range events {
		author := strings.TrimSpace(ev.Author)
		if author == "" {
			author = "Unknown"
		}

		if ev.Shared || IsSharedAccount(author, ev.Email) {
			if _, ok := sharedSeen[author]; !ok {
				sharedSeen[author] = struct{}{}
				summary.SharedAccounts = append(summary.SharedAccounts, author)
			}
		}

		weight := float64(ev.Commits)*opts.Weights.Commit +
			float64(ev.Reviews)*opts.Weights.Review +
			float64(ev.Lines)*opts.Weights.Lines

		isBot := IsBot(author, ev.Email)
		if ev.Bot != nil {
			isBot = *ev.Bot
		}

		if isBot {
			if _, ok := summary.BotContributors[author]; !ok {
				botOrder = append(botOrder, author)
			}
			summary.BotContributors[author] += weight
			continue
		}

		if _, ok := summary.HumanContributors[author]; !ok {
			humanOrder = append(humanOrder, author)
			summary.Coauthors[author] = []string{}
		}
		summary.HumanContributors[author] += weight
		summary.Contributors[author] += ev.Commits
		summary.ReviewTotals[author] += ev.Reviews
		for _, name := range ev.Coauthors {
			summary.Coauthors[author] = appendUnique(summary.Coauthors[author], strings.TrimSpace(name))
		}
	}

	normalize(summary.HumanContributors)

	summary.Classification = Classify(len(humanOrder), len(botOrder))
	summary.PrimaryContributor = primaryContributor(summary.HumanContributors, humanOrder, opts.MainUser)
	summary.CSVExport = exportCSV(summary, humanOrder, botOrder, opts.IncludeBots)
	return summary
}

// normalize scales scores so they sum to 1. A zero total is left untouched.
func normalize(scores map[string]float64) {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	if total == 0 {
		return
	}
	for k, v := range scores {
		scores[k] = v / total
	}
}

// primaryContributor prefers mainUser when it is a human contributor,
// otherwise the highest score with ties going to the first encountered.
func primaryContributor(scores map[string]float64, order []string, mainUser string) string {
	if mainUser != "" {
		if _, ok := scores[mainUser]; ok {
			return mainUser
		}
	}
	best := ""
	bestScore := math.Inf(-1)
	for _, author := range order {
		if scores[author] > bestScore {
			best, bestScore = author, scores[author]
		}
	}
	return best
}

// exportCSV renders one row per human, then bots when requested.
func exportCSV(summary schema.CollaborationSummary, humans, bots []string, includeBots bool) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(CSVHeader)

	formatScore := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 4, 64)
	}

	for _, author := range humans {
		_ = w.Write([]string{
			author,
			string(summary.Classification),
			formatScore(summary.HumanContributors[author]),
			strconv.Itoa(summary.ReviewTotals[author]),
			"human",
		})
	}
	if includeBots {
		for _, author := range bots {
			_ = w.Write([]string{
				author,
				string(summary.Classification),
				formatScore(summary.BotContributors[author]),
				"0",
				"bot",
			})
		}
	}
	w.Flush()
	return buf.String()
}

// Concentration returns the Gini coefficient of human commit counts,
// from 0 (evenly shared) to 1 (one person did everything).
func Concentration(contributors map[string]int) float64 {
	values := make([]float64, 0, len(contributors))
	for _, c := range contributors {
		values = append(values, float64(c))
	}
	return gini(values)
}

// gini calculates the Gini coefficient for a set of values.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	if mean == 0 {
		return 0
	}

	var diffSum float64
	for i := range n {
		for j := range n {
			diffSum += math.Abs(values[i] - values[j])
		}
	}

	g := diffSum / (2 * float64(n*n) * mean)
	return math.Min(math.Max(g, 0), 1)
}

func appendUnique(list []string, name string) []string {
	if name == "" {
		return list
	}
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
