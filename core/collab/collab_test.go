package collab

import (
	"strings"
	"testing"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func commit(author, email string) schema.ContributionEvent {
	return schema.ContributionEvent{Author: author, Email: email, Commits: 1}
}

func TestIsBot(t *testing.T) {
	tests := []struct {
		author, email string
		want          bool
	}{
		{"dependabot[bot]", "support@github.com", true},
		{"github-actions", "actions@github.com", true},
		{"release-bot", "rel@example.com", true},
		{"CI Runner", "ci@example.com", true},
		{"Automation", "noreply@example.com", true},
		{"Alice", "alice@example.com", false},
		{"Abbott", "abbott@example.com", false},
		{"Cinderella", "cinder@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.author, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBot(tt.author, tt.email))
		})
	}
}

func TestIsSharedAccount(t *testing.T) {
	assert.True(t, IsSharedAccount("Platform Team", "platform@example.com"))
	assert.True(t, IsSharedAccount("dev", "pair@example.com"))
	assert.False(t, IsSharedAccount("Teamwork Tim", "tim@example.com"))
}

func TestClassificationRules(t *testing.T) {
	bot := commit("renovate[bot]", "bot@renovate.com")

	tests := []struct {
		name   string
		events []schema.ContributionEvent
		want   schema.Classification
	}{
		{"no contributors", nil, schema.UnknownProject},
		{"one human plus bots", []schema.ContributionEvent{commit("Alice", "a@x.io"), bot, bot}, schema.IndividualProject},
		{"two humans", []schema.ContributionEvent{commit("Alice", "a@x.io"), commit("Bob", "b@x.io")}, schema.CollaborativeProject},
		{"only bots", []schema.ContributionEvent{bot}, schema.BotOnlyProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := BuildCollaboration(tt.events, DefaultOptions())
			assert.Equal(t, tt.want, summary.Classification)
		})
	}
}

func TestBuildCollaborationScoring(t *testing.T) {
	events := []schema.ContributionEvent{
		{Author: "Alice", Email: "a@x.io", Commits: 2, Reviews: 2, Lines: 1000, Coauthors: []string{"Bob", "Carol", "Bob"}},
		{Author: "Bob", Email: "b@x.io", Commits: 1},
		{Author: "Alice", Email: "a@x.io", Commits: 1, Coauthors: []string{"Carol", "Dan"}},
		{Author: "Helper", Email: "helper@x.io", Commits: 5, Bot: boolPtr(true)},
	}

	summary := BuildCollaboration(events, DefaultOptions())

	// Alice: 3 commits + 2*0.5 + 1000*0.001 = 5; Bob: 1
	assert.InDelta(t, 5.0/6.0, summary.HumanContributors["Alice"], 1e-9)
	assert.InDelta(t, 1.0/6.0, summary.HumanContributors["Bob"], 1e-9)
	assert.InDelta(t, 5.0, summary.BotContributors["Helper"], 1e-9)
	assert.Equal(t, map[string]int{"Alice": 3, "Bob": 1}, summary.Contributors)
	assert.Equal(t, []string{"Bob", "Carol", "Dan"}, summary.Coauthors["Alice"])
	assert.Equal(t, []string{}, summary.Coauthors["Bob"])
	assert.Equal(t, 2, summary.ReviewTotals["Alice"])
	assert.Equal(t, "Alice", summary.PrimaryContributor)
	assert.Equal(t, schema.CollaborativeProject, summary.Classification)
}

func TestBuildCollaborationBotOverride(t *testing.T) {
	events := []schema.ContributionEvent{
		{Author: "ci-helper", Email: "ci@x.io", Commits: 1, Bot: boolPtr(false)},
	}
	summary := BuildCollaboration(events, DefaultOptions())
	assert.Equal(t, schema.IndividualProject, summary.Classification)
	assert.Contains(t, summary.HumanContributors, "ci-helper")
}

func TestPrimaryContributor(t *testing.T) {
	events := []schema.ContributionEvent{commit("Bob", "b@x.io"), commit("Alice", "a@x.io")}

	t.Run("ties go to first encountered", func(t *testing.T) {
		assert.Equal(t, "Bob", BuildCollaboration(events, DefaultOptions()).PrimaryContributor)
	})

	t.Run("main user preferred", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MainUser = "Alice"
		assert.Equal(t, "Alice", BuildCollaboration(events, opts).PrimaryContributor)
	})

	t.Run("main user absent falls back", func(t *testing.T) {
		opts := DefaultOptions()
		opts.MainUser = "Zed"
		assert.Equal(t, "Bob", BuildCollaboration(events, opts).PrimaryContributor)
	})
}

func TestBuildCollaborationZeroScores(t *testing.T) {
	events := []schema.ContributionEvent{{Author: "Alice", Email: "a@x.io"}}
	summary := BuildCollaboration(events, DefaultOptions())
	assert.Zero(t, summary.HumanContributors["Alice"])
	assert.Equal(t, "Alice", summary.PrimaryContributor)
}

func TestSharedAccountsFlagged(t *testing.T) {
	events := []schema.ContributionEvent{
		commit("Platform Team", "platform@x.io"),
		{Author: "Ops", Email: "ops@x.io", Commits: 1, Shared: true},
		commit("Platform Team", "platform@x.io"),
	}
	summary := BuildCollaboration(events, DefaultOptions())
	assert.Equal(t, []string{"Platform Team", "Ops"}, summary.SharedAccounts)
	assert.Equal(t, schema.CollaborativeProject, summary.Classification)
}

func TestCSVExport(t *testing.T) {
	events := []schema.ContributionEvent{
		commit("Alice", "a@x.io"),
		commit("dependabot[bot]", "bot@github.com"),
	}

	summary := BuildCollaboration(events, DefaultOptions())
	lines := strings.Split(strings.TrimSpace(summary.CSVExport), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "author,classification,score,reviews,kind", lines[0])
	assert.Equal(t, "Alice,individual,1.0000,0,human", lines[1])

	opts := DefaultOptions()
	opts.IncludeBots = true
	summary = BuildCollaboration(events, opts)
	lines = strings.Split(strings.TrimSpace(summary.CSVExport), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "dependabot[bot],individual,1.0000,0,bot", lines[2])
}

func TestConcentration(t *testing.T) {
	assert.InDelta(t, 0.0, Concentration(nil), 1e-9)
	assert.InDelta(t, 0.0, Concentration(map[string]int{"a": 3, "b": 3}), 1e-9)
	assert.InDelta(t, 0.75, Concentration(map[string]int{"a": 0, "b": 0, "c": 0, "d": 10}), 1e-9)
	assert.InDelta(t, 0.25, Concentration(map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}), 1e-9)
}
