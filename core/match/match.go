// Package match compares job postings with the skills stored in project snapshots.
package match

import (
	"regexp"
	"slices"
	"strings"

	"github.com/folioscope/folio/core/skills"
	"github.com/folioscope/folio/schema"
)

// keywordSet is one named entry of a keyword table with its compiled phrases.
type keywordSet struct {
	name     string
	patterns []*regexp.Regexp
}

// phrasePattern matches phrase as a whole word. A trailing '+' or '#' is
// part of the word so "c" does not match "c++" or "c#".
func phrasePattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\pL\pN])` + regexp.QuoteMeta(phrase) + `(?:$|[^\pL\pN+#])`)
}

func compile(table map[string][]string) []keywordSet {
	sets := make([]keywordSet, 0, len(table))
	for name, phrases := range table {
		set := keywordSet{name: name}
		for _, p := range phrases {
			set.patterns = append(set.patterns, phrasePattern(p))
		}
		sets = append(sets, set)
	}
	slices.SortFunc(sets, func(a, b keywordSet) int { return strings.Compare(a.name, b.name) })
	return sets
}

var (
	jobSkillSets     = compile(jobSkillKeywords)
	companyValueSets = compile(companyValueKeywords)
	workStyleSets    = compile(workStyleKeywords)
	softSkillSets    = compile(softSkillKeywords)
)

// extract returns the sorted names whose phrases occur in text.
func extract(text string, sets []keywordSet) []string {
	found := []string{}
	for _, set := range sets {
		for _, re := range set.patterns {
			if re.MatchString(text) {
				found = append(found, set.name)
				break
			}
		}
	}
	return found
}

// ExtractJobSkills returns the skills a job posting mentions, sorted by name.
func ExtractJobSkills(text string) []string {
	return extract(text, jobSkillSets)
}

// ExtractCompanyQualities reads values, work style, soft skills and preferred
// skills from a posting or company description.
func ExtractCompanyQualities(text, companyName string) schema.CompanyQualities {
	return schema.CompanyQualities{
		CompanyName:     strings.TrimSpace(companyName),
		Values:          extract(text, companyValueSets),
		WorkStyle:       extract(text, workStyleSets),
		SoftSkills:      extract(text, softSkillSets),
		PreferredSkills: ExtractJobSkills(text),
	}
}

// skillKey is the case-insensitive name a project skill is compared under.
func skillKey(name string) string {
	if alias, ok := projectSkillAliases[name]; ok {
		name = alias
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// MatchSkills splits jobSkills into those the project shows with at least
// minConfidence and those it does not. Matched scores keep the project's order.
func MatchSkills(jobSkills []string, projectSkills []schema.SkillScore, minConfidence float64) (matched []schema.SkillScore, missing []string) {
	wanted := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		wanted[skillKey(s)] = struct{}{}
	}

	matched = []schema.SkillScore{}
	covered := make(map[string]struct{})
	for _, s := range skills.DropUnderThreshold(projectSkills, minConfidence) {
		key := skillKey(s.Skill)
		if _, ok := wanted[key]; !ok {
			continue
		}
		if _, dup := covered[key]; dup {
			continue
		}
		covered[key] = struct{}{}
		matched = append(matched, s)
	}

	missing = []string{}
	for _, s := range jobSkills {
		if _, ok := covered[skillKey(s)]; !ok {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// MatchJob scores a posting against one stored snapshot.
func MatchJob(text, companyName string, rec schema.SnapshotRecord, minConfidence float64) schema.JobMatch {
	jobSkills := ExtractJobSkills(text)
	matched, missing := MatchSkills(jobSkills, rec.Snapshot.Skills, minConfidence)

	m := schema.JobMatch{
		ProjectID: rec.ProjectID,
		JobSkills: jobSkills,
		Matched:   matched,
		Missing:   missing,
		Company:   ExtractCompanyQualities(text, companyName),
	}
	if len(jobSkills) > 0 {
		m.Coverage = float64(len(matched)) / float64(len(jobSkills))
	}
	m.Snippet = ResumeSnippet(m)
	return m
}
