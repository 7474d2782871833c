// Package scoring turns a candidate profile and a job posting into a
// bounded, explainable match score. Five independent sub-scores sum to a
// total in [0,100]:
//
//	skill match          0-40
//	experience alignment 0-30
//	seniority fit        0-10
//	location & language  0-10
//	semantic alignment   0-10
//
// Every sub-score has a documented fallback for degenerate input, so the
// engine never fails on well-typed records.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobmatch/internal/embedding"
	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
)

// Likelihood labels derived from the total score.
const (
	LikelihoodHigh   = "High"
	LikelihoodMedium = "Medium"
	LikelihoodLow    = "Low"
)

// Breakdown holds the five bounded sub-scores. The total score is always
// their sum.
type Breakdown struct {
	SkillMatch          float64 `json:"skill_match"`
	ExperienceAlignment float64 `json:"experience_alignment"`
	SeniorityFit        float64 `json:"seniority_fit"`
	LocationLanguage    float64 `json:"location_language"`
	SemanticAlignment   float64 `json:"semantic_alignment"`
}

// Engine computes match scores. It holds no per-candidate state; a single
// engine can score any number of candidate/job pairs.
type Engine struct {
	embeddings *embedding.Generator
	lexicon    Lexicon
	logger     *zap.Logger
}

// New creates an Engine. A nil generator gets the default dimension; an
// empty lexicon gets the built-in tables.
func New(gen *embedding.Generator, lexicon Lexicon, logger *zap.Logger) *Engine {
	if gen == nil {
		gen = embedding.New(embedding.DefaultDimension)
	}
	if len(lexicon.Seniority) == 0 {
		lexicon = DefaultLexicon()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{embeddings: gen, lexicon: lexicon, logger: logger}
}

// Score computes the total score, the per-criterion breakdown and the
// matched/missing skill lists for one candidate/job pair. Matched skills
// keep the candidate's input order, missing skills the job's requirement
// order, so output is fully deterministic.
func (e *Engine) Score(p *profile.Profile, j *posting.Posting) (float64, Breakdown, []string, []string) {
	skill, matched, missing := e.SkillMatch(p, j)

	b := Breakdown{
		SkillMatch:          round2(skill),
		ExperienceAlignment: round2(e.ExperienceAlignment(p, j)),
		SeniorityFit:        round2(e.SeniorityFit(p, j)),
		LocationLanguage:    round2(e.LocationLanguageFit(p, j)),
		SemanticAlignment:   round2(e.SemanticAlignment(p, j)),
	}

	total := round2(b.SkillMatch + b.ExperienceAlignment + b.SeniorityFit + b.LocationLanguage + b.SemanticAlignment)

	e.logger.Debug("scored job",
		zap.String("job_id", j.ID),
		zap.Float64("total", total),
	)

	return total, b, matched, missing
}

// Likelihood maps a total score to a categorical success likelihood. The
// lower bounds are inclusive.
func Likelihood(total float64) string {
	switch {
	case total >= 75:
		return LikelihoodHigh
	case total >= 55:
		return LikelihoodMedium
	default:
		return LikelihoodLow
	}
}

// SkillMatch scores skill coverage in [0,40]: up to 35 points for required
// skills, up to 5 bonus points for nice-to-haves. With no requirements the
// score falls back to overlap against the requirements/nice-to-have union
// scaled to 35, or a neutral 30 when the job lists no skills at all.
func (e *Engine) SkillMatch(p *profile.Profile, j *posting.Posting) (float64, []string, []string) {
	skills := foldSet(p.Skills)
	requirements := foldSet(j.Requirements)
	niceToHave := foldSet(j.NiceToHave)

	matchedRequired := intersect(skills, requirements)
	matchedNice := intersect(skills, niceToHave)

	var score float64
	if len(requirements) == 0 {
		union := make(map[string]struct{}, len(requirements)+len(niceToHave))
		for k := range requirements {
			union[k] = struct{}{}
		}
		for k := range niceToHave {
			union[k] = struct{}{}
		}
		if len(union) == 0 {
			return 30.0, nil, nil
		}
		score = float64(len(intersect(skills, union))) / float64(len(union)) * 35
	} else {
		score = float64(len(matchedRequired)) / float64(len(requirements)) * 35
	}

	if len(niceToHave) > 0 {
		score += float64(len(matchedNice)) / float64(len(niceToHave)) * 5
	}

	score = math.Min(score, 40.0)

	matched := make([]string, 0, len(matchedRequired)+len(matchedNice))
	for _, skill := range p.Skills {
		folded := fold(skill)
		if _, ok := matchedRequired[folded]; ok {
			matched = append(matched, skill)
			continue
		}
		if _, ok := matchedNice[folded]; ok {
			matched = append(matched, skill)
		}
	}

	missing := make([]string, 0, len(requirements))
	seen := make(map[string]struct{}, len(requirements))
	for _, req := range j.Requirements {
		folded := fold(req)
		if _, ok := skills[folded]; ok {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		missing = append(missing, req)
	}

	return score, matched, missing
}

// ExperienceAlignment scores domain and years-of-experience alignment in
// [0,30]: up to 15 points for the fraction of candidate domains mentioned in
// the job text, up to 15 points for closeness to the required years figure
// (a neutral 10 when the job names no figure).
func (e *Engine) ExperienceAlignment(p *profile.Profile, j *posting.Posting) float64 {
	var score float64

	jobText := fold(j.Title + " " + j.Responsibilities + " " + strings.Join(j.Requirements, " "))

	if len(p.Domains) > 0 {
		matches := 0
		counted := make(map[string]struct{}, len(p.Domains))
		for _, domain := range p.Domains {
			folded := fold(domain)
			if _, dup := counted[folded]; dup {
				continue
			}
			counted[folded] = struct{}{}
			if strings.Contains(jobText, folded) {
				matches++
			}
		}
		score += float64(matches) / float64(len(counted)) * 15
	}

	if required := ExtractYears(strings.Join(j.Requirements, " ")); required > 0 {
		switch diff := abs(p.YearsOfExperience - required); {
		case diff == 0:
			score += 15
		case diff <= 2:
			score += 12
		case diff <= 5:
			score += 8
		default:
			score += 5
		}
	} else {
		score += 10
	}

	return math.Min(score, 30.0)
}

// SeniorityFit scores ordinal seniority distance in [0,10]. The job level
// comes from its seniority field first, then from the first lexicon keyword
// found in title+requirements; lexicon order breaks ties.
func (e *Engine) SeniorityFit(p *profile.Profile, j *posting.Posting) float64 {
	candidateLevel := e.lexicon.levelFor(fold(p.Seniority))

	jobSeniority := fold(j.Seniority)
	jobText := fold(j.Title + " " + strings.Join(j.Requirements, " "))

	jobLevel := e.lexicon.DefaultLevel
	for _, entry := range e.lexicon.Seniority {
		if strings.Contains(jobSeniority, entry.Keyword) || strings.Contains(jobText, entry.Keyword) {
			jobLevel = entry.Level
			break
		}
	}

	switch abs(candidateLevel - jobLevel) {
	case 0:
		return 10.0
	case 1:
		return 7.0
	case 2:
		return 4.0
	default:
		return 2.0
	}
}

// LocationLanguageFit scores location and spoken-language fit in [0,10],
// five points each. Location: mutual substring match 5, remote-friendly 4,
// otherwise 2. Language: a detected French or English requirement scores 5
// when the candidate lists it (1 or 2 when not); no detected requirement
// scores a neutral 4.
func (e *Engine) LocationLanguageFit(p *profile.Profile, j *posting.Posting) float64 {
	var score float64

	jobLocation := fold(j.Location)
	preferred := fold(p.PreferredLocation)
	if preferred == "" {
		preferred = fold(p.Contact.Location)
	}

	switch {
	case strings.Contains(jobLocation, preferred) || strings.Contains(preferred, jobLocation):
		score += 5
	case containsAny(jobLocation, e.lexicon.RemoteHints):
		score += 4
	default:
		score += 2
	}

	languages := foldSet(p.Languages)
	jobText := fold(j.Title + " " + j.Responsibilities + " " + strings.Join(j.Requirements, " "))

	switch {
	case containsAny(jobText, e.lexicon.FrenchHints):
		if hasAny(languages, e.lexicon.FrenchHints) {
			score += 5
		} else {
			score += 1
		}
	case containsAny(jobText, e.lexicon.EnglishHints):
		if hasAny(languages, e.lexicon.EnglishHints) {
			score += 5
		} else {
			score += 2
		}
	default:
		score += 4
	}

	return math.Min(score, 10.0)
}

// SemanticAlignment scores pseudo-embedding similarity between the
// candidate summary (skills, domains, projects) and the job summary (title,
// responsibilities, requirements) in [0,10]. Negative similarities floor
// at zero.
func (e *Engine) SemanticAlignment(p *profile.Profile, j *posting.Posting) float64 {
	candidateText := strings.Join(p.Skills, " ") + " " +
		strings.Join(p.Domains, " ") + " " +
		strings.Join(p.Projects, " ")

	jobText := j.Title + " " + j.Responsibilities + " " + strings.Join(j.Requirements, " ")

	score := e.embeddings.Similarity(candidateText, jobText) * 10

	return math.Max(0.0, math.Min(score, 10.0))
}

// The range pattern comes first so "3-5 years" yields its lower bound
// instead of the second number.
var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*-\s*\d+\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?`),
}

// ExtractYears pulls a required-years figure out of free text, recognizing
// forms like "5 years", "3+ years" and "3-5 years". The first match of the
// first matching pattern wins; ranges yield their lower bound. Returns 0
// when no figure is found.
func ExtractYears(text string) int {
	lower := strings.ToLower(text)

	for _, pattern := range yearsPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return years
	}

	return 0
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[fold(v)] = struct{}{}
	}
	return set
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func containsAny(text string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(text, hint) {
			return true
		}
	}
	return false
}

func hasAny(set map[string]struct{}, hints []string) bool {
	for _, hint := range hints {
		if _, ok := set[hint]; ok {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
