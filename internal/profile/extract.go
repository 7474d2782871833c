package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Keyword tables used by the heuristic extractor. They are deliberately
// plain data: hand-curated, English/French-biased, and not exhaustive.
// Adjust them for other locales instead of touching the extraction logic.
var (
	// SkillKeywords are matched case-insensitively against the whole
	// document and reported with their canonical casing.
	SkillKeywords = []string{
		"Python", "Scala", "Java", "TypeScript", "JavaScript",
		"LangChain", "LangGraph", "PyTorch", "TensorFlow", "Keras",
		"FastAPI", "Flask", "Django", "Docker", "Kubernetes",
		"AWS", "GCP", "Azure", "Spark", "Airflow",
		"PostgreSQL", "MongoDB", "Redis", "RAG", "LLM",
	}

	// DomainKeywords map detector substrings to a canonical domain label.
	DomainKeywords = []struct {
		Domain   string
		Triggers []string
	}{
		{"AI", []string{"ai", "machine learning", "llm"}},
		{"Data Engineering", []string{"data engineer", "data science"}},
		{"MLOps", []string{"mlops", "devops"}},
	}

	// LanguageKeywords map spoken languages to their detector substrings.
	LanguageKeywords = []struct {
		Language string
		Triggers []string
	}{
		{"French", []string{"french", "français", "francais"}},
		{"English", []string{"english", "anglais"}},
	}
)

var dateRangeRe = regexp.MustCompile(`(\d{2})/(\d{4})`)

// Load reads a resume markdown file and extracts a Profile from it.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file: %w", err)
	}

	p := Parse(string(data))
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return p, nil
}

// Parse extracts a structured Profile from resume markdown. The extraction
// is heuristic by design: section headings, "key: value" skill lines and
// keyword scans. Fields it cannot find are left at safe defaults so the
// scoring fallbacks apply.
func Parse(text string) *Profile {
	lines := strings.Split(text, "\n")

	p := &Profile{
		Contact:           Contact{Location: "France"},
		PreferredLocation: "France",
	}

	if len(lines) > 0 {
		p.Name = strings.TrimSpace(strings.TrimLeft(lines[0], "# "))
	}

	inSkills := false
	inEducation := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		lower := strings.ToLower(stripped)

		switch {
		case strings.Contains(lower, "skills") || strings.Contains(lower, "domaines"):
			inSkills, inEducation = true, false
			continue
		case strings.Contains(lower, "education") || strings.Contains(lower, "formation"):
			inSkills, inEducation = false, true
			continue
		case strings.Contains(lower, "experience"):
			inSkills, inEducation = false, false
		}

		if inSkills {
			if key, values, ok := splitSkillLine(stripped); ok {
				switch {
				case strings.Contains(key, "domain"):
					p.Domains = appendUnique(p.Domains, values...)
				case strings.Contains(key, "language"),
					strings.Contains(key, "framework"),
					strings.Contains(key, "database"),
					strings.Contains(key, "tool"),
					strings.Contains(key, "cloud"):
					p.Skills = appendUnique(p.Skills, values...)
				}
			}
		}

		if inEducation && (strings.HasPrefix(stripped, "-") || strings.Contains(stripped, ",")) {
			entry := strings.TrimSpace(strings.TrimLeft(stripped, "- "))
			if entry != "" {
				p.Education = append(p.Education, entry)
			}
		}

		if years := yearsFromDateRange(stripped); years > p.YearsOfExperience {
			p.YearsOfExperience = years
		}
	}

	p.Seniority = seniorityForYears(p.YearsOfExperience)

	lowerText := strings.ToLower(text)

	for _, lang := range LanguageKeywords {
		for _, trigger := range lang.Triggers {
			if strings.Contains(lowerText, trigger) {
				p.Languages = appendUnique(p.Languages, lang.Language)
				break
			}
		}
	}

	for _, domain := range DomainKeywords {
		for _, trigger := range domain.Triggers {
			if strings.Contains(lowerText, trigger) {
				p.Domains = appendUnique(p.Domains, domain.Domain)
				break
			}
		}
	}

	for _, keyword := range SkillKeywords {
		if strings.Contains(lowerText, strings.ToLower(keyword)) {
			p.Skills = appendUnique(p.Skills, keyword)
		}
	}

	if strings.Contains(lowerText, "rag") {
		p.Projects = append(p.Projects, "RAG system implementation")
	}
	if strings.Contains(lowerText, "mlops") || strings.Contains(lowerText, "ml pipeline") {
		p.Projects = append(p.Projects, "ML pipeline development")
	}

	if len(p.Education) == 0 {
		p.Education = []string{"Master's degree"}
	}
	if len(p.Projects) == 0 {
		p.Projects = []string{"Various ML/AI projects"}
	}

	return p
}

// splitSkillLine splits a "Key: a, b, c" line into a lowercase key and its
// comma-separated values.
func splitSkillLine(line string) (string, []string, bool) {
	key, rest, found := strings.Cut(line, ":")
	if !found {
		return "", nil, false
	}

	values := make([]string, 0)
	for _, v := range strings.Split(rest, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return strings.ToLower(strings.TrimSpace(key)), values, len(values) > 0
}

// yearsFromDateRange extracts an experience span from lines such as
// "Acme (03/2019 - now)". Only ranges that extend into the present or the
// current year count.
func yearsFromDateRange(line string) int {
	lower := strings.ToLower(line)
	currentYear := time.Now().UTC().Year()

	open := strings.Contains(lower, "now") ||
		strings.Contains(lower, "present") ||
		strings.Contains(line, strconv.Itoa(currentYear)) ||
		strings.Contains(line, strconv.Itoa(currentYear-1))

	if !strings.Contains(line, "(") || !strings.Contains(line, "-") || !open {
		return 0
	}

	match := dateRangeRe.FindStringSubmatch(line)
	if match == nil {
		return 0
	}

	start, err := strconv.Atoi(match[2])
	if err != nil || start > currentYear {
		return 0
	}

	return currentYear - start
}

func seniorityForYears(years int) string {
	switch {
	case years >= 5:
		return "Senior"
	case years >= 3:
		return "Mid"
	default:
		return "Junior"
	}
}

func appendUnique(slice []string, values ...string) []string {
	for _, v := range values {
		exists := false
		for _, existing := range slice {
			if strings.EqualFold(existing, v) {
				exists = true
				break
			}
		}
		if !exists {
			slice = append(slice, v)
		}
	}
	return slice
}
