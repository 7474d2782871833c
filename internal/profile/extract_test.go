package profile

import (
	"fmt"
	"testing"
	"time"
)

func sampleResume() string {
	startYear := time.Now().UTC().Year() - 6

	return fmt.Sprintf(`# Jane Doe

## Skills
Languages: Python, Scala
Frameworks: FastAPI, Django
Databases: PostgreSQL
Domains: AI, Data Engineering

## Professional Experience
Acme Corp (03/%d - now)
Built RAG pipelines and MLOps tooling for production LLM systems.

## Education
- Master's in Computer Science, Paris

Languages spoken: French, English
`, startYear)
}

func TestParseResume(t *testing.T) {
	p := Parse(sampleResume())

	if p.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", p.Name)
	}

	for _, skill := range []string{"Python", "Scala", "FastAPI", "Django", "PostgreSQL"} {
		if !contains(p.Skills, skill) {
			t.Fatalf("expected skill %q in %v", skill, p.Skills)
		}
	}

	for _, domain := range []string{"AI", "Data Engineering", "MLOps"} {
		if !contains(p.Domains, domain) {
			t.Fatalf("expected domain %q in %v", domain, p.Domains)
		}
	}

	for _, lang := range []string{"French", "English"} {
		if !contains(p.Languages, lang) {
			t.Fatalf("expected language %q in %v", lang, p.Languages)
		}
	}

	if p.YearsOfExperience != 6 {
		t.Fatalf("expected 6 years of experience, got %d", p.YearsOfExperience)
	}
	if p.Seniority != "Senior" {
		t.Fatalf("expected Senior, got %q", p.Seniority)
	}

	if len(p.Education) == 0 || p.Education[0] != "Master's in Computer Science, Paris" {
		t.Fatalf("unexpected education: %v", p.Education)
	}

	if !contains(p.Projects, "RAG system implementation") {
		t.Fatalf("expected RAG project in %v", p.Projects)
	}
}

func TestParseDeduplicatesKeywordSkills(t *testing.T) {
	p := Parse("# Dev\n\n## Skills\nLanguages: Python\n\npython everywhere\n")

	count := 0
	for _, skill := range p.Skills {
		if skill == "Python" || skill == "python" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Python listed once, got %v", p.Skills)
	}
}

func TestParseEmptyResume(t *testing.T) {
	p := Parse("")

	if p.YearsOfExperience != 0 {
		t.Fatalf("expected 0 years, got %d", p.YearsOfExperience)
	}
	if p.Seniority != "Junior" {
		t.Fatalf("expected Junior for no experience, got %q", p.Seniority)
	}
	// Fallback entries keep the scoring inputs non-degenerate.
	if len(p.Education) == 0 || len(p.Projects) == 0 {
		t.Fatalf("expected fallback education and projects")
	}
}

func TestSeniorityForYears(t *testing.T) {
	cases := []struct {
		years int
		want  string
	}{
		{0, "Junior"},
		{2, "Junior"},
		{3, "Mid"},
		{4, "Mid"},
		{5, "Senior"},
		{12, "Senior"},
	}

	for _, tc := range cases {
		if got := seniorityForYears(tc.years); got != tc.want {
			t.Fatalf("seniorityForYears(%d) = %q, want %q", tc.years, got, tc.want)
		}
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
