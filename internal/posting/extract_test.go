package posting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const sampleJobMarkdown = `# Senior Python Developer

**Company**: Test Corp
**Location**: Paris, France
**Contract**: Full-time

## Responsibilities
Design and build Python services for our data platform.
Operate production deployments.

## Requirements
- Python
- Docker
- 5+ years experience

## Nice to Have
- AWS
`

func TestParseJobMarkdown(t *testing.T) {
	job := Parse("senior_python", sampleJobMarkdown)

	if job.ID != "senior_python" {
		t.Fatalf("unexpected id: %s", job.ID)
	}
	if job.Title != "Senior Python Developer" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if job.Company != "Test Corp" {
		t.Fatalf("unexpected company: %q", job.Company)
	}
	if job.Location != "Paris, France" {
		t.Fatalf("unexpected location: %q", job.Location)
	}
	if job.Contract != "Full-time" {
		t.Fatalf("unexpected contract: %q", job.Contract)
	}

	if len(job.Requirements) != 3 || job.Requirements[2] != "5+ years experience" {
		t.Fatalf("unexpected requirements: %v", job.Requirements)
	}
	if len(job.NiceToHave) != 1 || job.NiceToHave[0] != "AWS" {
		t.Fatalf("unexpected nice-to-have: %v", job.NiceToHave)
	}

	if job.Responsibilities == "" {
		t.Fatalf("expected responsibilities to be captured")
	}
	if job.Seniority != "Senior" {
		t.Fatalf("unexpected seniority: %q", job.Seniority)
	}
	if job.Raw != sampleJobMarkdown {
		t.Fatalf("raw text should carry the full source")
	}
}

func TestParseProseRequirements(t *testing.T) {
	text := `# Developer

## Requirements
Solid Python experience. Comfort with Docker. CI.
`

	job := Parse("prose", text)

	// Fragments of three characters or fewer are dropped.
	if len(job.Requirements) != 2 {
		t.Fatalf("unexpected requirements: %v", job.Requirements)
	}
	if job.Requirements[0] != "Solid Python experience" {
		t.Fatalf("unexpected first requirement: %q", job.Requirements[0])
	}
}

func TestParseDefaults(t *testing.T) {
	job := Parse("bare", "# Mystery Role\n")

	if job.Contract != "Full-time" {
		t.Fatalf("expected default contract, got %q", job.Contract)
	}
	if job.Seniority != "Mid" {
		t.Fatalf("expected default seniority Mid, got %q", job.Seniority)
	}
	if len(job.Requirements) != 0 {
		t.Fatalf("expected no requirements, got %v", job.Requirements)
	}
}

func TestDetectSeniorityFromRequirements(t *testing.T) {
	text := `# Backend Developer

## Requirements
- 5+ years building services
`

	if job := Parse("x", text); job.Seniority != "Senior" {
		t.Fatalf("expected Senior from years requirement, got %q", job.Seniority)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"b_role.md":  "# Role B\n",
		"a_role.md":  "# Role A\n",
		"readme.txt": "not a job",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	postings, err := LoadDir(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}
	// Sorted by filename, with the stem as the id.
	if postings[0].ID != "a_role" || postings[1].ID != "b_role" {
		t.Fatalf("unexpected order: %s, %s", postings[0].ID, postings[1].ID)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope"), zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
