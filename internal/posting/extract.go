package posting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const defaultContract = "Full-time"

type section int

const (
	sectionNone section = iota
	sectionResponsibilities
	sectionRequirements
	sectionNiceToHave
)

// Load reads a job posting markdown file and extracts a Posting from it.
// The posting ID is the file stem.
func Load(path string) (*Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return Parse(id, string(data)), nil
}

// LoadDir parses every markdown file in dir, sorted by filename so posting
// order is stable. Files that fail to read are skipped with a warning; one
// bad file must not abort the batch.
func LoadDir(dir string, logger *zap.Logger) ([]*Posting, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading jobs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	postings := make([]*Posting, 0, len(names))
	for _, name := range names {
		p, err := Load(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable job file",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}
		postings = append(postings, p)
	}

	return postings, nil
}

// Parse extracts a structured Posting from job markdown: the first heading
// becomes the title, bold "**Company**:"-style lines fill the header fields,
// and "## Responsibilities", "## Requirements", "## Nice to Have" headings
// open list sections.
func Parse(id, text string) *Posting {
	p := &Posting{
		ID:       id,
		Contract: defaultContract,
		Raw:      text,
	}

	var responsibilities strings.Builder
	current := sectionNone

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		lower := strings.ToLower(stripped)

		if strings.HasPrefix(stripped, "#") && p.Title == "" {
			p.Title = strings.TrimSpace(strings.TrimLeft(stripped, "# "))
			continue
		}

		if value, ok := headerField(stripped, lower, "**company"); ok {
			p.Company = value
			continue
		}
		if value, ok := headerField(stripped, lower, "**location"); ok {
			p.Location = value
			continue
		}
		if value, ok := headerField(stripped, lower, "**contract"); ok {
			if value != "" {
				p.Contract = value
			}
			continue
		}

		switch {
		case strings.Contains(lower, "## responsibilities") || strings.Contains(lower, "## description"):
			current = sectionResponsibilities
			continue
		case strings.Contains(lower, "## requirements") || strings.Contains(lower, "## qualifications"):
			current = sectionRequirements
			continue
		case strings.Contains(lower, "## nice to have") || strings.Contains(lower, "## preferred") || strings.Contains(lower, "## benefits"):
			current = sectionNiceToHave
			continue
		}

		switch current {
		case sectionResponsibilities:
			if stripped != "" && !strings.HasPrefix(stripped, "##") {
				responsibilities.WriteString(stripped)
				responsibilities.WriteString(" ")
			}
		case sectionRequirements:
			p.Requirements = append(p.Requirements, listItems(stripped)...)
		case sectionNiceToHave:
			if item, ok := bulletItem(stripped); ok {
				p.NiceToHave = append(p.NiceToHave, item)
			}
		}
	}

	p.Responsibilities = strings.TrimSpace(responsibilities.String())
	p.Seniority = detectSeniority(p.Title, p.Requirements)

	return p
}

func headerField(stripped, lower, prefix string) (string, bool) {
	if !strings.HasPrefix(lower, prefix) {
		return "", false
	}
	_, value, found := strings.Cut(stripped, ":")
	if !found {
		return "", true
	}
	return strings.TrimSpace(value), true
}

func bulletItem(stripped string) (string, bool) {
	if !strings.HasPrefix(stripped, "-") {
		return "", false
	}
	item := strings.TrimSpace(strings.TrimLeft(stripped, "- "))
	return item, item != ""
}

// listItems handles both bullet lists and prose requirement lines; the
// latter are split on sentence boundaries.
func listItems(stripped string) []string {
	if item, ok := bulletItem(stripped); ok {
		return []string{item}
	}

	if stripped == "" || strings.HasPrefix(stripped, "##") || !strings.Contains(stripped, ".") {
		return nil
	}

	items := make([]string, 0)
	for _, part := range strings.Split(stripped, ".") {
		if part = strings.TrimSpace(part); len(part) > 3 {
			items = append(items, part)
		}
	}
	return items
}

func detectSeniority(title string, requirements []string) string {
	titleLower := strings.ToLower(title)
	reqText := strings.ToLower(strings.Join(requirements, " "))

	switch {
	case strings.Contains(titleLower, "senior") || strings.Contains(titleLower, "lead"):
		return "Senior"
	case strings.Contains(titleLower, "junior"):
		return "Junior"
	case strings.Contains(reqText, "5+") || strings.Contains(reqText, "5 years"):
		return "Senior"
	case strings.Contains(reqText, "3+") || strings.Contains(reqText, "3 years"):
		return "Mid"
	default:
		return "Mid"
	}
}
