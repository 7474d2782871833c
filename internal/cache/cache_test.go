package cache

import (
	"testing"

	"jobmatch/internal/posting"
	"jobmatch/internal/profile"
)

func TestSetAndGetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	original := &profile.Profile{
		Name:              "Test Candidate",
		Contact:           profile.Contact{Email: "test@example.com", Location: "Paris"},
		YearsOfExperience: 5,
		Seniority:         "Senior",
		Skills:            []string{"Python", "Docker"},
		PreferredLocation: "Paris",
	}

	if err := c.Set("resume_resume.md", "resume", original); err != nil {
		t.Fatalf("set: %v", err)
	}

	var restored profile.Profile
	found, err := c.Get("resume_resume.md", "resume", &restored)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected cache hit")
	}

	if restored.Name != original.Name {
		t.Fatalf("expected name %q, got %q", original.Name, restored.Name)
	}
	if restored.YearsOfExperience != 5 {
		t.Fatalf("expected 5 years, got %d", restored.YearsOfExperience)
	}
	if len(restored.Skills) != 2 || restored.Skills[0] != "Python" {
		t.Fatalf("unexpected skills: %v", restored.Skills)
	}
	if restored.Contact.Location != "Paris" {
		t.Fatalf("unexpected contact location: %q", restored.Contact.Location)
	}
}

func TestGetMiss(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	var out posting.Posting
	found, err := c.Get("nope", "job", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected cache miss")
	}
}

func TestExists(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	if c.Exists("key", "job") {
		t.Fatalf("did not expect entry before set")
	}

	if err := c.Set("key", "job", &posting.Posting{ID: "job1"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if !c.Exists("key", "job") {
		t.Fatalf("expected entry after set")
	}
}

func TestClearByPrefix(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	if err := c.Set("a", "job", &posting.Posting{ID: "a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set("b", "resume", &profile.Profile{Name: "b"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := c.Clear("job"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if c.Exists("a", "job") {
		t.Fatalf("expected job entry to be cleared")
	}
	if !c.Exists("b", "resume") {
		t.Fatalf("expected resume entry to survive a prefixed clear")
	}

	if err := c.Clear(""); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if c.Exists("b", "resume") {
		t.Fatalf("expected full clear to remove everything")
	}
}

func TestKeys(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	for _, key := range []string{"job_one", "job_two"} {
		if err := c.Set(key, "job", &posting.Posting{ID: key}); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	keys, err := c.Keys("job")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}
