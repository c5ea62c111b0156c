package repository

import "testing"

func TestParseSkillBlob_JSONArray(t *testing.T) {
	entries, err := parseSkillBlob(`["Python", "SQL", ""]`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Label != "Python" || entries[1].Label != "SQL" {
		t.Fatalf("unexpected labels: %+v", entries)
	}
	if entries[0].Years != 0 {
		t.Fatalf("legacy entries carry no years, got %v", entries[0].Years)
	}
}

func TestParseSkillBlob_CommaSeparated(t *testing.T) {
	entries, err := parseSkillBlob(" Python , SQL ,, Docker ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Label != "Docker" {
		t.Fatalf("expected trimmed Docker, got %q", entries[2].Label)
	}
}

func TestParseSkillBlob_MalformedJSON(t *testing.T) {
	if _, err := parseSkillBlob(`[{"not": "a string"}]`); err == nil {
		t.Fatalf("expected parse error for non-string array")
	}
}

func TestParseSkillBlob_Empty(t *testing.T) {
	entries, err := parseSkillBlob("   ")
	if err != nil || entries != nil {
		t.Fatalf("blank blob should be a no-op, got %+v %v", entries, err)
	}
}
