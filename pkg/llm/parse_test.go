package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain list unchanged",
			input: `[{"title":"test"}]`,
			want:  `[{"title":"test"}]`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n[{\"title\":\"test\"}]\n```",
			want:  `[{"title":"test"}]`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n[]\n```",
			want:  `[]`,
		},
		{
			name:  "extracts list from surrounding prose",
			input: "Here is the result:\n[{\"title\":\"test\"}]\nHope that helps.",
			want:  `[{"title":"test"}]`,
		},
		{
			name:  "extracts bare object from prose",
			input: "Result: {\"title\":\"test\"} done",
			want:  `{"title":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMotionList(t *testing.T) {
	t.Run("empty list means no motion", func(t *testing.T) {
		motions, err := parseMotionList("[]", "RD1.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(motions) != 0 {
			t.Errorf("expected no motions, got %d", len(motions))
		}
	})

	t.Run("single object list", func(t *testing.T) {
		content := `[{"title":"Fee waiver","summary":"Fees waived.","status":"PASSED","category":"budget","impact_tags":["fees"],"full_text":"..."}]`
		motions, err := parseMotionList(content, "RD1.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(motions) != 1 {
			t.Fatalf("expected 1 motion, got %d", len(motions))
		}
		if motions[0].Title != "Fee waiver" || motions[0].Status != "PASSED" {
			t.Errorf("unexpected payload: %+v", motions[0])
		}
	})

	t.Run("bare object accepted", func(t *testing.T) {
		motions, err := parseMotionList(`{"title":"Solo"}`, "RD1.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(motions) != 1 || motions[0].Title != "Solo" {
			t.Errorf("unexpected result: %+v", motions)
		}
	})

	t.Run("malformed element skipped, rest kept", func(t *testing.T) {
		content := `[{"title":"Good"}, "not an object", {"title":"Also good"}]`
		motions, err := parseMotionList(content, "RD1.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(motions) != 2 {
			t.Fatalf("expected 2 motions, got %d", len(motions))
		}
		if motions[0].Title != "Good" || motions[1].Title != "Also good" {
			t.Errorf("unexpected titles: %+v", motions)
		}
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		if _, err := parseMotionList("this is not json", "RD1.1"); err == nil {
			t.Error("expected error for non-JSON response")
		}
	})

	t.Run("string impact_tags preserved for caller coercion", func(t *testing.T) {
		motions, err := parseMotionList(`[{"title":"T","impact_tags":"x"}]`, "RD1.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, ok := motions[0].ImpactTags.(string); !ok || got != "x" {
			t.Errorf("expected raw string tag, got %#v", motions[0].ImpactTags)
		}
	})
}
