package contentgen

import "testing"

func TestExtractJSON_CleanArray(t *testing.T) {
	got, err := extractJSON(`[1,2,3]`, BracketArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[1,2,3]` {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestExtractJSON_CodeFencedWithProse(t *testing.T) {
	text := "Sure! Here are your questions:\n```json\n[{\"prompt\":\"What is 2+2?\"}]\n```\nLet me know if you need more."
	got, err := extractJSON(text, BracketArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `[{"prompt":"What is 2+2?"}]` {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestExtractJSON_NestedBrackets(t *testing.T) {
	text := `noise {"questions":[{"options":["a","b"]}]} trailing`
	got, err := extractJSON(text, BracketObject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"questions":[{"options":["a","b"]}]}` {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	text := `{"prompt":"Which set is {1, 2}?","note":"]"}`
	got, err := extractJSON(text, BracketObject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != text {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestExtractJSON_NoPayload(t *testing.T) {
	if _, err := extractJSON("no JSON here at all", BracketArray); err == nil {
		t.Fatal("expected error for missing payload")
	}
}

func TestExtractJSON_UnbalancedPayload(t *testing.T) {
	if _, err := extractJSON(`[{"prompt":"truncated"`, BracketArray); err == nil {
		t.Fatal("expected error for unbalanced payload")
	}
}
