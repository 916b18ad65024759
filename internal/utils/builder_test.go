package querybuilder_test

import (
	"reflect"
	"testing"

	querybuilder "github.com/Diploma-Survivors/vibe-match-workbench/internal/utils"
)

func TestBuildSelectWithFilterOrderAndLimit(t *testing.T) {
	query, args := querybuilder.New().
		Select("id", "status", "score").
		From("submissions").
		Where("problem_id = ?", "p1").
		OrderBy("submitted_at", false).
		Limit(20).
		Build()

	want := "SELECT id, status, score FROM submissions WHERE problem_id = $1 ORDER BY submitted_at DESC LIMIT $2"
	if query != want {
		t.Fatalf("query mismatch:\n got %s\nwant %s", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"p1", 20}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestBuildSelectWithoutConditions(t *testing.T) {
	query, args := querybuilder.New().
		Select("id").
		From("submissions").
		OrderBy("submitted_at", true).
		Build()

	want := "SELECT id FROM submissions ORDER BY submitted_at ASC"
	if query != want {
		t.Fatalf("query mismatch: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildInsert(t *testing.T) {
	query, args := querybuilder.New().
		Into("submissions").
		Insert("id", "problem_id", "score").
		Values("s1", "p1", 100.0).
		Build()

	want := "INSERT INTO submissions (id, problem_id, score) VALUES ($1, $2, $3)"
	if query != want {
		t.Fatalf("query mismatch: %s", query)
	}
	if !reflect.DeepEqual(args, []interface{}{"s1", "p1", 100.0}) {
		t.Fatalf("args mismatch: %v", args)
	}
}
