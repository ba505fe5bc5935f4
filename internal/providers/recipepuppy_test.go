package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const recipePuppyFixture = `{
  "title": "Recipe Puppy",
  "results": [
    {
      "title": "Onion Soup  \n",
      "href": "http://example.com/onion-soup",
      "ingredients": "onions, beef broth, butter",
      "thumbnail": "http://img.recipepuppy.com/1.jpg"
    },
    {
      "title": "",
      "href": "http://example.com/empty",
      "ingredients": "",
      "thumbnail": ""
    }
  ]
}`

func TestRecipePuppy_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "onion" {
			t.Errorf("query param q = %q, want onion", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recipePuppyFixture))
	}))
	defer srv.Close()

	p := NewRecipePuppy(srv.URL, 2*time.Second)
	recipes, err := p.Search(context.Background(), "onion")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("recipes = %d, want 1 (untitled result skipped)", len(recipes))
	}

	r := recipes[0]
	if r.Title != "Onion Soup" {
		t.Errorf("Title = %q, want trimmed 'Onion Soup'", r.Title)
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("ingredients = %d, want 3", len(r.Ingredients))
	}
	if r.Ingredients[1].Name != "beef broth" {
		t.Errorf("ingredient = %q, want 'beef broth'", r.Ingredients[1].Name)
	}
	if r.ReadyInMinutes != 25 {
		t.Errorf("estimated cook time = %d, want 10 + 5*3 = 25", r.ReadyInMinutes)
	}
	if r.Image != "http://img.recipepuppy.com/1.jpg" {
		t.Errorf("Image = %q", r.Image)
	}
}

func TestRecipePuppy_StableIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recipePuppyFixture))
	}))
	defer srv.Close()

	p := NewRecipePuppy(srv.URL, 2*time.Second)
	first, err := p.Search(context.Background(), "onion")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	second, err := p.Search(context.Background(), "onion")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if first[0].ID != second[0].ID {
		t.Errorf("IDs differ across fetches: %q vs %q", first[0].ID, second[0].ID)
	}
}
