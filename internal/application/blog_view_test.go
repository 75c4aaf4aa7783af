package application

import (
	"context"
	"errors"
	"testing"
)

func TestBlogListView_Load(t *testing.T) {
	t.Run("keeps only published entries in order", func(t *testing.T) {
		source := &blogSourceStub{blogs: []Blog{
			{ID: 1, Title: "Spa week", IsPublished: true, Image: "https://cdn.example.com/spa.jpg"},
			{ID: 2, Title: "Draft", IsPublished: false},
			{ID: 3, Title: "Rooftop dining", IsPublished: true},
		}}
		view := NewBlogListView(context.Background(), source, nil)
		defer view.Close()

		view.Load(context.Background())

		snapshot := view.Snapshot()
		if snapshot.Loading || snapshot.Empty() {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
		if len(snapshot.Cards) != 2 || snapshot.Cards[0].ID != 1 || snapshot.Cards[1].ID != 3 {
			t.Fatalf("unexpected cards %+v", snapshot.Cards)
		}
		if snapshot.Cards[0].ImageURL != "https://cdn.example.com/spa.jpg" {
			t.Fatalf("expected the stored image, got %q", snapshot.Cards[0].ImageURL)
		}
		if snapshot.Cards[1].ImageURL != PlaceholderImage("Rooftop dining") {
			t.Fatalf("expected a placeholder image, got %q", snapshot.Cards[1].ImageURL)
		}
	})

	t.Run("nothing published is the empty state", func(t *testing.T) {
		view := NewBlogListView(context.Background(), &blogSourceStub{blogs: []Blog{{ID: 1, IsPublished: false}}}, nil)
		defer view.Close()

		view.Load(context.Background())

		if !view.Snapshot().Empty() {
			t.Fatalf("expected the empty state")
		}
	})

	t.Run("fetch failure settles empty", func(t *testing.T) {
		view := NewBlogListView(context.Background(), &blogSourceStub{err: errors.New("timeout")}, nil)
		defer view.Close()

		view.Load(context.Background())

		if !view.Snapshot().Empty() {
			t.Fatalf("expected the empty state after a failure")
		}
	})
}

func TestPublishedOnly(t *testing.T) {
	if got := PublishedOnly(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", got)
	}
}
