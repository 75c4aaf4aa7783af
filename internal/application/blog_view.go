package application

import (
	"context"
	"log/slog"
	"sync"
)

// BlogCard is one published story ready to render.
type BlogCard struct {
	Blog
	ImageURL string
}

// BlogListSnapshot is the renderable state of the blog listing.
type BlogListSnapshot struct {
	Loading bool
	Cards   []BlogCard
}

// Empty reports whether the listing has settled with nothing to show.
func (s BlogListSnapshot) Empty() bool {
	return !s.Loading && len(s.Cards) == 0
}

// BlogListView shows the published stories. Unpublished entries returned by
// the API are dropped here.
type BlogListView struct {
	source BlogSource
	logger *slog.Logger
	life   lifetime

	mu      sync.Mutex
	loading bool
	blogs   []Blog
}

// NewBlogListView binds a view to parent.
func NewBlogListView(parent context.Context, source BlogSource, logger *slog.Logger) *BlogListView {
	return &BlogListView{
		source:  source,
		logger:  defaultLogger(logger),
		life:    newLifetime(parent),
		loading: true,
	}
}

// Close cancels in-flight requests.
func (v *BlogListView) Close() {
	if v == nil {
		return
	}
	v.life.close()
}

// Load fetches every entry and keeps the published ones.
func (v *BlogListView) Load(ctx context.Context) {
	if v == nil {
		return
	}
	logger := viewLogger(ctx, v.logger, "blog_list", "load")
	defer func() {
		v.mu.Lock()
		v.loading = false
		v.mu.Unlock()
	}()
	if v.source == nil || v.life.stale(ctx) {
		return
	}

	bound, release := v.life.bind(ctx)
	blogs, err := v.source.ListBlogs(bound)
	release()

	if v.life.stale(ctx) {
		logger.DebugContext(ctx, "discarding blogs for closed view")
		return
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to load blogs", "error", err, "error_kind", ErrorKind(err))
		return
	}

	v.mu.Lock()
	v.blogs = PublishedOnly(blogs)
	v.mu.Unlock()
}

// PublishedOnly returns the entries flagged as published, in order.
func PublishedOnly(blogs []Blog) []Blog {
	out := make([]Blog, 0, len(blogs))
	for _, blog := range blogs {
		if blog.IsPublished {
			out = append(out, blog)
		}
	}
	return out
}

// Snapshot returns the cards to render.
func (v *BlogListView) Snapshot() BlogListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	cards := make([]BlogCard, 0, len(v.blogs))
	for _, blog := range v.blogs {
		image := blog.Image
		if image == "" {
			image = PlaceholderImage(blog.Title)
		}
		cards = append(cards, BlogCard{Blog: blog, ImageURL: image})
	}
	return BlogListSnapshot{Loading: v.loading, Cards: cards}
}
