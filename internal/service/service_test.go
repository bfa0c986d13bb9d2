package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/fallback"
	"go-news-gateway/internal/repo/repotest"
)

var t0 = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

// downStore 模拟数据库不可达
type downStore struct{ calls int }

func (d *downStore) Session(context.Context, func(domain.StoreSession) error) error {
	d.calls++
	return &domain.StoreError{Fault: domain.FaultConnectivity, Op: "acquire connection", Err: errors.New("dial tcp: connection refused")}
}

func wantKind(t *testing.T, err error, k domain.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error kind %v, got nil", k)
	}
	if got := domain.KindOf(err); got != k {
		t.Fatalf("expected kind %v, got %v (%v)", k, got, err)
	}
}

type fixture struct {
	st       domain.ContentStore
	news     *NewsService
	admin    auth.Identity
	reader   auth.Identity
	category domain.Category
}

func setup(t *testing.T) fixture {
	t.Helper()
	_, st := repotest.Open(t)
	a := repotest.SeedUser(t, st, "admin@ns.com", "secret", domain.RoleAdmin)
	r := repotest.SeedUser(t, st, "reader@ns.com", "secret", domain.RoleReader)
	c := repotest.SeedCategory(t, st, "Politics")
	return fixture{
		st:       st,
		news:     NewNewsService(st, fallback.New(), NewsOptions{Fallback: true, DefaultLimit: 10, MaxLimit: 100}, zap.NewNop()),
		admin:    auth.Identity{UserID: a.ID, Role: domain.RoleAdmin},
		reader:   auth.Identity{UserID: r.ID, Role: domain.RoleReader},
		category: c,
	}
}

func TestNewsListPaging(t *testing.T) {
	f := setup(t)
	other := repotest.SeedCategory(t, f.st, "Economy")
	for i := 0; i < 3; i++ {
		repotest.SeedNews(t, f.st, f.admin.UserID, f.category.ID, "p", t0.Add(time.Duration(i)*time.Minute))
	}
	repotest.SeedNews(t, f.st, f.admin.UserID, other.ID, "e", t0)

	page, err := f.news.List(context.Background(), ListQuery{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 4 || page.TotalPages != 2 || len(page.Items) != 1 || page.Degraded {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, err = f.news.List(context.Background(), ListQuery{CategoryID: f.category.ID})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if page.Total != 3 || page.Page != 1 || page.Limit != 10 || page.TotalPages != 1 {
		t.Fatalf("unexpected filtered page: %+v", page)
	}

	page, err = f.news.List(context.Background(), ListQuery{CategoryID: "missing"})
	if err != nil || page.Total != 0 || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %+v err=%v", page, err)
	}
}

func TestNewsListNormalize(t *testing.T) {
	s := NewNewsService(&downStore{}, nil, NewsOptions{DefaultLimit: 10, MaxLimit: 100}, zap.NewNop())
	cases := []struct {
		in               ListQuery
		wantPage, wantLm int
	}{
		{ListQuery{}, 1, 10},
		{ListQuery{Page: -3, Limit: -1}, 1, 10},
		{ListQuery{Page: 4, Limit: 20}, 4, 20},
		{ListQuery{Page: 1, Limit: 500}, 1, 100},
	}
	for _, c := range cases {
		p, l := s.normalize(c.in)
		if p != c.wantPage || l != c.wantLm {
			t.Fatalf("normalize(%+v) = %d,%d want %d,%d", c.in, p, l, c.wantPage, c.wantLm)
		}
	}
}

func TestNewsListDegraded(t *testing.T) {
	s := NewNewsService(&downStore{}, fallback.New(), NewsOptions{Fallback: true}, zap.NewNop())
	page, err := s.List(context.Background(), ListQuery{Page: 3, Limit: 2, CategoryID: "1"})
	if err != nil {
		t.Fatalf("degraded list should not fail: %v", err)
	}
	if !page.Degraded || page.Page != 1 || len(page.Items) != 2 || page.Total != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected degraded page: %+v", page)
	}

	off := NewNewsService(&downStore{}, fallback.New(), NewsOptions{Fallback: false}, zap.NewNop())
	_, err = off.List(context.Background(), ListQuery{})
	wantKind(t, err, domain.KindUnavailable)
}

func TestNewsDetailIncrementsViews(t *testing.T) {
	f := setup(t)
	n := repotest.SeedNews(t, f.st, f.admin.UserID, f.category.ID, "hello", t0)

	got, degraded, err := f.news.Detail(context.Background(), n.ID)
	if err != nil || degraded {
		t.Fatalf("detail: degraded=%v err=%v", degraded, err)
	}
	if got.Views != 1 || got.Title != "hello" || got.Category == nil || got.Category.Name != "Politics" {
		t.Fatalf("unexpected detail: %+v", got)
	}
	if _, _, err := f.news.Detail(context.Background(), n.ID); err != nil {
		t.Fatalf("second detail: %v", err)
	}
	if v := repotest.Views(t, f.st, n.ID); v != 2 {
		t.Fatalf("views in store = %d, want 2", v)
	}

	_, _, err = f.news.Detail(context.Background(), "nope")
	wantKind(t, err, domain.KindNotFound)
}

func TestNewsDetailDegraded(t *testing.T) {
	s := NewNewsService(&downStore{}, fallback.New(), NewsOptions{Fallback: true}, zap.NewNop())
	n, degraded, err := s.Detail(context.Background(), "fallback-3")
	if err != nil || !degraded || n.ID != "fallback-3" {
		t.Fatalf("got %+v degraded=%v err=%v", n, degraded, err)
	}
	n, _, _ = s.Detail(context.Background(), "anything")
	if n.ID != "fallback-1" {
		t.Fatalf("unknown id should fall back to first article, got %s", n.ID)
	}
}

func TestNewsWritesRequireAdmin(t *testing.T) {
	spy := &downStore{}
	s := NewNewsService(spy, fallback.New(), NewsOptions{Fallback: true}, zap.NewNop())
	in := domain.NewsInput{Title: "t", Content: "c", CategoryID: "1"}
	reader := auth.Identity{UserID: "u1", Role: domain.RoleReader}

	_, err := s.Create(context.Background(), reader, in)
	wantKind(t, err, domain.KindForbidden)
	_, err = s.Update(context.Background(), reader, "x", in)
	wantKind(t, err, domain.KindForbidden)
	err = s.Delete(context.Background(), auth.Identity{}, "x")
	wantKind(t, err, domain.KindAuthRequired)

	if spy.calls != 0 {
		t.Fatalf("store touched %d times without admin identity", spy.calls)
	}
}

func TestNewsCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.news.Create(ctx, f.admin, domain.NewsInput{Title: "  ", Content: "c", CategoryID: f.category.ID})
	wantKind(t, err, domain.KindValidation)
	_, err = f.news.Create(ctx, f.admin, domain.NewsInput{Title: "t", Content: "c", CategoryID: "ghost"})
	wantKind(t, err, domain.KindValidation)

	n, err := f.news.Create(ctx, f.admin, domain.NewsInput{Title: " Breaking ", Content: "body", CategoryID: f.category.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.ID == "" || n.Title != "Breaking" || n.AuthorID != f.admin.UserID || n.Views != 0 || n.CreatedAt.IsZero() {
		t.Fatalf("unexpected created news: %+v", n)
	}
	if n.Author == nil || n.Author.Name != "user admin@ns.com" {
		t.Fatalf("author not embedded: %+v", n.Author)
	}
}

func TestNewsUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n := repotest.SeedNews(t, f.st, f.admin.UserID, f.category.ID, "old", t0)
	if _, _, err := f.news.Detail(ctx, n.ID); err != nil {
		t.Fatalf("detail: %v", err)
	}

	// 字段校验先于存在性检查
	_, err := f.news.Update(ctx, f.admin, "ghost", domain.NewsInput{})
	wantKind(t, err, domain.KindValidation)
	_, err = f.news.Update(ctx, f.admin, "ghost", domain.NewsInput{Title: "t", Content: "c", CategoryID: f.category.ID})
	wantKind(t, err, domain.KindNotFound)
	_, err = f.news.Update(ctx, f.admin, n.ID, domain.NewsInput{Title: "t", Content: "c", CategoryID: "ghost"})
	wantKind(t, err, domain.KindValidation)

	economy := repotest.SeedCategory(t, f.st, "Economy")
	got, err := f.news.Update(ctx, f.admin, n.ID, domain.NewsInput{Title: "new", Content: "new body", CategoryID: economy.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "new" || got.CategoryID != economy.ID || got.Views != 1 || !got.CreatedAt.Equal(n.CreatedAt) || got.AuthorID != f.admin.UserID {
		t.Fatalf("unexpected updated news: %+v", got)
	}
}

func TestNewsDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	n := repotest.SeedNews(t, f.st, f.admin.UserID, f.category.ID, "bye", t0)

	if err := f.news.Delete(ctx, f.admin, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	wantKind(t, f.news.Delete(ctx, f.admin, n.ID), domain.KindNotFound)
	_, _, err := f.news.Detail(ctx, n.ID)
	wantKind(t, err, domain.KindNotFound)
}

func TestNewsWritesNeverDegrade(t *testing.T) {
	s := NewNewsService(&downStore{}, fallback.New(), NewsOptions{Fallback: true}, zap.NewNop())
	admin := auth.Identity{UserID: "a", Role: domain.RoleAdmin}
	in := domain.NewsInput{Title: "t", Content: "c", CategoryID: "1"}

	_, err := s.Create(context.Background(), admin, in)
	wantKind(t, err, domain.KindUnavailable)
	_, err = s.Update(context.Background(), admin, "x", in)
	wantKind(t, err, domain.KindUnavailable)
	wantKind(t, s.Delete(context.Background(), admin, "x"), domain.KindUnavailable)
}
