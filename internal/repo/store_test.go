package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/repo/repotest"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestListNewsFilterOrderPaging(t *testing.T) {
	_, st := repotest.Open(t)
	admin := repotest.SeedUser(t, st, "admin@ns.com", "pw", domain.RoleAdmin)
	politics := repotest.SeedCategory(t, st, "Politics")
	economy := repotest.SeedCategory(t, st, "Economy")

	for i := 0; i < 5; i++ {
		repotest.SeedNews(t, st, admin.ID, politics.ID, "p", base.Add(time.Duration(i)*time.Hour))
	}
	latestEconomy := repotest.SeedNews(t, st, admin.ID, economy.ID, "e", base.Add(10*time.Hour))

	err := st.Session(context.Background(), func(s domain.StoreSession) error {
		items, total, err := s.ListNews(domain.NewsFilter{Limit: 3})
		if err != nil {
			return err
		}
		if total != 6 || len(items) != 3 {
			t.Fatalf("unfiltered: total=%d len=%d", total, len(items))
		}
		if items[0].ID != latestEconomy.ID {
			t.Fatalf("expected newest first, got %s", items[0].Title)
		}
		if items[0].Author == nil || items[0].Author.Name == "" || items[0].Category == nil || items[0].Category.Name != "Economy" {
			t.Fatalf("associations not loaded: %+v", items[0])
		}

		items, total, err = s.ListNews(domain.NewsFilter{CategoryID: politics.ID, Offset: 3, Limit: 3})
		if err != nil {
			return err
		}
		if total != 5 || len(items) != 2 {
			t.Fatalf("filtered page 2: total=%d len=%d", total, len(items))
		}
		for i, n := range items {
			if n.CategoryID != politics.ID {
				t.Fatalf("item %d has category %s", i, n.CategoryID)
			}
			if i > 0 && n.CreatedAt.After(items[i-1].CreatedAt) {
				t.Fatalf("not ordered by createdAt desc")
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
}

func TestIncrementViewsAndNotFound(t *testing.T) {
	_, st := repotest.Open(t)
	admin := repotest.SeedUser(t, st, "admin@ns.com", "pw", domain.RoleAdmin)
	cat := repotest.SeedCategory(t, st, "IT")
	n := repotest.SeedNews(t, st, admin.ID, cat.ID, "AI", base)

	for i := 0; i < 3; i++ {
		if err := st.Session(context.Background(), func(s domain.StoreSession) error {
			return s.IncrementViews(n.ID)
		}); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if v := repotest.Views(t, st, n.ID); v != 3 {
		t.Fatalf("expected 3 views, got %d", v)
	}

	err := st.Session(context.Background(), func(s domain.StoreSession) error {
		if err := s.IncrementViews("missing"); !errors.Is(err, domain.ErrNoRecord) {
			t.Fatalf("increment missing: %v", err)
		}
		if _, err := s.FindNews("missing"); !errors.Is(err, domain.ErrNoRecord) {
			t.Fatalf("find missing: %v", err)
		}
		if err := s.DeleteNews("missing"); !errors.Is(err, domain.ErrNoRecord) {
			t.Fatalf("delete missing: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
}

func TestUpdateKeepsImmutableFields(t *testing.T) {
	_, st := repotest.Open(t)
	admin := repotest.SeedUser(t, st, "admin@ns.com", "pw", domain.RoleAdmin)
	a := repotest.SeedCategory(t, st, "A")
	b := repotest.SeedCategory(t, st, "B")
	n := repotest.SeedNews(t, st, admin.ID, a.ID, "old", base)

	err := st.Session(context.Background(), func(s domain.StoreSession) error {
		if err := s.IncrementViews(n.ID); err != nil {
			return err
		}
		if err := s.UpdateNews(n.ID, domain.NewsInput{Title: "new", Content: "body", CategoryID: b.ID}); err != nil {
			return err
		}
		got, err := s.FindNews(n.ID)
		if err != nil {
			return err
		}
		if got.Title != "new" || got.CategoryID != b.ID || got.Category.Name != "B" {
			t.Fatalf("update not applied: %+v", got)
		}
		if got.Views != 1 || !got.CreatedAt.Equal(base) || got.AuthorID != admin.ID {
			t.Fatalf("immutable fields changed: %+v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
}

func TestCategoryNameExactMatch(t *testing.T) {
	_, st := repotest.Open(t)
	repotest.SeedCategory(t, st, "Sports")
	repotest.SeedCategory(t, st, "Culture")

	err := st.Session(context.Background(), func(s domain.StoreSession) error {
		c, err := s.FindCategoryByName("Sports")
		if err != nil || c == nil {
			t.Fatalf("exact match: %v %v", c, err)
		}
		if c, _ := s.FindCategoryByName("sports"); c != nil {
			t.Fatalf("lowercase must not match: %+v", c)
		}
		list, err := s.ListCategories()
		if err != nil {
			return err
		}
		if len(list) != 2 || list[0].Name != "Culture" || list[1].Name != "Sports" {
			t.Fatalf("expected ascending names, got %+v", list)
		}
		if got, err := s.FindCategory("missing"); got != nil || err != nil {
			t.Fatalf("missing category: %v %v", got, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
}

func TestClosedPoolIsUnreachable(t *testing.T) {
	db, st := repotest.Open(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	called := false
	err := st.Session(context.Background(), func(domain.StoreSession) error {
		called = true
		return nil
	})
	if called {
		t.Fatalf("fn must not run without a connection")
	}
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestSessionReturnsFnError(t *testing.T) {
	_, st := repotest.Open(t)
	boom := errors.New("boom")
	err := st.Session(context.Background(), func(domain.StoreSession) error { return boom })
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected fn error passthrough, got %v", err)
	}
}
