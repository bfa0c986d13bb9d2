// Package fallback 提供存储不可达时使用的静态内容。数据只读，不会落库。
package fallback

import (
	"strconv"
	"time"

	"go-news-gateway/internal/domain"
)

const authorName = "Newsroom"

// Provider 所有读方法都返回副本，调用方改了也不影响下一次请求
type Provider struct {
	news       []domain.News
	categories []domain.Category
}

func New() *Provider {
	categories := []domain.Category{
		{ID: "1", Name: "Politics"},
		{ID: "2", Name: "Economy"},
		{ID: "3", Name: "Society"},
		{ID: "4", Name: "Culture"},
		{ID: "5", Name: "Technology"},
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	published := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	seed := []struct{ title, content, categoryID string }{
		{"Government announces new economic policy", "The government unveiled a policy package aimed at growth and job creation.", "1"},
		{"Stock market extends its rally", "Major indices closed higher again as foreign investors kept buying.", "2"},
		{"Distancing rules eased in stages", "Officials outlined a phased return to normal daily life.", "3"},
		{"International film festival opens", "Filmmakers and fans gathered for the opening night screenings.", "4"},
		{"Local lab reports AI breakthrough", "Researchers say the new model could change medical diagnostics.", "5"},
	}
	news := make([]domain.News, 0, len(seed))
	for i, s := range seed {
		news = append(news, domain.News{
			ID:         "fallback-" + strconv.Itoa(i+1),
			Title:      s.title,
			Content:    s.content,
			CreatedAt:  published.Add(-time.Duration(i) * time.Hour),
			AuthorID:   "fallback",
			CategoryID: s.categoryID,
			Author:     &domain.Author{Name: authorName},
			Category:   &domain.CategoryRef{ID: s.categoryID, Name: names[s.categoryID]},
		})
	}
	return &Provider{news: news, categories: categories}
}

// News 按 createdAt 倒序
func (p *Provider) News() []domain.News {
	out := make([]domain.News, len(p.news))
	for i := range p.news {
		out[i] = cloneNews(p.news[i])
	}
	return out
}

func (p *Provider) Categories() []domain.Category {
	out := make([]domain.Category, len(p.categories))
	copy(out, p.categories)
	return out
}

// Article 命中 id 返回对应文章，否则返回第一篇
func (p *Provider) Article(id string) domain.News {
	for i := range p.news {
		if p.news[i].ID == id {
			return cloneNews(p.news[i])
		}
	}
	return cloneNews(p.news[0])
}

func cloneNews(n domain.News) domain.News {
	if n.Author != nil {
		a := *n.Author
		n.Author = &a
	}
	if n.Category != nil {
		c := *n.Category
		n.Category = &c
	}
	return n
}
