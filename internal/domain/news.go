package domain

import (
	"strings"
	"time"
)

type Author struct {
	Name string `json:"name"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type News struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Views      int64        `json:"views"`
	CreatedAt  time.Time    `json:"createdAt"`
	AuthorID   string       `json:"authorId"`
	CategoryID string       `json:"categoryId"`
	Author     *Author      `json:"author,omitempty"`
	Category   *CategoryRef `json:"category,omitempty"`
}

// NewsInput 是创建/修改共用的可写字段
type NewsInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"categoryId"`
}

func (in NewsInput) Trimmed() NewsInput {
	return NewsInput{
		Title:      strings.TrimSpace(in.Title),
		Content:    strings.TrimSpace(in.Content),
		CategoryID: strings.TrimSpace(in.CategoryID),
	}
}

func (in NewsInput) Complete() bool {
	return in.Title != "" && in.Content != "" && in.CategoryID != ""
}

type NewsFilter struct {
	CategoryID string
	Offset     int
	Limit      int
}
