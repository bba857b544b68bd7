package markdown_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-churchsite/internal/markdown"
)

func TestGoldmarkRendererProducesHTML(t *testing.T) {
	renderer := markdown.NewGoldmarkRenderer()

	rendered, err := renderer.Render(context.Background(), []byte("# Welcome\n\nCome worship with us."))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(rendered.HTML)
	if !strings.Contains(html, "<h1") {
		t.Fatalf("expected heading in output, got %q", html)
	}
	if !strings.Contains(html, "Come worship with us.") {
		t.Fatalf("expected body text in output, got %q", html)
	}
}

func TestGoldmarkRendererReadingTime(t *testing.T) {
	renderer := markdown.NewGoldmarkRenderer()

	words := make([]string, 401)
	for i := range words {
		words[i] = "word"
	}

	rendered, err := renderer.Render(context.Background(), []byte(strings.Join(words, " ")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.WordCount != 401 {
		t.Fatalf("expected 401 words got %d", rendered.WordCount)
	}
	if rendered.ReadingTime != 3 {
		t.Fatalf("expected 3 minute reading time got %d", rendered.ReadingTime)
	}
}

func TestGoldmarkRendererEmptyBody(t *testing.T) {
	renderer := markdown.NewGoldmarkRenderer()

	rendered, err := renderer.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.ReadingTime != 0 {
		t.Fatalf("expected zero reading time got %d", rendered.ReadingTime)
	}
}

func TestParseFrontMatter(t *testing.T) {
	src := []byte(`---
title: Youth Ministry
excerpt: For students grades 6-12
category: Students
tags:
  - youth
  - students
draft: false
publishDate: 2025-01-15T00:00:00Z
---

Body content here.
`)

	meta, body, err := markdown.ParseFrontMatter(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if meta.Title != "Youth Ministry" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Category != "Students" {
		t.Fatalf("unexpected category %q", meta.Category)
	}
	if len(meta.Tags) != 2 {
		t.Fatalf("expected 2 tags got %d", len(meta.Tags))
	}
	if meta.PublishDate == nil || meta.PublishDate.Year() != 2025 {
		t.Fatalf("unexpected publish date %v", meta.PublishDate)
	}
	if !strings.Contains(string(body), "Body content here.") {
		t.Fatalf("expected body preserved, got %q", string(body))
	}
}

func TestParseFrontMatterWithoutDelimiters(t *testing.T) {
	meta, body, err := markdown.ParseFrontMatter([]byte("Just a body."))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("expected empty metadata, got title %q", meta.Title)
	}
	if !strings.Contains(string(body), "Just a body.") {
		t.Fatalf("expected body preserved, got %q", string(body))
	}
}
