package es

import "time"

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
