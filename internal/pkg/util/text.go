package util

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将标题转换为小写 URL 安全的 slug
func Slugify(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = nonAlnum.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return "post"
	}
	return base
}

// Excerpt 截取正文前 maxLen 个字符并追加省略号
func Excerpt(content string, maxLen int) string {
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content + "..."
	}
	return string(runes[:maxLen]) + "..."
}

// WordCount 按空白分词统计词数
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadingTime 估算阅读分钟数 ceil(words / wordsPerMinute)
func ReadingTime(content string, wordsPerMinute int) int {
	words := WordCount(content)
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
