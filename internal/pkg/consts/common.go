package consts

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

const (
	BugStatusOpen       = "open"
	BugStatusInProgress = "in-progress"
	BugStatusResolved   = "resolved"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	// ExcerptLength 摘要截断长度
	ExcerptLength = 150
	// WordsPerMinute 阅读时长估算基准
	WordsPerMinute = 200
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)
