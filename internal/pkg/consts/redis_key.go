package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
	RateLimitKey      = "rate:limit:"
	PopularPostsKey   = "post:popular"
)
