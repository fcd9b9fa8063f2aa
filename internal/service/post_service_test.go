package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Inkstone/internal/repository"
)

type fakePostRepo struct {
	posts map[primitive.ObjectID]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*model.Post)}
}

func (s *fakePostRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (s *fakePostRepo) Insert(ctx context.Context, post *model.Post) error {
	for _, existing := range s.posts {
		if existing.Slug == post.Slug {
			return repository.ErrDuplicateKey
		}
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *fakePostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (s *fakePostRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error) {
	var result []*model.Post
	for _, id := range ids {
		if post, ok := s.posts[id]; ok {
			clone := *post
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *fakePostRepo) matching(filter *repository.PostFilter) []*model.Post {
	var result []*model.Post
	for _, post := range s.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.Author != nil && post.Author != *filter.Author {
			continue
		}
		if filter.Category != nil && post.Category != *filter.Category {
			continue
		}
		if filter.PublishedBefore != nil {
			if post.PublishedAt == nil || post.PublishedAt.After(*filter.PublishedBefore) {
				continue
			}
		}
		clone := *post
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *fakePostRepo) Find(ctx context.Context, filter *repository.PostFilter) ([]*model.Post, error) {
	result := s.matching(filter)
	if filter.Skip >= int64(len(result)) {
		return nil, nil
	}
	result = result[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < int64(len(result)) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *fakePostRepo) Count(ctx context.Context, filter *repository.PostFilter) (int64, error) {
	return int64(len(s.matching(filter))), nil
}

func (s *fakePostRepo) Replace(ctx context.Context, post *model.Post) error {
	if _, ok := s.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range s.posts {
		if id != post.ID && existing.Slug == post.Slug {
			return repository.ErrDuplicateKey
		}
	}
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *fakePostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakePostRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotMatched
	}
	post.Views++
	clone := *post
	return &clone, nil
}

func (s *fakePostRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	post, ok := s.posts[postID]
	if !ok || post.LikedBy(userID) {
		return nil, repository.ErrNotMatched
	}
	post.Likes = append(post.Likes, model.Like{User: userID, CreatedAt: time.Now()})
	clone := *post
	return &clone, nil
}

func (s *fakePostRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*model.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, repository.ErrNotMatched
	}
	kept := post.Likes[:0]
	for _, like := range post.Likes {
		if like.User != userID {
			kept = append(kept, like)
		}
	}
	post.Likes = kept
	clone := *post
	return &clone, nil
}

func (s *fakePostRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment *model.Comment) (*model.Post, error) {
	post, ok := s.posts[postID]
	if !ok || !post.AllowComments {
		return nil, repository.ErrNotMatched
	}
	post.Comments = append(post.Comments, *comment)
	clone := *post
	return &clone, nil
}

func (s *fakePostRepo) TopViewed(ctx context.Context, limit int64) ([]*model.Post, error) {
	now := time.Now()
	result := s.matching(&repository.PostFilter{
		Status:          consts.PostStatusPublished,
		PublishedBefore: &now,
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Views > result[j].Views })
	if limit < int64(len(result)) {
		result = result[:limit]
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (s *fakeUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (s *fakeUserRepo) Insert(ctx context.Context, user *model.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	var result []*model.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (s *fakeUserRepo) List(ctx context.Context, skip, limit int64) ([]*model.User, error) {
	var result []*model.User
	for _, user := range s.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if skip >= int64(len(result)) {
		return nil, nil
	}
	result = result[skip:]
	if limit > 0 && limit < int64(len(result)) {
		result = result[:limit]
	}
	return result, nil
}

func (s *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type fakeCategoryRepo struct {
	categories map[primitive.ObjectID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[primitive.ObjectID]*model.Category)}
}

func (s *fakeCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return category, nil
}

func (s *fakeCategoryRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	var result []*model.Category
	for _, id := range ids {
		if category, ok := s.categories[id]; ok {
			result = append(result, category)
		}
	}
	return result, nil
}

type fakeSearchRepo struct {
	indexed map[string]*es.PostES
	hits    []*es.PostES
	total   int64
}

func newFakeSearchRepo() *fakeSearchRepo {
	return &fakeSearchRepo{indexed: make(map[string]*es.PostES)}
}

func (s *fakeSearchRepo) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*es.PostES, int64, error) {
	return s.hits, s.total, nil
}

func (s *fakeSearchRepo) IndexPost(ctx context.Context, post *es.PostES) error {
	s.indexed[post.ID] = post
	return nil
}

func (s *fakeSearchRepo) DeletePost(ctx context.Context, id string) error {
	delete(s.indexed, id)
	return nil
}

type postFixture struct {
	svc        PostService
	posts      *fakePostRepo
	users      *fakeUserRepo
	categories *fakeCategoryRepo
	search     *fakeSearchRepo
	author     *model.User
	category   *model.Category
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	posts := newFakePostRepo()
	users := newFakeUserRepo()
	categories := newFakeCategoryRepo()
	search := newFakeSearchRepo()

	author := &model.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Role:     consts.RoleUser,
		IsActive: true,
	}
	users.users[author.ID] = author

	category := &model.Category{
		ID:   primitive.NewObjectID(),
		Name: "Engineering",
		Slug: "engineering",
	}
	categories.categories[category.ID] = category

	return &postFixture{
		svc:        NewPostService(posts, users, categories, search),
		posts:      posts,
		users:      users,
		categories: categories,
		search:     search,
		author:     author,
		category:   category,
	}
}

func (f *postFixture) seedPost(t *testing.T, title, status string, publishedAt *time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		Title:         title,
		Content:       "content long enough for " + title,
		Author:        f.author.ID,
		Category:      f.category.ID,
		Status:        status,
		AllowComments: true,
	}
	post.PrepareSave(nil)
	if publishedAt != nil {
		post.PublishedAt = publishedAt
	}
	require.NoError(t, f.posts.Insert(context.Background(), post))
	return post
}

func TestCreatePostDerivesFields(t *testing.T) {
	f := newPostFixture(t)

	result, err := f.svc.Create(context.Background(), f.author.ID.Hex(), &dto.CreatePostDTO{
		Title:    "Understanding Goroutines!",
		Content:  "A long enough body explaining how goroutines work in practice.",
		Category: f.category.ID.Hex(),
		Status:   consts.PostStatusPublished,
	})
	require.NoError(t, err)

	assert.Equal(t, "understanding-goroutines", result.Slug)
	assert.NotEmpty(t, result.Excerpt)
	assert.Equal(t, 1, result.ReadingTime)
	assert.NotNil(t, result.PublishedAt)
	assert.True(t, result.AllowComments)
	require.NotNil(t, result.Author)
	assert.Equal(t, "alice", result.Author.Username)
	require.NotNil(t, result.Category)
	assert.Equal(t, "engineering", result.Category.Slug)

	// 已发布帖子同步进了检索索引
	assert.Len(t, f.search.indexed, 1)
}

func TestCreatePostDraftNotIndexed(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.author.ID.Hex(), &dto.CreatePostDTO{
		Title:    "A Draft In Progress",
		Content:  "Body of the draft, still being written.",
		Category: f.category.ID.Hex(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.search.indexed)
}

func TestCreatePostSlugConflict(t *testing.T) {
	f := newPostFixture(t)
	f.seedPost(t, "Same Title", consts.PostStatusDraft, nil)

	_, err := f.svc.Create(context.Background(), f.author.ID.Hex(), &dto.CreatePostDTO{
		Title:    "Same Title",
		Content:  "different body but identical title slug",
		Category: f.category.ID.Hex(),
	})
	assert.ErrorIs(t, err, ErrSlugConflict)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.author.ID.Hex(), &dto.CreatePostDTO{
		Title:    "Orphan Category Post",
		Content:  "body long enough to pass validation",
		Category: primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestListHidesUnpublishedFromAnonymous(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	f.seedPost(t, "Visible Post", consts.PostStatusPublished, &past)
	f.seedPost(t, "Draft Post", consts.PostStatusDraft, nil)
	f.seedPost(t, "Scheduled Post", consts.PostStatusPublished, &future)

	result, err := f.svc.List(context.Background(), &dto.PostQueryDTO{}, "")
	require.NoError(t, err)

	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Visible Post", result.Posts[0].Title)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestListAdminSeesAllStatuses(t *testing.T) {
	f := newPostFixture(t)
	f.seedPost(t, "Draft Post", consts.PostStatusDraft, nil)
	f.seedPost(t, "Archived Post", consts.PostStatusArchived, nil)

	result, err := f.svc.List(context.Background(), &dto.PostQueryDTO{}, consts.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, result.Posts, 2)

	result, err = f.svc.List(context.Background(), &dto.PostQueryDTO{Status: consts.PostStatusDraft}, consts.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Draft Post", result.Posts[0].Title)
}

func TestListPagination(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	for i := 0; i < 15; i++ {
		past := now.Add(-time.Duration(i+1) * time.Minute)
		f.seedPost(t, "Paged Post "+primitive.NewObjectID().Hex(), consts.PostStatusPublished, &past)
	}

	result, err := f.svc.List(context.Background(), &dto.PostQueryDTO{Page: 2, Limit: 10}, "")
	require.NoError(t, err)

	assert.Len(t, result.Posts, 5)
	assert.Equal(t, int64(2), result.Pagination.Current)
	assert.Equal(t, int64(2), result.Pagination.Pages)
	assert.Equal(t, int64(15), result.Pagination.Total)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestDetailIncrementsViews(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	post := f.seedPost(t, "Counted Post", consts.PostStatusPublished, &now)

	first, err := f.svc.Detail(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := f.svc.Detail(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
}

func TestDetailNotFound(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Detail(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.svc.Detail(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestUpdateForbiddenForNonAuthor(t *testing.T) {
	f := newPostFixture(t)
	post := f.seedPost(t, "Protected Post", consts.PostStatusDraft, nil)

	stranger := primitive.NewObjectID().Hex()
	newTitle := "Hijacked Title"
	_, err := f.svc.Update(context.Background(), post.ID.Hex(), stranger, consts.RoleUser, &dto.UpdatePostDTO{Title: &newTitle})
	assert.ErrorIs(t, err, ErrForbidden)

	// 管理员不受作者限制
	_, err = f.svc.Update(context.Background(), post.ID.Hex(), stranger, consts.RoleAdmin, &dto.UpdatePostDTO{Title: &newTitle})
	assert.NoError(t, err)
}

func TestUpdateRederivesSlugAndExcerpt(t *testing.T) {
	f := newPostFixture(t)
	post := f.seedPost(t, "Original Title", consts.PostStatusDraft, nil)

	newTitle := "Renamed Title"
	newContent := "completely rewritten body of the post"
	empty := ""
	result, err := f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{
		Title:   &newTitle,
		Content: &newContent,
		Excerpt: &empty,
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed-title", result.Slug)
	assert.Equal(t, newContent+"...", result.Excerpt)
}

func TestUpdateKeepsStoredExcerptOnContentChange(t *testing.T) {
	f := newPostFixture(t)
	post := f.seedPost(t, "Excerpt Post", consts.PostStatusDraft, nil)

	handwritten := "my handwritten excerpt"
	_, err := f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{
		Excerpt: &handwritten,
	})
	require.NoError(t, err)

	// 仅改正文时已有摘要不被重新派生覆盖
	newContent := "rewritten body content for this post"
	result, err := f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{
		Content: &newContent,
	})
	require.NoError(t, err)

	assert.Equal(t, handwritten, result.Excerpt)
	assert.Equal(t, newContent, result.Content)
}

func TestUpdatePublishLatch(t *testing.T) {
	f := newPostFixture(t)
	post := f.seedPost(t, "Latch Post", consts.PostStatusDraft, nil)

	published := consts.PostStatusPublished
	first, err := f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)

	archived := consts.PostStatusArchived
	_, err = f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{Status: &archived})
	require.NoError(t, err)

	second, err := f.svc.Update(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser, &dto.UpdatePostDTO{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, first.PublishedAt.Unix(), second.PublishedAt.Unix())
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	post := f.seedPost(t, "Doomed Post", consts.PostStatusPublished, &now)
	f.search.indexed[post.ID.Hex()] = &es.PostES{ID: post.ID.Hex()}

	err := f.svc.Delete(context.Background(), post.ID.Hex(), f.author.ID.Hex(), consts.RoleUser)
	require.NoError(t, err)

	_, err = f.posts.FindByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, f.search.indexed)
}

func TestToggleLike(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	post := f.seedPost(t, "Likable Post", consts.PostStatusPublished, &now)
	liker := primitive.NewObjectID()

	result, err := f.svc.ToggleLike(context.Background(), post.ID.Hex(), liker.Hex())
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	// 再次点击取消点赞
	result, err = f.svc.ToggleLike(context.Background(), post.ID.Hex(), liker.Hex())
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikeCount)
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	post := f.seedPost(t, "Discussed Post", consts.PostStatusPublished, &now)

	result, err := f.svc.AddComment(context.Background(), post.ID.Hex(), f.author.ID.Hex(), &dto.AddCommentDTO{Content: "great write-up"})
	require.NoError(t, err)
	assert.Equal(t, "great write-up", result.Content)
	assert.False(t, result.IsApproved)
	require.NotNil(t, result.User)
	assert.Equal(t, "alice", result.User.Username)

	// 未审核评论不计入评论数
	detail, err := f.svc.Detail(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, detail.CommentCount)
	assert.Len(t, detail.Comments, 1)
}

func TestAddCommentNotAllowed(t *testing.T) {
	f := newPostFixture(t)
	post := f.seedPost(t, "Silent Post", consts.PostStatusPublished, nil)
	f.posts.posts[post.ID].AllowComments = false

	_, err := f.svc.AddComment(context.Background(), post.ID.Hex(), f.author.ID.Hex(), &dto.AddCommentDTO{Content: "anyone there?"})
	assert.ErrorIs(t, err, ErrCommentsNotAllowed)

	_, err = f.svc.AddComment(context.Background(), primitive.NewObjectID().Hex(), f.author.ID.Hex(), &dto.AddCommentDTO{Content: "void"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSearchHydratesFromStore(t *testing.T) {
	f := newPostFixture(t)
	now := time.Now()
	post := f.seedPost(t, "Search Target", consts.PostStatusPublished, &now)

	f.search.hits = []*es.PostES{{ID: post.ID.Hex(), Title: post.Title}}
	f.search.total = 1

	result, err := f.svc.Search(context.Background(), &dto.SearchQueryDTO{Keyword: "target"})
	require.NoError(t, err)

	require.Len(t, result.Posts, 1)
	assert.Equal(t, "Search Target", result.Posts[0].Title)
	require.NotNil(t, result.Posts[0].Author)
	assert.Equal(t, "alice", result.Posts[0].Author.Username)
	assert.Equal(t, int64(1), result.Pagination.Total)
}
