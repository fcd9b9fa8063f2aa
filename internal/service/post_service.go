package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Inkstone/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	popularLimit = 10
	popularTTL   = time.Hour
)

type PostService interface {
	List(ctx context.Context, query *dto.PostQueryDTO, requesterRole string) (*dto.PostListDTO, error)
	Detail(ctx context.Context, id string) (*dto.PostDetailDTO, error)
	Create(ctx context.Context, authorID string, req *dto.CreatePostDTO) (*dto.PostDetailDTO, error)
	Update(ctx context.Context, id, requesterID, requesterRole string, req *dto.UpdatePostDTO) (*dto.PostDetailDTO, error)
	Delete(ctx context.Context, id, requesterID, requesterRole string) error
	ToggleLike(ctx context.Context, id, userID string) (*dto.LikeResultDTO, error)
	AddComment(ctx context.Context, id, userID string, req *dto.AddCommentDTO) (*dto.CommentDTO, error)
	Search(ctx context.Context, query *dto.SearchQueryDTO) (*dto.PostListDTO, error)
	Popular(ctx context.Context) ([]*dto.PostDTO, error)
}

type PostServiceImpl struct {
	posts      repository.PostRepo
	users      repository.UserRepo
	categories repository.CategoryRepo
	search     es.PostRepo
}

func NewPostService(
	posts repository.PostRepo,
	users repository.UserRepo,
	categories repository.CategoryRepo,
	search es.PostRepo,
) PostService {
	return &PostServiceImpl{
		posts:      posts,
		users:      users,
		categories: categories,
		search:     search,
	}
}

// List 分页查询帖子。非管理员只能看到已发布且发布时间已到的帖子，
// 管理员可按任意状态过滤。
func (s *PostServiceImpl) List(ctx context.Context, query *dto.PostQueryDTO, requesterRole string) (*dto.PostListDTO, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	filter := &repository.PostFilter{
		Status: query.Status,
		Search: query.Search,
		Skip:   (page - 1) * limit,
		Limit:  limit,
	}

	if requesterRole != consts.RoleAdmin {
		now := time.Now()
		filter.Status = consts.PostStatusPublished
		filter.PublishedBefore = &now
	}

	if query.Category != "" {
		oid, err := parseObjectID(query.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &oid
	}
	if query.Author != "" {
		oid, err := parseObjectID(query.Author)
		if err != nil {
			return nil, err
		}
		filter.Author = &oid
	}

	total, err := s.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.populatePosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &dto.PostListDTO{
		Posts:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

// Detail 读取单篇帖子，浏览数原子自增后返回最新文档
func (s *PostServiceImpl) Detail(ctx context.Context, id string) (*dto.PostDetailDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.IncrementViews(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return s.buildDetail(ctx, post)
}

func (s *PostServiceImpl) Create(ctx context.Context, authorID string, req *dto.CreatePostDTO) (*dto.PostDetailDTO, error) {
	author, err := parseObjectID(authorID)
	if err != nil {
		return nil, err
	}

	category, err := parseObjectID(req.Category)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	post := &model.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        author,
		Category:      category,
		Tags:          req.Tags,
		Status:        req.Status,
		IsSticky:      false,
		AllowComments: true,
	}
	if post.Status == "" {
		post.Status = consts.PostStatusDraft
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = &model.FeaturedImage{URL: req.FeaturedImage.URL, Alt: req.FeaturedImage.Alt}
	}
	if req.IsSticky != nil {
		post.IsSticky = *req.IsSticky
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}

	post.PrepareSave(nil)

	if err := s.posts.Insert(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}

	s.syncIndex(ctx, post)

	return s.buildDetail(ctx, post)
}

func (s *PostServiceImpl) Update(ctx context.Context, id, requesterID, requesterRole string, req *dto.UpdatePostDTO) (*dto.PostDetailDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.Author.Hex() != requesterID && requesterRole != consts.RoleAdmin {
		return nil, ErrForbidden
	}

	prev := *post

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	// 已有摘要跨正文更新保留，仅当摘要为空时由 PrepareSave 重新派生
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Category != nil {
		category, err := parseObjectID(*req.Category)
		if err != nil {
			return nil, err
		}
		if _, err := s.categories.FindByID(ctx, category); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		post.Category = category
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = &model.FeaturedImage{URL: req.FeaturedImage.URL, Alt: req.FeaturedImage.Alt}
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.IsSticky != nil {
		post.IsSticky = *req.IsSticky
	}
	if req.AllowComments != nil {
		post.AllowComments = *req.AllowComments
	}

	post.PrepareSave(&prev)

	if err := s.posts.Replace(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlugConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	s.syncIndex(ctx, post)

	return s.buildDetail(ctx, post)
}

func (s *PostServiceImpl) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.Author.Hex() != requesterID && requesterRole != consts.RoleAdmin {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := s.search.DeletePost(ctx, oid.Hex()); err != nil {
		log.WarnContext(ctx, "Delete post from index failed", "post_id", oid.Hex(), "err", err)
	}

	return nil
}

// ToggleLike 点赞开关。已点赞则取消，未点赞则新增，
// 新增路径由条件更新保证同一用户至多一条点赞记录。
func (s *PostServiceImpl) ToggleLike(ctx context.Context, id, userID string) (*dto.LikeResultDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.LikedBy(uid) {
		updated, err := s.posts.RemoveLike(ctx, oid, uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotMatched) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		return &dto.LikeResultDTO{Liked: false, LikeCount: updated.LikeCount()}, nil
	}

	updated, err := s.posts.AddLike(ctx, oid, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return &dto.LikeResultDTO{Liked: true, LikeCount: updated.LikeCount()}, nil
}

func (s *PostServiceImpl) AddComment(ctx context.Context, id, userID string, req *dto.AddCommentDTO) (*dto.CommentDTO, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.FindByID(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:         primitive.NewObjectID(),
		User:       uid,
		Content:    req.Content,
		CreatedAt:  time.Now(),
		IsApproved: false,
	}

	if _, err := s.posts.AddComment(ctx, oid, comment); err != nil {
		if errors.Is(err, repository.ErrNotMatched) {
			return nil, ErrCommentsNotAllowed
		}
		return nil, err
	}

	result := &dto.CommentDTO{
		ID:         comment.ID.Hex(),
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
		IsApproved: comment.IsApproved,
	}
	if user, err := s.users.FindByID(ctx, uid); err == nil {
		result.User = toAuthorDTO(user)
	}

	return result, nil
}

// Search 走 ES 全文检索，命中后回 Mongo 取完整文档，保持 ES 的相关性排序
func (s *PostServiceImpl) Search(ctx context.Context, query *dto.SearchQueryDTO) (*dto.PostListDTO, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	hits, total, err := s.search.SearchPosts(ctx, query.Keyword, int((page-1)*limit), int(limit))
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(hits))
	for _, hit := range hits {
		oid, err := primitive.ObjectIDFromHex(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}

	posts, err := s.posts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, oid := range ids {
		if post, ok := byID[oid]; ok {
			ordered = append(ordered, post)
		}
	}

	items, err := s.populatePosts(ctx, ordered)
	if err != nil {
		return nil, err
	}

	return &dto.PostListDTO{
		Posts:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

// Popular 热门帖子，优先读缓存，未命中时按浏览数回源并写回
func (s *PostServiceImpl) Popular(ctx context.Context) ([]*dto.PostDTO, error) {
	cached, err := redis.GetValue(ctx, consts.PopularPostsKey)
	if err != nil {
		log.WarnContext(ctx, "Read popular posts cache failed", "err", err)
	}
	if cached != "" {
		var items []*dto.PostDTO
		decodeErr := json.Unmarshal([]byte(cached), &items)
		if decodeErr == nil {
			return items, nil
		}
		log.WarnContext(ctx, "Decode popular posts cache failed", "err", decodeErr)
	}

	posts, err := s.posts.TopViewed(ctx, popularLimit)
	if err != nil {
		return nil, err
	}

	items, err := s.populatePosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		if err := redis.SetWithExpiration(ctx, consts.PopularPostsKey, payload, popularTTL); err != nil {
			log.WarnContext(ctx, "Write popular posts cache failed", "err", err)
		}
	}

	return items, nil
}

// syncIndex 将帖子同步到检索索引，仅已发布的帖子可检索。
// 索引失败不阻断主流程，记录日志等待下次写入覆盖。
func (s *PostServiceImpl) syncIndex(ctx context.Context, post *model.Post) {
	var err error
	if post.Status == consts.PostStatusPublished {
		err = s.search.IndexPost(ctx, toPostES(post))
	} else {
		err = s.search.DeletePost(ctx, post.ID.Hex())
	}
	if err != nil {
		log.WarnContext(ctx, "Sync post index failed", "post_id", post.ID.Hex(), "err", err)
	}
}

func (s *PostServiceImpl) buildDetail(ctx context.Context, post *model.Post) (*dto.PostDetailDTO, error) {
	items, err := s.populatePosts(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	detail := &dto.PostDetailDTO{
		PostDTO:  *items[0],
		Content:  post.Content,
		Comments: make([]*dto.CommentDTO, 0, len(post.Comments)),
	}

	commenters := make([]primitive.ObjectID, 0, len(post.Comments))
	seen := make(map[primitive.ObjectID]struct{}, len(post.Comments))
	for _, c := range post.Comments {
		if _, ok := seen[c.User]; !ok {
			seen[c.User] = struct{}{}
			commenters = append(commenters, c.User)
		}
	}
	users, err := s.users.FindByIDs(ctx, commenters)
	if err != nil {
		return nil, err
	}
	userByID := make(map[primitive.ObjectID]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	for _, c := range post.Comments {
		item := &dto.CommentDTO{
			ID:         c.ID.Hex(),
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			IsApproved: c.IsApproved,
		}
		if u, ok := userByID[c.User]; ok {
			item.User = toAuthorDTO(u)
		}
		detail.Comments = append(detail.Comments, item)
	}

	return detail, nil
}

// populatePosts 批量回填作者与分类投影
func (s *PostServiceImpl) populatePosts(ctx context.Context, posts []*model.Post) ([]*dto.PostDTO, error) {
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	categoryIDs := make([]primitive.ObjectID, 0, len(posts))
	seenAuthors := make(map[primitive.ObjectID]struct{}, len(posts))
	seenCategories := make(map[primitive.ObjectID]struct{}, len(posts))
	for _, post := range posts {
		if _, ok := seenAuthors[post.Author]; !ok {
			seenAuthors[post.Author] = struct{}{}
			authorIDs = append(authorIDs, post.Author)
		}
		if _, ok := seenCategories[post.Category]; !ok {
			seenCategories[post.Category] = struct{}{}
			categoryIDs = append(categoryIDs, post.Category)
		}
	}

	users, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	userByID := make(map[primitive.ObjectID]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	categoryByID := make(map[primitive.ObjectID]*model.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		item := toPostDTO(post)
		if u, ok := userByID[post.Author]; ok {
			item.Author = toAuthorDTO(u)
		}
		if c, ok := categoryByID[post.Category]; ok {
			item.Category = &dto.CategoryDTO{ID: c.ID.Hex(), Name: c.Name, Slug: c.Slug}
		}
		items = append(items, item)
	}

	return items, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, post)
	item.ID = post.ID.Hex()
	item.LikeCount = post.LikeCount()
	item.CommentCount = post.CommentCount()
	return item
}

func toAuthorDTO(user *model.User) *dto.AuthorDTO {
	return &dto.AuthorDTO{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	}
}

func toPostES(post *model.Post) *es.PostES {
	return &es.PostES{
		ID:          post.ID.Hex(),
		Title:       post.Title,
		Content:     post.Content,
		Excerpt:     post.Excerpt,
		Tags:        post.Tags,
		Author:      post.Author.Hex(),
		Category:    post.Category.Hex(),
		Status:      post.Status,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrParamInvalid
	}
	return oid, nil
}

func normalizePage(page, limit int) (int64, int64) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return int64(page), int64(limit)
}

func buildPagination(total, page, limit int64) *dto.PaginationDTO {
	pages := (total + limit - 1) / limit
	return &dto.PaginationDTO{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
