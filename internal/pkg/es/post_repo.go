package es

import (
	"Inkstone/internal/pkg/consts"
	"context"
	"errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type PostRepo interface {
	SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, int64, error)
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

// SearchPosts 对已发布帖子做全文检索，标题权重最高，同时返回命中总数
func (s *PostRepoImpl) SearchPosts(ctx context.Context, keyword string, from, size int) ([]*PostES, int64, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, 0, nil
	}

	if keyword == "" {
		return []*PostES{}, 0, nil
	}

	query := &types.Query{
		Bool: &types.BoolQuery{
			Must: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  keyword,
						Fields: []string{"title^3", "content", "excerpt^2", "tags^2"},
					},
				},
			},
			Filter: []types.Query{
				{
					Term: map[string]types.TermQuery{
						"status": {Value: consts.PostStatusPublished},
					},
				},
			},
		},
	}

	req := s.client.Search().
		Index(PostIndex).
		Query(query).
		From(from).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	_, err := s.client.Index(PostIndex).
		Id(post.ID).
		Document(post).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(PostIndex, id).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, int64, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var post PostES
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		results = append(results, &post)
	}
	return results, total, nil
}
