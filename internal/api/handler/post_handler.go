package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.List(c.Request.Context(), &query, c.GetString(consts.CtxRoleKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	result, err := s.postSvc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.Create(c.Request.Context(), c.GetString(consts.CtxUserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, result)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.Update(c.Request.Context(),
		c.Param("id"),
		c.GetString(consts.CtxUserIDKey),
		c.GetString(consts.CtxRoleKey),
		&req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	err := s.postSvc.Delete(c.Request.Context(),
		c.Param("id"),
		c.GetString(consts.CtxUserIDKey),
		c.GetString(consts.CtxRoleKey),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) ToggleLike(c *gin.Context) {
	result, err := s.postSvc.ToggleLike(c.Request.Context(), c.Param("id"), c.GetString(consts.CtxUserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) AddComment(c *gin.Context) {
	var req dto.AddCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.AddComment(c.Request.Context(), c.Param("id"), c.GetString(consts.CtxUserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, result)
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	var query dto.SearchQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.postSvc.Search(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) PopularPosts(c *gin.Context) {
	result, err := s.postSvc.Popular(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
