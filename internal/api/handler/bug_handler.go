package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type BugHandler struct {
	bugSvc service.BugService
}

func NewBugHandler(bugSvc service.BugService) *BugHandler {
	return &BugHandler{
		bugSvc: bugSvc,
	}
}

func (s *BugHandler) CreateBug(c *gin.Context) {
	var req dto.CreateBugDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.bugSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedSuccess(c, result)
}

func (s *BugHandler) ListBugs(c *gin.Context) {
	result, err := s.bugSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *BugHandler) UpdateBugStatus(c *gin.Context) {
	var req dto.UpdateBugStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.bugSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *BugHandler) DeleteBug(c *gin.Context) {
	if err := s.bugSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
