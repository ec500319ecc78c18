/*
 * @module api/controllers/question_controller
 * @description 审核问题API控制器，按验货ID返回问题及证据图片
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 问题按编号字符串升序返回
 * @dependencies qualiguard-service/service, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"net/http"
	"strconv"

	"qualiguard-service/service"
	"qualiguard-service/service/inspection"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// QuestionController 审核问题控制器
type QuestionController struct {
	service *inspection.Service
}

// NewQuestionController 创建审核问题控制器实例
func NewQuestionController() *QuestionController {
	return &QuestionController{
		service: service.GlobalInspectionService,
	}
}

// GetQuestionsByInspection 获取指定验货的问题列表
// @Summary 获取指定验货的问题列表
// @Description 返回该验货下全部问题及图片，按问题编号字符串升序
// @Tags 审核问题
// @Produce json
// @Param inspectionId path int true "验货ID"
// @Success 200 {object} APIResponse{data=[]models.Question}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /questions/inspection/{inspectionId} [get]
func (c *QuestionController) GetQuestionsByInspection(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "inspectionId")
	inspectionID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || inspectionID == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("inspectionId参数不合法", nil))
		return
	}

	questions, err := c.service.GetQuestionsByInspection(uint(inspectionID))
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", questions))
}
