/*
 * @module api/controllers/inspection_controller
 * @description 验货记录API控制器，处理验货的组合创建、查询、更新、删除与统计请求
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式，参数验证
 * @dependencies qualiguard-service/service, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"qualiguard-service/service"
	"qualiguard-service/service/inspection"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// InspectionController 验货记录控制器
type InspectionController struct {
	service *inspection.Service
}

// NewInspectionController 创建验货记录控制器实例
func NewInspectionController() *InspectionController {
	return &InspectionController{
		service: service.GlobalInspectionService,
	}
}

// GetInspections 获取验货列表
// @Summary 获取验货列表
// @Description 分页获取验货记录，支持按编号子串与日期区间过滤，附带产品、场地与测试清单
// @Tags 验货记录
// @Produce json
// @Param page query int false "页码，从1开始" default(1)
// @Param limit query int false "每页条数" default(10)
// @Param search query string false "验货编号子串"
// @Param fromDate query string false "起始日期 2006-01-02"
// @Param toDate query string false "截止日期 2006-01-02"
// @Success 200 {object} PaginatedResponse{data=[]models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /inspections [get]
func (c *InspectionController) GetInspections(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	search := r.URL.Query().Get("search")
	fromDate := r.URL.Query().Get("fromDate")
	toDate := r.URL.Query().Get("toDate")

	inspections, total, totalPages, err := c.service.GetInspections(page, limit, search, fromDate, toDate)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, &PaginatedResponse{
		Status:     0,
		Msg:        "查询成功",
		Data:       inspections,
		Total:      total,
		Page:       page,
		Size:       limit,
		TotalPages: totalPages,
	})
}

// GetInspection 获取验货详情
// @Summary 获取验货详情
// @Description 根据ID获取验货记录，附带产品、场地、测试清单与问题及图片
// @Tags 验货记录
// @Produce json
// @Param id path int true "验货ID"
// @Success 200 {object} APIResponse{data=models.Inspection}
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /inspections/{id} [get]
func (c *InspectionController) GetInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	insp, err := c.service.GetInspection(id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", insp))
}

// CreateInspection 组合创建验货记录
// @Summary 组合创建验货记录
// @Description 在一个事务内创建验货记录及其场地、产品、测试清单、问题与图片，任一步失败整体回滚
// @Tags 验货记录
// @Accept json
// @Produce json
// @Param payload body inspection.CreateInspectionRequest true "组合创建载荷"
// @Success 201 {object} APIResponse{data=models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /inspections [post]
func (c *InspectionController) CreateInspection(w http.ResponseWriter, r *http.Request) {
	var req inspection.CreateInspectionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	insp, err := c.service.CreateInspection(&req)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SuccessResponse("创建成功", insp))
}

// UpdateInspection 更新验货记录
// @Summary 更新验货记录
// @Description 按字段合并更新验货记录，载荷中未出现的字段保持不变
// @Tags 验货记录
// @Accept json
// @Produce json
// @Param id path int true "验货ID"
// @Param payload body inspection.InspectionUpdateInput true "更新字段"
// @Success 200 {object} APIResponse{data=models.Inspection}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /inspections/{id} [put]
func (c *InspectionController) UpdateInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req inspection.InspectionUpdateInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	insp, err := c.service.UpdateInspection(id, &req)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("更新成功", insp))
}

// DeleteInspection 删除验货记录
// @Summary 删除验货记录
// @Description 删除验货记录，产品、测试清单、问题与图片随外键级联删除
// @Tags 验货记录
// @Produce json
// @Param id path int true "验货ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /inspections/{id} [delete]
func (c *InspectionController) DeleteInspection(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteInspection(id); err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("删除成功", nil))
}

// GetSummaryStats 获取验货统计
// @Summary 获取验货统计
// @Description 返回验货总数、通过数、失败数与通过率（两位小数）
// @Tags 验货记录
// @Produce json
// @Success 200 {object} APIResponse{data=inspection.SummaryStats}
// @Failure 500 {object} APIResponse
// @Router /inspections/stats/summary [get]
func (c *InspectionController) GetSummaryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.GetSummaryStats()
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", stats))
}

// parseIDParam 解析路径中的整数ID，不合法时直接响应400
func parseIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("ID参数不合法", nil))
		return 0, false
	}
	return uint(id), true
}
