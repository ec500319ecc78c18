/*
 * @module api/controllers/site_controller
 * @description 生产场地API控制器，处理场地的列表、详情与创建请求
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

	"qualiguard-service/service"
	"qualiguard-service/service/site"

	"github.com/go-chi/render"
)

// SiteController 生产场地控制器
type SiteController struct {
	service *site.Service
}

// NewSiteController 创建生产场地控制器实例
func NewSiteController() *SiteController {
	return &SiteController{
		service: service.GlobalSiteService,
	}
}

// GetSites 获取场地列表
// @Summary 获取场地列表
// @Description 返回全部场地，每个场地附带验货摘要（编号与日期）
// @Tags 生产场地
// @Produce json
// @Success 200 {object} APIResponse{data=[]site.SiteWithInspectionBriefs}
// @Failure 500 {object} APIResponse
// @Router /sites [get]
func (c *SiteController) GetSites(w http.ResponseWriter, r *http.Request) {
	sites, err := c.service.GetSites()
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", sites))
}

// GetSite 获取场地详情
// @Summary 获取场地详情
// @Description 根据ID获取场地，附带完整验货列表
// @Tags 生产场地
// @Produce json
// @Param id path int true "场地ID"
// @Success 200 {object} APIResponse{data=models.Site}
// @Failure 404 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /sites/{id} [get]
func (c *SiteController) GetSite(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	siteRecord, err := c.service.GetSite(id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", siteRecord))
}

// CreateSite 创建场地
// @Summary 创建场地
// @Description 创建新的生产场地，场地名称全局唯一
// @Tags 生产场地
// @Accept json
// @Produce json
// @Param payload body site.SiteInput true "场地信息"
// @Success 201 {object} APIResponse{data=models.Site}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /sites [post]
func (c *SiteController) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req site.SiteInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse(fmt.Sprintf("请求参数格式错误:%s", err.Error()), nil))
		return
	}

	siteRecord, err := c.service.CreateSite(&req)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, SuccessResponse("创建成功", siteRecord))
}
