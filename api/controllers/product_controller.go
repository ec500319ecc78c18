/*
 * @module api/controllers/product_controller
 * @description 产品API控制器，返回全部产品及其父验货记录
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式
 * @dependencies qualiguard-service/service, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package controllers

import (
	"net/http"

	"qualiguard-service/service"
	"qualiguard-service/service/inspection"

	"github.com/go-chi/render"
)

// ProductController 产品控制器
type ProductController struct {
	service *inspection.Service
}

// NewProductController 创建产品控制器实例
func NewProductController() *ProductController {
	return &ProductController{
		service: service.GlobalInspectionService,
	}
}

// GetProducts 获取产品列表
// @Summary 获取产品列表
// @Description 返回全部产品，附带父验货记录
// @Tags 产品
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.Product}
// @Failure 500 {object} APIResponse
// @Router /products [get]
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.GetProducts()
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, SuccessResponse("查询成功", products))
}
