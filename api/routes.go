/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"qualiguard-service/api/controllers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 验货记录管理
	r.Route("/inspections", func(r chi.Router) {
		inspectionController := controllers.NewInspectionController()
		r.Get("/", inspectionController.GetInspections)
		r.Post("/", inspectionController.CreateInspection)
		r.Get("/stats/summary", inspectionController.GetSummaryStats)
		r.Get("/{id}", inspectionController.GetInspection)
		r.Put("/{id}", inspectionController.UpdateInspection)
		r.Delete("/{id}", inspectionController.DeleteInspection)
	})

	// 产品列表
	r.Route("/products", func(r chi.Router) {
		productController := controllers.NewProductController()
		r.Get("/", productController.GetProducts)
	})

	// 审核问题
	r.Route("/questions", func(r chi.Router) {
		questionController := controllers.NewQuestionController()
		r.Get("/inspection/{inspectionId}", questionController.GetQuestionsByInspection)
	})

	// 生产场地管理
	r.Route("/sites", func(r chi.Router) {
		siteController := controllers.NewSiteController()
		r.Get("/", siteController.GetSites)
		r.Post("/", siteController.CreateSite)
		r.Get("/{id}", siteController.GetSite)
	})
}
