package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"qualiguard-service/api"
	_ "qualiguard-service/docs"
	"qualiguard-service/logger"

	_ "qualiguard-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	PORT         = 8080
	BASE_CONTEXT = ""
)

func init() {
	if val := os.Getenv("LISTEN_PORT"); val != "" {
		PORT, _ = strconv.Atoi(val)
	}

	if val := os.Getenv("BASE_CONTEXT"); val != "" {
		BASE_CONTEXT = val
	}
}

// @title 验货记录服务 API
// @version 1.0
// @description 质量验货记录后台服务，提供验货、场地、产品、审核问题与证据图片的录入和查询功能
// @BasePath /
func main() {
	logger.InitLogger()

	mux := chi.NewRouter()

	// 如果有BASE_CONTEXT，则在该路径下挂载所有路由
	if BASE_CONTEXT != "" {
		mux.Route(BASE_CONTEXT, func(r chi.Router) {
			subMux := r.(*chi.Mux)
			api.InitRoute(subMux)
			r.Handle("/metrics", promhttp.Handler())
			r.Handle("/swagger*", httpSwagger.WrapHandler)
		})
	} else {
		api.InitRoute(mux)
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	addr := ":" + strconv.Itoa(PORT)
	log.Printf("服务启动，监听 %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Fatalf("error: %v", err)
	}
}
