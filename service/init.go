/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、连接池配置、迁移执行与各业务服务的创建
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保数据库连接与迁移成功后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs dev_docs/model.md
 */

package service

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"qualiguard-service/service/database"
	"qualiguard-service/service/inspection"
	"qualiguard-service/service/site"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                      *gorm.DB
	GlobalSiteService       *site.Service
	GlobalInspectionService *inspection.Service
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "")
		dbname := getEnvWithDefault("DB_NAME", "qualiguard")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	// TranslateError 让唯一约束冲突统一转换为 gorm.ErrDuplicatedKey
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	configureConnectionPool()

	log.Println("数据库连接成功")
}

// configureConnectionPool 配置底层连接池，连接数与空闲超时交由驱动管理
func configureConnectionPool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("获取底层连接池失败: %v", err)
	}

	maxOpen := getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 10)
	maxIdle := getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 2)

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(10 * time.Second)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntWithDefault 获取整数环境变量，解析失败返回默认值
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
}

// initServices 初始化业务服务
func initServices() {
	GlobalSiteService = site.NewService(DB)
	GlobalInspectionService = inspection.NewService(DB, GlobalSiteService)
}
