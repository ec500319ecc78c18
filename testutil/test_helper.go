/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数，提供内存数据库与测试数据工厂
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, uuid, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"qualiguard-service/service/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建内存测试数据库
// 开启外键约束以验证级联删除，cache=shared 防止连接池换连接时丢库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get sql.DB: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Site{},
		&models.Inspection{},
		&models.Product{},
		&models.TestChecklist{},
		&models.Question{},
		&models.InspectionImage{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库，先子表后主表
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"inspection_images",
		"questions",
		"test_checklists",
		"products",
		"inspections",
		"sites",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// UniqueReference 生成测试用的唯一验货编号
func UniqueReference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

// InsertInspection 直接插入一条最小验货记录，返回其主键
func (tdb *TestDB) InsertInspection(reference string, date time.Time, overallResult string) uint {
	insp := models.Inspection{
		InspectionReference: reference,
		InspectionDate:      date,
		OverallResult:       &overallResult,
	}
	if err := tdb.DB.Create(&insp).Error; err != nil {
		panic(fmt.Sprintf("failed to insert test inspection: %v", err))
	}
	return insp.ID
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// BoolPtr 返回布尔指针
func BoolPtr(b bool) *bool {
	return &b
}
