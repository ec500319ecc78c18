/*
 * @module service/models/site
 * @description 生产场地模型定义，验货记录的归属场地
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 场地生命周期管理
 * @rules 场地名称全局唯一，支持按名称查找或创建
 * @dependencies gorm.io/gorm, github.com/shopspring/decimal
 * @refs dev_docs/requirements.md
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site 生产场地模型
type Site struct {
	ID                 uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name               string           `json:"name" gorm:"column:name;not null;size:300;uniqueIndex"`
	Address            *string          `json:"address" gorm:"column:address;type:text"`
	City               *string          `json:"city" gorm:"column:city;size:100"`
	Country            *string          `json:"country" gorm:"column:country;size:100"`
	Latitude           *decimal.Decimal `json:"latitude" gorm:"column:latitude;type:decimal(10,7)"`
	Longitude          *decimal.Decimal `json:"longitude" gorm:"column:longitude;type:decimal(10,7)"`
	SiteRepresentative *string          `json:"siteRepresentative" gorm:"column:site_representative;size:200"`
	CreatedAt          time.Time        `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt          time.Time        `json:"updatedAt" gorm:"column:updated_at"`

	// 关联关系
	Inspections []Inspection `json:"inspections,omitempty" gorm:"foreignKey:SiteID"`
}
