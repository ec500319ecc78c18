/*
 * @module service/models/inspection
 * @description 验货记录主模型定义，一条验货对应一次完整的工厂审核
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @stateFlow 验货记录生命周期管理
 * @rules 验货编号全局唯一，分数字段使用定点小数，子表删除随主表级联
 * @dependencies gorm.io/gorm, github.com/shopspring/decimal
 * @refs dev_docs/requirements.md
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inspection 验货记录模型
type Inspection struct {
	ID                     uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	InspectionReference    string           `json:"inspectionReference" gorm:"column:inspection_reference;not null;size:50;unique"`
	InspectionType         *string          `json:"inspectionType" gorm:"column:inspection_type;size:100"`
	InspectionDate         time.Time        `json:"inspectionDate" gorm:"column:inspection_date;type:date;not null"`
	PlannedDate            *time.Time       `json:"plannedDate" gorm:"column:planned_date;type:date"`
	OverallResult          *string          `json:"overallResult" gorm:"column:overall_result;size:50"`
	InspectorRemark        *string          `json:"inspectorRemark" gorm:"column:inspector_remark;type:text"`
	InspectorName          *string          `json:"inspectorName" gorm:"column:inspector_name;size:200"`
	InspectorOrganization  *string          `json:"inspectorOrganization" gorm:"column:inspector_organization;size:200"`
	FcaTotalScore          *decimal.Decimal `json:"fcaTotalScore" gorm:"column:fca_total_score;type:decimal(5,2)"`
	FcaScoreExcluded       *decimal.Decimal `json:"fcaScoreExcluded" gorm:"column:fca_score_excluded;type:decimal(5,2)"`
	Timeline               *string          `json:"timeline" gorm:"column:timeline;size:200"`
	TimeCost               *string          `json:"timeCost" gorm:"column:time_cost;size:50"`
	YesCount               int              `json:"yesCount" gorm:"column:yes_count;default:0"`
	NaCount                int              `json:"naCount" gorm:"column:na_count;default:0"`
	IsSafetyFailed         bool             `json:"isSafetyFailed" gorm:"column:is_safety_failed;default:false"`
	ProductSafetyFailCount int              `json:"productSafetyFailCount" gorm:"column:product_safety_fail_count;default:0"`
	IsReaudit              bool             `json:"isReaudit" gorm:"column:is_reaudit;default:false"`
	LastFcaRcloudNumber    *string          `json:"lastFcaRcloudNumber" gorm:"column:last_fca_rcloud_number;size:100"`
	LastFcaTotalScore      *decimal.Decimal `json:"lastFcaTotalScore" gorm:"column:last_fca_total_score;type:decimal(5,2)"`
	GeneratedBy            *string          `json:"generatedBy" gorm:"column:generated_by;size:100"`
	GeneratedDate          *time.Time       `json:"generatedDate" gorm:"column:generated_date"`
	SiteID                 *uint            `json:"siteId" gorm:"column:site_id;index"`
	CreatedAt              time.Time        `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt              time.Time        `json:"updatedAt" gorm:"column:updated_at"`

	// 关联关系，仅在查询服务显式 Preload 时填充
	Site           *Site           `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	Products       []Product       `json:"products,omitempty" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	TestChecklists []TestChecklist `json:"testChecklists,omitempty" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
	Questions      []Question      `json:"questions,omitempty" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`

	// 仅用于建立 inspection_images.inspection_id 外键与级联，接口不直接返回
	Images []InspectionImage `json:"-" gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
}

// SiteInspectionBrief 场地列表附带的验货摘要，仅含编号与日期
type SiteInspectionBrief struct {
	ID                  uint      `json:"id"`
	InspectionReference string    `json:"inspectionReference"`
	InspectionDate      time.Time `json:"inspectionDate"`
	SiteID              *uint     `json:"siteId"`
}
