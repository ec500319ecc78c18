/*
 * @module service/models/question
 * @description 审核问题与证据图片模型定义，图片可选归属到同一验货下的某个问题
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @rules 问题与图片必须携带归属验货ID；图片的 question_id 只允许指向同一验货的问题
 * @dependencies gorm.io/gorm
 * @refs dev_docs/requirements.md
 */

package models

import "time"

// Question 审核问题模型（Q1-Q25）
type Question struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	InspectionID   uint      `json:"inspectionId" gorm:"column:inspection_id;not null;index"`
	QuestionNumber string    `json:"questionNumber" gorm:"column:question_number;not null;size:10"`
	Section        string    `json:"section" gorm:"column:section;not null;size:200"`
	SectionType    *string   `json:"sectionType" gorm:"column:section_type;size:100"`
	MaxScore       *int      `json:"maxScore" gorm:"column:max_score"`
	QuestionText   string    `json:"questionText" gorm:"column:question_text;type:text;not null"`
	Answer         *string   `json:"answer" gorm:"column:answer;size:50"`
	Status         *string   `json:"status" gorm:"column:status;size:100"`
	Remarks        *string   `json:"remarks" gorm:"column:remarks;type:text"`
	Issues         *string   `json:"issues" gorm:"column:issues;type:text"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"column:updated_at"`

	// 关联关系
	Images []InspectionImage `json:"images,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// InspectionImage 验货证据图片模型
type InspectionImage struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	InspectionID uint      `json:"inspectionId" gorm:"column:inspection_id;not null;index"`
	QuestionID   *uint     `json:"questionId" gorm:"column:question_id;index"`
	ImagePath    *string   `json:"imagePath" gorm:"column:image_path;size:500"`
	ImageURL     *string   `json:"imageUrl" gorm:"column:image_url;size:1000"`
	Caption      *string   `json:"caption" gorm:"column:caption;type:text"`
	ImageType    *string   `json:"imageType" gorm:"column:image_type;size:50"` // evidence, defect, compliance
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at"`
}
