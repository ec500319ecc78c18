/*
 * @module service/models/test_checklist
 * @description GAP-FCA 测试清单模型定义，记录每张表单的执行结果
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @rules 清单必须携带归属验货ID与清单名称
 * @dependencies gorm.io/gorm
 * @refs dev_docs/requirements.md
 */

package models

import "time"

// TestChecklist 测试清单模型
type TestChecklist struct {
	ID                  uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	InspectionID        uint       `json:"inspectionId" gorm:"column:inspection_id;not null;index"`
	ChecklistName       string     `json:"checklistName" gorm:"column:checklist_name;not null;size:200"`
	Result              *string    `json:"result" gorm:"column:result;size:50"`
	FcaForm             *string    `json:"fcaForm" gorm:"column:fca_form;size:100"`
	Form25Result        *string    `json:"form25Result" gorm:"column:form25_result;size:50"`
	Form25Conductor     *string    `json:"form25Conductor" gorm:"column:form25_conductor;size:100"`
	McoIssuedDate       *time.Time `json:"mcoIssuedDate" gorm:"column:mco_issued_date;type:date"`
	Form25CompletedDate *time.Time `json:"form25CompletedDate" gorm:"column:form25_completed_date;type:date"`
	HasClosedMeeting    *bool      `json:"hasClosedMeeting" gorm:"column:has_closed_meeting"`
	FindingsShared      *bool      `json:"findingsShared" gorm:"column:findings_shared"`
	CreatedAt           time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}
