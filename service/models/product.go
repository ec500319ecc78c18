/*
 * @module service/models/product
 * @description 被验货产品模型定义，每个产品归属于一条验货记录
 * @architecture 分层架构 - 数据模型层
 * @documentReference dev_docs/model.md
 * @rules 产品必须携带归属验货ID，数量百分比使用定点小数
 * @dependencies gorm.io/gorm, github.com/shopspring/decimal
 * @refs dev_docs/requirements.md
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 被验货产品模型
type Product struct {
	ID                 uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	InspectionID       uint             `json:"inspectionId" gorm:"column:inspection_id;not null;index"`
	PoRef              *string          `json:"poRef" gorm:"column:po_ref;size:100"`
	Name               string           `json:"name" gorm:"column:name;not null;size:500"`
	Sku                *string          `json:"sku" gorm:"column:sku;size:100"`
	Description        *string          `json:"description" gorm:"column:description;type:text"`
	ShipmentDate       *time.Time       `json:"shipmentDate" gorm:"column:shipment_date;type:date"`
	OrderedQuantity    *int             `json:"orderedQuantity" gorm:"column:ordered_quantity"`
	OrderedUnit        string           `json:"orderedUnit" gorm:"column:ordered_unit;size:20;default:'Pcs'"`
	ProducedQuantity   *int             `json:"producedQuantity" gorm:"column:produced_quantity"`
	ProducedPercentage *decimal.Decimal `json:"producedPercentage" gorm:"column:produced_percentage;type:decimal(5,2)"`
	PackedQuantity     *int             `json:"packedQuantity" gorm:"column:packed_quantity"`
	PackedPercentage   *decimal.Decimal `json:"packedPercentage" gorm:"column:packed_percentage;type:decimal(5,2)"`
	EntityResponsible  *string          `json:"entityResponsible" gorm:"column:entity_responsible;size:300"`
	ProductionSite     *string          `json:"productionSite" gorm:"column:production_site;size:300"`
	CreatedAt          time.Time        `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt          time.Time        `json:"updatedAt" gorm:"column:updated_at"`

	// 关联关系，仅产品列表接口回带父验货记录
	Inspection *Inspection `json:"inspection,omitempty" gorm:"foreignKey:InspectionID"`
}
