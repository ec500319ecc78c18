/*
 * @module service/site/service
 * @description 生产场地业务逻辑服务，提供场地的查询、创建以及组合创建路径使用的按名称查找或创建
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 场地管理流程
 * @rules 场地名称唯一；按名称查找或创建必须在调用方事务内执行
 * @dependencies qualiguard-service/service/models, gorm.io/gorm
 * @refs dev_docs/model.md
 */

package site

import (
	"errors"

	"qualiguard-service/service/models"
	"qualiguard-service/service/utils"

	"gorm.io/gorm"
)

// Service 场地服务
type Service struct {
	db *gorm.DB
}

// NewService 创建场地服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SiteInput 场地创建载荷，经纬度兼容数字与数字字符串
type SiteInput struct {
	Name               string      `json:"name"`
	Address            *string     `json:"address"`
	City               *string     `json:"city"`
	Country            *string     `json:"country"`
	Latitude           interface{} `json:"latitude"`
	Longitude          interface{} `json:"longitude"`
	SiteRepresentative *string     `json:"siteRepresentative"`
}

// SiteWithInspectionBriefs 场地列表项，验货只回带编号与日期摘要
type SiteWithInspectionBriefs struct {
	models.Site
	Inspections []models.SiteInspectionBrief `json:"inspections"`
}

// Normalize 将载荷转换为场地模型，未提供的可选字段保持 NULL
func (in *SiteInput) Normalize() (*models.Site, error) {
	if in.Name == "" {
		return nil, utils.NewValidationError("场地名称不能为空", "name 不能为空")
	}

	lat, err := utils.ToDecimal("latitude", in.Latitude)
	if err != nil {
		return nil, utils.NewValidationError("场地字段校验失败", err.Error())
	}
	lng, err := utils.ToDecimal("longitude", in.Longitude)
	if err != nil {
		return nil, utils.NewValidationError("场地字段校验失败", err.Error())
	}

	return &models.Site{
		Name:               in.Name,
		Address:            in.Address,
		City:               in.City,
		Country:            in.Country,
		Latitude:           lat,
		Longitude:          lng,
		SiteRepresentative: in.SiteRepresentative,
	}, nil
}

// CreateSite 直接创建场地
func (s *Service) CreateSite(input *SiteInput) (*models.Site, error) {
	site, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(site).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("场地名称已存在", "name 必须唯一")
		}
		return nil, err
	}
	return site, nil
}

// FindOrCreateTx 在给定事务内按名称精确查找场地，不存在则创建。
// 组合创建路径专用；场地名称带唯一索引，并发重名插入会以唯一约束冲突失败而不是产生重复场地。
func (s *Service) FindOrCreateTx(tx *gorm.DB, input *SiteInput) (*models.Site, error) {
	var existing models.Site
	err := tx.Where("name = ?", input.Name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	site, err := input.Normalize()
	if err != nil {
		return nil, err
	}
	if err := tx.Create(site).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("场地名称已存在", "name 必须唯一")
		}
		return nil, err
	}
	return site, nil
}

// GetSites 获取全部场地，附带每个场地的验货摘要（仅编号与日期）
func (s *Service) GetSites() ([]SiteWithInspectionBriefs, error) {
	var sites []models.Site
	if err := s.db.Order("id ASC").Find(&sites).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(sites))
	for _, site := range sites {
		ids = append(ids, site.ID)
	}

	briefsBySite := make(map[uint][]models.SiteInspectionBrief)
	if len(ids) > 0 {
		var briefs []models.SiteInspectionBrief
		err := s.db.Model(&models.Inspection{}).
			Select("id", "inspection_reference", "inspection_date", "site_id").
			Where("site_id IN ?", ids).
			Scan(&briefs).Error
		if err != nil {
			return nil, err
		}
		for _, brief := range briefs {
			if brief.SiteID != nil {
				briefsBySite[*brief.SiteID] = append(briefsBySite[*brief.SiteID], brief)
			}
		}
	}

	result := make([]SiteWithInspectionBriefs, 0, len(sites))
	for _, site := range sites {
		briefs := briefsBySite[site.ID]
		if briefs == nil {
			briefs = []models.SiteInspectionBrief{}
		}
		result = append(result, SiteWithInspectionBriefs{Site: site, Inspections: briefs})
	}
	return result, nil
}

// GetSite 根据ID获取场地，附带完整验货列表
func (s *Service) GetSite(id uint) (*models.Site, error) {
	var site models.Site
	if err := s.db.Preload("Inspections").First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}
