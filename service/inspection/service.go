/*
 * @module service/inspection/service
 * @description 验货业务逻辑服务，提供组合事务创建、分页查询、详情查询、部分更新、删除与汇总统计
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 组合创建：场地查找或创建 -> 验货主记录 -> 产品/清单 -> 问题 -> 图片 -> 提交
 * @rules
 *   - 组合创建在单个事务内执行，任一步失败整体回滚，不允许部分落库
 *   - 图片按问题编号只在本次创建的问题中解析，未命中的图片按既定策略静默丢弃
 *   - 问题列表按 question_number 字符串排序（保留原始行为，"10" 排在 "2" 前）
 * @dependencies qualiguard-service/service/models, qualiguard-service/service/site, gorm.io/gorm
 * @refs dev_docs/model.md
 */

package inspection

import (
	"errors"
	"fmt"

	"qualiguard-service/service/models"
	"qualiguard-service/service/site"
	"qualiguard-service/service/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service 验货服务
type Service struct {
	db    *gorm.DB
	sites *site.Service
}

// NewService 创建验货服务实例
func NewService(db *gorm.DB, sites *site.Service) *Service {
	return &Service{db: db, sites: sites}
}

// SummaryStats 验货汇总统计
type SummaryStats struct {
	Total    int64   `json:"total"`
	Passed   int64   `json:"passed"`
	Failed   int64   `json:"failed"`
	PassRate float64 `json:"passRate"`
}

// CreateInspection 组合创建验货记录及全部子记录，整体在一个事务内执行。
// 图片载荷按 questionNumber 在本次创建的问题中解析归属；没有命中的图片被丢弃，事务照常提交。
// 返回创建完成后带全部关联的验货记录。
func (s *Service) CreateInspection(req *CreateInspectionRequest) (*models.Inspection, error) {
	var inspectionID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var siteID *uint
		if req.Site != nil && req.Site.Name != "" {
			siteRecord, err := s.sites.FindOrCreateTx(tx, req.Site)
			if err != nil {
				return fmt.Errorf("创建场地失败: %w", err)
			}
			siteID = &siteRecord.ID
		}

		insp, err := normalizeInspection(&req.Inspection)
		if err != nil {
			return err
		}
		insp.SiteID = siteID

		if err := tx.Create(insp).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewValidationError("验货编号已存在",
					"inspection.inspectionReference 必须全局唯一")
			}
			return fmt.Errorf("创建验货记录失败: %w", err)
		}
		inspectionID = insp.ID

		if len(req.Products) > 0 {
			products := make([]models.Product, 0, len(req.Products))
			for i := range req.Products {
				product, err := normalizeProduct(i, &req.Products[i], insp.ID)
				if err != nil {
					return err
				}
				products = append(products, *product)
			}
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("创建产品失败: %w", err)
			}
		}

		if len(req.TestChecklists) > 0 {
			checklists := make([]models.TestChecklist, 0, len(req.TestChecklists))
			for i := range req.TestChecklists {
				checklist, err := normalizeChecklist(i, &req.TestChecklists[i], insp.ID)
				if err != nil {
					return err
				}
				checklists = append(checklists, *checklist)
			}
			if err := tx.Create(&checklists).Error; err != nil {
				return fmt.Errorf("创建测试清单失败: %w", err)
			}
		}

		if len(req.Questions) > 0 {
			questions := make([]models.Question, 0, len(req.Questions))
			for i := range req.Questions {
				question, err := normalizeQuestion(i, &req.Questions[i], insp.ID)
				if err != nil {
					return err
				}
				questions = append(questions, *question)
			}
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("创建审核问题失败: %w", err)
			}

			if len(req.Images) > 0 {
				// 问题编号到主键的映射只覆盖本次创建的问题，绝不跨验货查找
				questionIDs := make(map[string]uint, len(questions))
				for _, q := range questions {
					questionIDs[q.QuestionNumber] = q.ID
				}

				images := make([]models.InspectionImage, 0, len(req.Images))
				for _, img := range req.Images {
					if img.QuestionNumber == nil {
						continue
					}
					questionID, ok := questionIDs[*img.QuestionNumber]
					if !ok {
						continue
					}
					qid := questionID
					images = append(images, models.InspectionImage{
						InspectionID: insp.ID,
						QuestionID:   &qid,
						ImagePath:    img.ImagePath,
						ImageURL:     img.ImageURL,
						Caption:      img.Caption,
						ImageType:    img.ImageType,
					})
				}
				if len(images) > 0 {
					if err := tx.Create(&images).Error; err != nil {
						return fmt.Errorf("创建证据图片失败: %w", err)
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetInspection(inspectionID)
}

// GetInspections 分页查询验货列表，按验货日期倒序，附带产品、场地与测试清单。
// search 对验货编号做子串匹配；fromDate/toDate 同时给出时按闭区间过滤，否则不过滤日期。
func (s *Service) GetInspections(page, pageSize int, search, fromDate, toDate string) ([]models.Inspection, int64, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := s.db.Model(&models.Inspection{})
	if search != "" {
		query = query.Where("inspection_reference LIKE ?", "%"+search+"%")
	}
	if fromDate != "" && toDate != "" {
		from, err := utils.ParseDate("fromDate", fromDate)
		if err != nil {
			return nil, 0, 0, utils.NewValidationError("日期范围参数不合法", err.Error())
		}
		to, err := utils.ParseDate("toDate", toDate)
		if err != nil {
			return nil, 0, 0, utils.NewValidationError("日期范围参数不合法", err.Error())
		}
		query = query.Where("inspection_date BETWEEN ? AND ?", from, to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var inspections []models.Inspection
	err := query.
		Preload("Products").
		Preload("Site").
		Preload("TestChecklists").
		Order("inspection_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&inspections).Error
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return inspections, total, totalPages, nil
}

// GetInspection 根据ID获取验货详情，附带产品、场地、测试清单与问题及图片
func (s *Service) GetInspection(id uint) (*models.Inspection, error) {
	var insp models.Inspection
	err := s.db.
		Preload("Products").
		Preload("Site").
		Preload("TestChecklists").
		Preload("Questions").
		Preload("Questions.Images").
		First(&insp, id).Error
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

// InspectionUpdateInput 部分更新载荷，未出现的字段保持不变
type InspectionUpdateInput struct {
	InspectionReference    *string     `json:"inspectionReference"`
	InspectionType         *string     `json:"inspectionType"`
	InspectionDate         *string     `json:"inspectionDate"`
	PlannedDate            *string     `json:"plannedDate"`
	OverallResult          *string     `json:"overallResult"`
	InspectorRemark        *string     `json:"inspectorRemark"`
	InspectorName          *string     `json:"inspectorName"`
	InspectorOrganization  *string     `json:"inspectorOrganization"`
	FcaTotalScore          interface{} `json:"fcaTotalScore"`
	FcaScoreExcluded       interface{} `json:"fcaScoreExcluded"`
	Timeline               *string     `json:"timeline"`
	TimeCost               *string     `json:"timeCost"`
	YesCount               interface{} `json:"yesCount"`
	NaCount                interface{} `json:"naCount"`
	IsSafetyFailed         *bool       `json:"isSafetyFailed"`
	ProductSafetyFailCount interface{} `json:"productSafetyFailCount"`
	IsReaudit              *bool       `json:"isReaudit"`
	LastFcaRcloudNumber    *string     `json:"lastFcaRcloudNumber"`
	LastFcaTotalScore      interface{} `json:"lastFcaTotalScore"`
	GeneratedBy            *string     `json:"generatedBy"`
	GeneratedDate          *string     `json:"generatedDate"`
	SiteID                 interface{} `json:"siteId"`
}

// UpdateInspection 按字段合并更新验货记录，记录不存在返回未找到
func (s *Service) UpdateInspection(id uint, input *InspectionUpdateInput) (*models.Inspection, error) {
	var existing models.Inspection
	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, err
	}

	updates, err := buildUpdates(input)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, utils.NewValidationError("验货编号已存在",
					"inspectionReference 必须全局唯一")
			}
			return nil, err
		}
	}

	if err := s.db.First(&existing, id).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// buildUpdates 将部分更新载荷转换为列名到值的更新映射
func buildUpdates(input *InspectionUpdateInput) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if input.InspectionReference != nil {
		updates["inspection_reference"] = *input.InspectionReference
	}
	if input.InspectionType != nil {
		updates["inspection_type"] = *input.InspectionType
	}
	if input.InspectionDate != nil {
		date, err := utils.ParseDate("inspectionDate", *input.InspectionDate)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["inspection_date"] = date
	}
	if input.PlannedDate != nil {
		date, err := utils.ParseDatePtr("plannedDate", input.PlannedDate)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["planned_date"] = date
	}
	if input.OverallResult != nil {
		updates["overall_result"] = *input.OverallResult
	}
	if input.InspectorRemark != nil {
		updates["inspector_remark"] = *input.InspectorRemark
	}
	if input.InspectorName != nil {
		updates["inspector_name"] = *input.InspectorName
	}
	if input.InspectorOrganization != nil {
		updates["inspector_organization"] = *input.InspectorOrganization
	}
	if input.FcaTotalScore != nil {
		d, err := utils.ToDecimal("fcaTotalScore", input.FcaTotalScore)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["fca_total_score"] = d
	}
	if input.FcaScoreExcluded != nil {
		d, err := utils.ToDecimal("fcaScoreExcluded", input.FcaScoreExcluded)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["fca_score_excluded"] = d
	}
	if input.Timeline != nil {
		updates["timeline"] = *input.Timeline
	}
	if input.TimeCost != nil {
		updates["time_cost"] = *input.TimeCost
	}
	if input.YesCount != nil {
		n, err := utils.ToInt("yesCount", input.YesCount, 0)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["yes_count"] = n
	}
	if input.NaCount != nil {
		n, err := utils.ToInt("naCount", input.NaCount, 0)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["na_count"] = n
	}
	if input.IsSafetyFailed != nil {
		updates["is_safety_failed"] = *input.IsSafetyFailed
	}
	if input.ProductSafetyFailCount != nil {
		n, err := utils.ToInt("productSafetyFailCount", input.ProductSafetyFailCount, 0)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["product_safety_fail_count"] = n
	}
	if input.IsReaudit != nil {
		updates["is_reaudit"] = *input.IsReaudit
	}
	if input.LastFcaRcloudNumber != nil {
		updates["last_fca_rcloud_number"] = *input.LastFcaRcloudNumber
	}
	if input.LastFcaTotalScore != nil {
		d, err := utils.ToDecimal("lastFcaTotalScore", input.LastFcaTotalScore)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["last_fca_total_score"] = d
	}
	if input.GeneratedBy != nil {
		updates["generated_by"] = *input.GeneratedBy
	}
	if input.GeneratedDate != nil {
		date, err := utils.ParseDatePtr("generatedDate", input.GeneratedDate)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["generated_date"] = date
	}
	if input.SiteID != nil {
		siteID, err := utils.ToIntPtr("siteId", input.SiteID)
		if err != nil {
			return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
		}
		updates["site_id"] = siteID
	}

	return updates, nil
}

// DeleteInspection 删除验货记录，子记录由外键级联删除，记录不存在返回未找到
func (s *Service) DeleteInspection(id uint) error {
	var existing models.Inspection
	if err := s.db.First(&existing, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&existing).Error
}

// GetSummaryStats 汇总统计：总数、Pass 数、Fail 数与通过率（保留两位小数，总数为零时为 0）
func (s *Service) GetSummaryStats() (*SummaryStats, error) {
	stats := &SummaryStats{}

	if err := s.db.Model(&models.Inspection{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Inspection{}).
		Where("overall_result = ?", "Pass").Count(&stats.Passed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Inspection{}).
		Where("overall_result = ?", "Fail").Count(&stats.Failed).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		rate := decimal.NewFromInt(stats.Passed).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(stats.Total)).
			Round(2)
		stats.PassRate = rate.InexactFloat64()
	}
	return stats, nil
}

// GetQuestionsByInspection 获取指定验货的问题列表及图片，按问题编号字符串升序
func (s *Service) GetQuestionsByInspection(inspectionID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.
		Preload("Images").
		Where("inspection_id = ?", inspectionID).
		Order("question_number ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetProducts 获取全部产品，附带父验货记录
func (s *Service) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Inspection").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
