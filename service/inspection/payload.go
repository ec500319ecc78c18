/*
 * @module service/inspection/payload
 * @description 组合创建载荷定义与字段规范化，数字字段兼容数字字符串，缺省可选字段保持 NULL
 * @architecture 分层架构 - 业务服务层（输入规范化）
 * @documentReference dev_docs/requirements.md
 * @stateFlow 请求载荷 -> 字段校验与默认值 -> 实体模型
 * @rules
 *   - inspectionType 缺省 "PSI"，overallResult 缺省 "N/A"，计数缺省 0，布尔缺省 false
 *   - generatedBy 缺省系统标识，generatedDate 缺省当前时间
 *   - 数字字符串转换失败返回字段级校验错误，绝不静默归零
 * @dependencies qualiguard-service/service/models, qualiguard-service/service/utils
 * @refs dev_docs/model.md
 */

package inspection

import (
	"fmt"
	"time"

	"qualiguard-service/service/models"
	"qualiguard-service/service/site"
	"qualiguard-service/service/utils"
)

const (
	defaultInspectionType = "PSI"
	defaultOverallResult  = "N/A"
	defaultGeneratedBy    = "QualiGuard System"
	defaultOrderedUnit    = "Pcs"
)

// CreateInspectionRequest 组合创建请求体
type CreateInspectionRequest struct {
	Inspection     InspectionInput  `json:"inspection"`
	Site           *site.SiteInput  `json:"site"`
	Products       []ProductInput   `json:"products"`
	TestChecklists []ChecklistInput `json:"testChecklists"`
	Questions      []QuestionInput  `json:"questions"`
	Images         []ImageInput     `json:"images"`
}

// InspectionInput 验货主记录载荷
type InspectionInput struct {
	InspectionReference    string      `json:"inspectionReference"`
	InspectionType         *string     `json:"inspectionType"`
	InspectionDate         string      `json:"inspectionDate"`
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
}

// ProductInput 产品载荷
type ProductInput struct {
	PoRef              *string     `json:"poRef"`
	Name               string      `json:"name"`
	Sku                *string     `json:"sku"`
	Description        *string     `json:"description"`
	ShipmentDate       *string     `json:"shipmentDate"`
	OrderedQuantity    interface{} `json:"orderedQuantity"`
	OrderedUnit        *string     `json:"orderedUnit"`
	ProducedQuantity   interface{} `json:"producedQuantity"`
	ProducedPercentage interface{} `json:"producedPercentage"`
	PackedQuantity     interface{} `json:"packedQuantity"`
	PackedPercentage   interface{} `json:"packedPercentage"`
	EntityResponsible  *string     `json:"entityResponsible"`
	ProductionSite     *string     `json:"productionSite"`
}

// ChecklistInput 测试清单载荷
type ChecklistInput struct {
	ChecklistName       string  `json:"checklistName"`
	Result              *string `json:"result"`
	FcaForm             *string `json:"fcaForm"`
	Form25Result        *string `json:"form25Result"`
	Form25Conductor     *string `json:"form25Conductor"`
	McoIssuedDate       *string `json:"mcoIssuedDate"`
	Form25CompletedDate *string `json:"form25CompletedDate"`
	HasClosedMeeting    *bool   `json:"hasClosedMeeting"`
	FindingsShared      *bool   `json:"findingsShared"`
}

// QuestionInput 审核问题载荷
type QuestionInput struct {
	QuestionNumber string      `json:"questionNumber"`
	Section        string      `json:"section"`
	SectionType    *string     `json:"sectionType"`
	MaxScore       interface{} `json:"maxScore"`
	QuestionText   string      `json:"questionText"`
	Answer         *string     `json:"answer"`
	Status         *string     `json:"status"`
	Remarks        *string     `json:"remarks"`
	Issues         *string     `json:"issues"`
}

// ImageInput 证据图片载荷，questionNumber 指向同一请求内的问题编号
type ImageInput struct {
	QuestionNumber *string `json:"questionNumber"`
	ImagePath      *string `json:"imagePath"`
	ImageURL       *string `json:"imageUrl"`
	Caption        *string `json:"caption"`
	ImageType      *string `json:"imageType"`
}

// normalizeInspection 校验并填充验货主记录的默认值
func normalizeInspection(in *InspectionInput) (*models.Inspection, error) {
	var fields []string
	if in.InspectionReference == "" {
		fields = append(fields, "inspection.inspectionReference 不能为空")
	}
	if in.InspectionDate == "" {
		fields = append(fields, "inspection.inspectionDate 不能为空")
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError("验货记录缺少必填字段", fields...)
	}

	inspectionDate, err := utils.ParseDate("inspection.inspectionDate", in.InspectionDate)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	plannedDate, err := utils.ParseDatePtr("inspection.plannedDate", in.PlannedDate)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	generatedDate, err := utils.ParseDatePtr("inspection.generatedDate", in.GeneratedDate)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}

	fcaTotalScore, err := utils.ToDecimal("inspection.fcaTotalScore", in.FcaTotalScore)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	fcaScoreExcluded, err := utils.ToDecimal("inspection.fcaScoreExcluded", in.FcaScoreExcluded)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	lastFcaTotalScore, err := utils.ToDecimal("inspection.lastFcaTotalScore", in.LastFcaTotalScore)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}

	yesCount, err := utils.ToInt("inspection.yesCount", in.YesCount, 0)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	naCount, err := utils.ToInt("inspection.naCount", in.NaCount, 0)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}
	safetyFailCount, err := utils.ToInt("inspection.productSafetyFailCount", in.ProductSafetyFailCount, 0)
	if err != nil {
		return nil, utils.NewValidationError("验货记录字段校验失败", err.Error())
	}

	inspectionType := defaultInspectionType
	if in.InspectionType != nil && *in.InspectionType != "" {
		inspectionType = *in.InspectionType
	}
	overallResult := defaultOverallResult
	if in.OverallResult != nil && *in.OverallResult != "" {
		overallResult = *in.OverallResult
	}
	generatedBy := defaultGeneratedBy
	if in.GeneratedBy != nil && *in.GeneratedBy != "" {
		generatedBy = *in.GeneratedBy
	}
	if generatedDate == nil {
		now := time.Now()
		generatedDate = &now
	}

	isSafetyFailed := false
	if in.IsSafetyFailed != nil {
		isSafetyFailed = *in.IsSafetyFailed
	}
	isReaudit := false
	if in.IsReaudit != nil {
		isReaudit = *in.IsReaudit
	}

	return &models.Inspection{
		InspectionReference:    in.InspectionReference,
		InspectionType:         &inspectionType,
		InspectionDate:         inspectionDate,
		PlannedDate:            plannedDate,
		OverallResult:          &overallResult,
		InspectorRemark:        in.InspectorRemark,
		InspectorName:          in.InspectorName,
		InspectorOrganization:  in.InspectorOrganization,
		FcaTotalScore:          fcaTotalScore,
		FcaScoreExcluded:       fcaScoreExcluded,
		Timeline:               in.Timeline,
		TimeCost:               in.TimeCost,
		YesCount:               yesCount,
		NaCount:                naCount,
		IsSafetyFailed:         isSafetyFailed,
		ProductSafetyFailCount: safetyFailCount,
		IsReaudit:              isReaudit,
		LastFcaRcloudNumber:    in.LastFcaRcloudNumber,
		LastFcaTotalScore:      lastFcaTotalScore,
		GeneratedBy:            &generatedBy,
		GeneratedDate:          generatedDate,
	}, nil
}

// normalizeProduct 校验并转换产品载荷
func normalizeProduct(index int, in *ProductInput, inspectionID uint) (*models.Product, error) {
	if in.Name == "" {
		return nil, utils.NewValidationError("产品缺少必填字段",
			fieldAt("products", index, "name 不能为空"))
	}

	shipmentDate, err := utils.ParseDatePtr(fieldAt("products", index, "shipmentDate"), in.ShipmentDate)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}
	orderedQty, err := utils.ToIntPtr(fieldAt("products", index, "orderedQuantity"), in.OrderedQuantity)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}
	producedQty, err := utils.ToIntPtr(fieldAt("products", index, "producedQuantity"), in.ProducedQuantity)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}
	producedPct, err := utils.ToDecimal(fieldAt("products", index, "producedPercentage"), in.ProducedPercentage)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}
	packedQty, err := utils.ToIntPtr(fieldAt("products", index, "packedQuantity"), in.PackedQuantity)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}
	packedPct, err := utils.ToDecimal(fieldAt("products", index, "packedPercentage"), in.PackedPercentage)
	if err != nil {
		return nil, utils.NewValidationError("产品字段校验失败", err.Error())
	}

	orderedUnit := defaultOrderedUnit
	if in.OrderedUnit != nil && *in.OrderedUnit != "" {
		orderedUnit = *in.OrderedUnit
	}

	return &models.Product{
		InspectionID:       inspectionID,
		PoRef:              in.PoRef,
		Name:               in.Name,
		Sku:                in.Sku,
		Description:        in.Description,
		ShipmentDate:       shipmentDate,
		OrderedQuantity:    orderedQty,
		OrderedUnit:        orderedUnit,
		ProducedQuantity:   producedQty,
		ProducedPercentage: producedPct,
		PackedQuantity:     packedQty,
		PackedPercentage:   packedPct,
		EntityResponsible:  in.EntityResponsible,
		ProductionSite:     in.ProductionSite,
	}, nil
}

// normalizeChecklist 校验并转换测试清单载荷
func normalizeChecklist(index int, in *ChecklistInput, inspectionID uint) (*models.TestChecklist, error) {
	if in.ChecklistName == "" {
		return nil, utils.NewValidationError("测试清单缺少必填字段",
			fieldAt("testChecklists", index, "checklistName 不能为空"))
	}

	mcoIssuedDate, err := utils.ParseDatePtr(fieldAt("testChecklists", index, "mcoIssuedDate"), in.McoIssuedDate)
	if err != nil {
		return nil, utils.NewValidationError("测试清单字段校验失败", err.Error())
	}
	form25CompletedDate, err := utils.ParseDatePtr(fieldAt("testChecklists", index, "form25CompletedDate"), in.Form25CompletedDate)
	if err != nil {
		return nil, utils.NewValidationError("测试清单字段校验失败", err.Error())
	}

	return &models.TestChecklist{
		InspectionID:        inspectionID,
		ChecklistName:       in.ChecklistName,
		Result:              in.Result,
		FcaForm:             in.FcaForm,
		Form25Result:        in.Form25Result,
		Form25Conductor:     in.Form25Conductor,
		McoIssuedDate:       mcoIssuedDate,
		Form25CompletedDate: form25CompletedDate,
		HasClosedMeeting:    in.HasClosedMeeting,
		FindingsShared:      in.FindingsShared,
	}, nil
}

// normalizeQuestion 校验并转换审核问题载荷
func normalizeQuestion(index int, in *QuestionInput, inspectionID uint) (*models.Question, error) {
	var fields []string
	if in.QuestionNumber == "" {
		fields = append(fields, fieldAt("questions", index, "questionNumber 不能为空"))
	}
	if in.Section == "" {
		fields = append(fields, fieldAt("questions", index, "section 不能为空"))
	}
	if in.QuestionText == "" {
		fields = append(fields, fieldAt("questions", index, "questionText 不能为空"))
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError("审核问题缺少必填字段", fields...)
	}

	maxScore, err := utils.ToIntPtr(fieldAt("questions", index, "maxScore"), in.MaxScore)
	if err != nil {
		return nil, utils.NewValidationError("审核问题字段校验失败", err.Error())
	}

	return &models.Question{
		InspectionID:   inspectionID,
		QuestionNumber: in.QuestionNumber,
		Section:        in.Section,
		SectionType:    in.SectionType,
		MaxScore:       maxScore,
		QuestionText:   in.QuestionText,
		Answer:         in.Answer,
		Status:         in.Status,
		Remarks:        in.Remarks,
		Issues:         in.Issues,
	}, nil
}

func fieldAt(list string, index int, message string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, message)
}
