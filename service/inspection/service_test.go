/*
 * @module service/inspection/service_test
 * @description 验货服务单元测试，覆盖组合事务创建、回滚、查询、更新、删除与统计
 */

package inspection

import (
	"testing"
	"time"

	"qualiguard-service/service/models"
	"qualiguard-service/service/site"
	"qualiguard-service/service/utils"
	"qualiguard-service/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *testutil.TestDB
	testService *Service
	siteService *site.Service
)

// setupTest 初始化内存测试数据库并清空数据
func setupTest(t *testing.T) {
	if testDB == nil {
		testDB = testutil.NewTestDB()
		siteService = site.NewService(testDB.DB)
		testService = NewService(testDB.DB, siteService)
	}
	testDB.CleanDB()
}

// sampleRequest 构造一个完整的组合创建载荷：1产品、1清单、2问题、2图片（其中1张编号无匹配）
func sampleRequest(reference string) *CreateInspectionRequest {
	return &CreateInspectionRequest{
		Inspection: InspectionInput{
			InspectionReference: reference,
			InspectionDate:      "2026-01-10",
			FcaTotalScore:       "85.50",
			YesCount:            20,
			NaCount:             "3",
		},
		Site: &site.SiteInput{
			Name:     "苏州第一工厂",
			City:     testutil.StringPtr("苏州"),
			Latitude: "31.2989000",
		},
		Products: []ProductInput{
			{Name: "Widget A", OrderedQuantity: "1000", ProducedPercentage: 98.5},
		},
		TestChecklists: []ChecklistInput{
			{ChecklistName: "GAP-FCA 清单", Result: testutil.StringPtr("Pass")},
		},
		Questions: []QuestionInput{
			{QuestionNumber: "1", Section: "安全生产", QuestionText: "Is X present?"},
			{QuestionNumber: "2", Section: "质量体系", QuestionText: "Is Y documented?"},
		},
		Images: []ImageInput{
			{QuestionNumber: testutil.StringPtr("1"), ImageURL: testutil.StringPtr("https://img.example.com/1.jpg"), ImageType: testutil.StringPtr("evidence")},
			{QuestionNumber: testutil.StringPtr("99"), ImageURL: testutil.StringPtr("https://img.example.com/lost.jpg")},
		},
	}
}

// TestCreateInspectionComplete 测试组合创建：子记录计数、图片归属与字段默认值
func TestCreateInspectionComplete(t *testing.T) {
	setupTest(t)

	ref := testutil.UniqueReference("INSP")
	created, err := testService.CreateInspection(sampleRequest(ref))
	require.NoError(t, err, "组合创建应该成功")
	require.NotNil(t, created)

	assert.Equal(t, ref, created.InspectionReference)
	assert.Len(t, created.Products, 1)
	assert.Len(t, created.TestChecklists, 1)
	assert.Len(t, created.Questions, 2)

	// 默认值
	require.NotNil(t, created.InspectionType)
	assert.Equal(t, "PSI", *created.InspectionType)
	require.NotNil(t, created.OverallResult)
	assert.Equal(t, "N/A", *created.OverallResult)
	require.NotNil(t, created.GeneratedBy)
	assert.Equal(t, "QualiGuard System", *created.GeneratedBy)
	assert.NotNil(t, created.GeneratedDate)
	assert.False(t, created.IsSafetyFailed)

	// 数字字符串被正确转换
	require.NotNil(t, created.FcaTotalScore)
	assert.True(t, created.FcaTotalScore.Equal(decimal.RequireFromString("85.5")),
		"fcaTotalScore 应该等于 85.50，实际 %s", created.FcaTotalScore)
	assert.Equal(t, 20, created.YesCount)
	assert.Equal(t, 3, created.NaCount)

	// 场地被创建并挂接
	require.NotNil(t, created.Site)
	assert.Equal(t, "苏州第一工厂", created.Site.Name)

	// 图片只挂到编号匹配的问题上，编号 99 的图片被丢弃
	imagesByNumber := make(map[string]int)
	for _, q := range created.Questions {
		imagesByNumber[q.QuestionNumber] = len(q.Images)
	}
	assert.Equal(t, 1, imagesByNumber["1"])
	assert.Equal(t, 0, imagesByNumber["2"])

	var imageCount int64
	testDB.DB.Model(&models.InspectionImage{}).Count(&imageCount)
	assert.Equal(t, int64(1), imageCount, "未匹配图片不应落库")
}

// TestCreateInspectionDuplicateReference 测试重复验货编号：校验错误且整体回滚
func TestCreateInspectionDuplicateReference(t *testing.T) {
	setupTest(t)

	ref := testutil.UniqueReference("INSP")
	_, err := testService.CreateInspection(sampleRequest(ref))
	require.NoError(t, err)

	var productsBefore, questionsBefore, imagesBefore int64
	testDB.DB.Model(&models.Product{}).Count(&productsBefore)
	testDB.DB.Model(&models.Question{}).Count(&questionsBefore)
	testDB.DB.Model(&models.InspectionImage{}).Count(&imagesBefore)

	_, err = testService.CreateInspection(sampleRequest(ref))
	require.Error(t, err, "重复编号应该失败")
	vErr, ok := utils.IsValidationError(err)
	require.True(t, ok, "重复编号应该映射为校验错误")
	assert.Contains(t, vErr.Message, "已存在")

	// 第二次请求的任何子记录都不允许落库
	var productsAfter, questionsAfter, imagesAfter, inspections int64
	testDB.DB.Model(&models.Product{}).Count(&productsAfter)
	testDB.DB.Model(&models.Question{}).Count(&questionsAfter)
	testDB.DB.Model(&models.InspectionImage{}).Count(&imagesAfter)
	testDB.DB.Model(&models.Inspection{}).Count(&inspections)
	assert.Equal(t, productsBefore, productsAfter)
	assert.Equal(t, questionsBefore, questionsAfter)
	assert.Equal(t, imagesBefore, imagesAfter)
	assert.Equal(t, int64(1), inspections)
}

// TestCreateInspectionInvalidNumeric 测试非法数字字符串：校验错误且零落库
func TestCreateInspectionInvalidNumeric(t *testing.T) {
	setupTest(t)

	req := sampleRequest(testutil.UniqueReference("INSP"))
	req.Inspection.FcaTotalScore = "not-a-number"

	_, err := testService.CreateInspection(req)
	require.Error(t, err)
	vErr, ok := utils.IsValidationError(err)
	require.True(t, ok, "非法数字应该映射为校验错误而不是静默归零")
	assert.NotEmpty(t, vErr.Fields)

	var inspections int64
	testDB.DB.Model(&models.Inspection{}).Count(&inspections)
	assert.Equal(t, int64(0), inspections)
}

// TestCreateInspectionMissingRequired 测试缺失必填字段的字段级错误明细
func TestCreateInspectionMissingRequired(t *testing.T) {
	setupTest(t)

	req := sampleRequest(testutil.UniqueReference("INSP"))
	req.Inspection.InspectionReference = ""
	req.Inspection.InspectionDate = ""

	_, err := testService.CreateInspection(req)
	require.Error(t, err)
	vErr, ok := utils.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, vErr.Fields, 2)
}

// TestCreateInspectionReusesSite 测试同名场地在多次创建之间被复用
func TestCreateInspectionReusesSite(t *testing.T) {
	setupTest(t)

	first, err := testService.CreateInspection(sampleRequest(testutil.UniqueReference("INSP")))
	require.NoError(t, err)
	second, err := testService.CreateInspection(sampleRequest(testutil.UniqueReference("INSP")))
	require.NoError(t, err)

	require.NotNil(t, first.SiteID)
	require.NotNil(t, second.SiteID)
	assert.Equal(t, *first.SiteID, *second.SiteID, "同名场地应该被复用")

	var siteCount int64
	testDB.DB.Model(&models.Site{}).Count(&siteCount)
	assert.Equal(t, int64(1), siteCount)
}

// TestGetInspectionsPagination 测试分页、总页数与超出页码的空结果
func TestGetInspectionsPagination(t *testing.T) {
	setupTest(t)

	for i := 0; i < 5; i++ {
		testDB.InsertInspection(testutil.UniqueReference("PAGE"),
			time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC), "N/A")
	}

	rows, total, totalPages, err := testService.GetInspections(1, 2, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, 3, totalPages, "totalPages 应该是向上取整")
	assert.Len(t, rows, 2)

	// 按验货日期倒序
	assert.True(t, rows[0].InspectionDate.After(rows[1].InspectionDate))

	// 超出总页数返回空集而不是错误
	rows, _, _, err = testService.GetInspections(10, 2, "", "", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// TestGetInspectionsSearchAndDateRange 测试编号子串匹配与闭区间日期过滤
func TestGetInspectionsSearchAndDateRange(t *testing.T) {
	setupTest(t)

	testDB.InsertInspection("FCA-2026-001", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "Pass")
	testDB.InsertInspection("FCA-2026-002", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "Fail")
	testDB.InsertInspection("PSI-2026-003", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "Pass")

	rows, total, _, err := testService.GetInspections(1, 10, "FCA", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	// 闭区间：边界日期包含在内
	rows, total, _, err = testService.GetInspections(1, 10, "", "2026-01-10", "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 只给出一个边界时不做日期过滤
	_, total, _, err = testService.GetInspections(1, 10, "", "2026-02-01", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// 非法日期返回校验错误
	_, _, _, err = testService.GetInspections(1, 10, "", "bad-date", "2026-02-10")
	require.Error(t, err)
	_, ok := utils.IsValidationError(err)
	assert.True(t, ok)
}

// TestGetInspectionNotFound 测试详情查询未找到
func TestGetInspectionNotFound(t *testing.T) {
	setupTest(t)

	_, err := testService.GetInspection(12345)
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err), "不存在的ID应该返回未找到")
}

// TestUpdateInspectionPartial 测试部分更新只改动给定字段
func TestUpdateInspectionPartial(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateInspection(sampleRequest(testutil.UniqueReference("INSP")))
	require.NoError(t, err)

	updated, err := testService.UpdateInspection(created.ID, &InspectionUpdateInput{
		OverallResult: testutil.StringPtr("Pass"),
		FcaTotalScore: "91.25",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.OverallResult)
	assert.Equal(t, "Pass", *updated.OverallResult)
	require.NotNil(t, updated.FcaTotalScore)
	assert.True(t, updated.FcaTotalScore.Equal(decimal.RequireFromString("91.25")))

	// 未给出的字段保持不变
	assert.Equal(t, created.InspectionReference, updated.InspectionReference)
	assert.Equal(t, created.YesCount, updated.YesCount)

	// 不存在的ID返回未找到
	_, err = testService.UpdateInspection(99999, &InspectionUpdateInput{})
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

// TestDeleteInspectionCascades 测试删除验货后子记录随外键级联删除
func TestDeleteInspectionCascades(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateInspection(sampleRequest(testutil.UniqueReference("INSP")))
	require.NoError(t, err)

	require.NoError(t, testService.DeleteInspection(created.ID))

	var products, checklists, questions, images int64
	testDB.DB.Model(&models.Product{}).Count(&products)
	testDB.DB.Model(&models.TestChecklist{}).Count(&checklists)
	testDB.DB.Model(&models.Question{}).Count(&questions)
	testDB.DB.Model(&models.InspectionImage{}).Count(&images)
	assert.Equal(t, int64(0), products)
	assert.Equal(t, int64(0), checklists)
	assert.Equal(t, int64(0), questions)
	assert.Equal(t, int64(0), images)

	// 再次删除返回未找到
	err = testService.DeleteInspection(created.ID)
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

// TestSummaryStatsEmpty 测试空表统计：全零且不报错
func TestSummaryStatsEmpty(t *testing.T) {
	setupTest(t)

	stats, err := testService.GetSummaryStats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, int64(0), stats.Passed)
	assert.Equal(t, int64(0), stats.Failed)
	assert.Equal(t, float64(0), stats.PassRate)
}

// TestSummaryStats 测试通过率计算，passed+failed 可以小于 total
func TestSummaryStats(t *testing.T) {
	setupTest(t)

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	testDB.InsertInspection(testutil.UniqueReference("S"), day, "Pass")
	testDB.InsertInspection(testutil.UniqueReference("S"), day, "Pass")
	testDB.InsertInspection(testutil.UniqueReference("S"), day, "Fail")
	testDB.InsertInspection(testutil.UniqueReference("S"), day, "N/A")

	stats, err := testService.GetSummaryStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Passed)
	assert.Equal(t, int64(1), stats.Failed)
	assert.LessOrEqual(t, stats.Passed+stats.Failed, stats.Total)
	assert.InDelta(t, 50.0, stats.PassRate, 0.001)
}

// TestQuestionsStringSort 测试问题编号按字符串排序："10" 排在 "2" 前
func TestQuestionsStringSort(t *testing.T) {
	setupTest(t)

	req := sampleRequest(testutil.UniqueReference("INSP"))
	req.Questions = []QuestionInput{
		{QuestionNumber: "2", Section: "质量体系", QuestionText: "Q2"},
		{QuestionNumber: "10", Section: "安全生产", QuestionText: "Q10"},
		{QuestionNumber: "1", Section: "安全生产", QuestionText: "Q1"},
	}
	req.Images = nil

	created, err := testService.CreateInspection(req)
	require.NoError(t, err)

	questions, err := testService.GetQuestionsByInspection(created.ID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "1", questions[0].QuestionNumber)
	assert.Equal(t, "10", questions[1].QuestionNumber)
	assert.Equal(t, "2", questions[2].QuestionNumber)
}

// TestGetProducts 测试产品列表附带父验货记录
func TestGetProducts(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateInspection(sampleRequest(testutil.UniqueReference("INSP")))
	require.NoError(t, err)

	products, err := testService.GetProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget A", products[0].Name)
	require.NotNil(t, products[0].Inspection)
	assert.Equal(t, created.InspectionReference, products[0].Inspection.InspectionReference)
	assert.Equal(t, "Pcs", products[0].OrderedUnit, "orderedUnit 缺省为 Pcs")
}
