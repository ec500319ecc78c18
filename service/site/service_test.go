/*
 * @module service/site/service_test
 * @description 场地服务单元测试，覆盖创建、按名称查找或创建、列表摘要与详情
 */

package site

import (
	"testing"
	"time"

	"qualiguard-service/service/models"
	"qualiguard-service/service/utils"
	"qualiguard-service/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *testutil.TestDB
	testService *Service
)

func setupTest(t *testing.T) {
	if testDB == nil {
		testDB = testutil.NewTestDB()
		testService = NewService(testDB.DB)
	}
	testDB.CleanDB()
}

// TestCreateSite 测试场地创建与经纬度数字字符串转换
func TestCreateSite(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateSite(&SiteInput{
		Name:      "东莞第二工厂",
		City:      testutil.StringPtr("东莞"),
		Latitude:  "23.0207000",
		Longitude: 113.7518,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Latitude)
	assert.True(t, created.Latitude.Equal(decimal.RequireFromString("23.0207")))

	// 未提供的可选字段保持 NULL
	assert.Nil(t, created.Address)
	assert.Nil(t, created.SiteRepresentative)
}

// TestCreateSiteValidation 测试缺名与重名的校验错误
func TestCreateSiteValidation(t *testing.T) {
	setupTest(t)

	_, err := testService.CreateSite(&SiteInput{})
	require.Error(t, err)
	_, ok := utils.IsValidationError(err)
	assert.True(t, ok, "缺少名称应该是校验错误")

	_, err = testService.CreateSite(&SiteInput{Name: "重名工厂"})
	require.NoError(t, err)
	_, err = testService.CreateSite(&SiteInput{Name: "重名工厂"})
	require.Error(t, err)
	vErr, ok := utils.IsValidationError(err)
	require.True(t, ok, "重名应该是校验错误")
	assert.Contains(t, vErr.Message, "已存在")
}

// TestFindOrCreateTx 测试按名称查找或创建：存在即复用，不存在即创建
func TestFindOrCreateTx(t *testing.T) {
	setupTest(t)

	first, err := testService.FindOrCreateTx(testDB.DB, &SiteInput{Name: "宁波工厂"})
	require.NoError(t, err)

	second, err := testService.FindOrCreateTx(testDB.DB, &SiteInput{
		Name: "宁波工厂",
		City: testutil.StringPtr("宁波"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "同名场地应该被复用")
	assert.Nil(t, second.City, "复用时不覆盖已有记录的字段")

	var count int64
	testDB.DB.Model(&models.Site{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// TestGetSites 测试场地列表附带验货摘要
func TestGetSites(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateSite(&SiteInput{Name: "摘要工厂"})
	require.NoError(t, err)

	ref := testutil.UniqueReference("BRIEF")
	inspID := testDB.InsertInspection(ref, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), "Pass")
	require.NoError(t, testDB.DB.Model(&models.Inspection{}).
		Where("id = ?", inspID).Update("site_id", created.ID).Error)

	sites, err := testService.GetSites()
	require.NoError(t, err)
	require.Len(t, sites, 1)
	require.Len(t, sites[0].Inspections, 1)
	assert.Equal(t, ref, sites[0].Inspections[0].InspectionReference)
	assert.Equal(t, inspID, sites[0].Inspections[0].ID)

	// 没有验货的场地返回空列表而不是 null
	_, err = testService.CreateSite(&SiteInput{Name: "空场地"})
	require.NoError(t, err)
	sites, err = testService.GetSites()
	require.NoError(t, err)
	require.Len(t, sites, 2)
	for _, s := range sites {
		assert.NotNil(t, s.Inspections)
	}
}

// TestGetSite 测试场地详情与未找到
func TestGetSite(t *testing.T) {
	setupTest(t)

	created, err := testService.CreateSite(&SiteInput{Name: "详情工厂"})
	require.NoError(t, err)

	got, err := testService.GetSite(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "详情工厂", got.Name)

	_, err = testService.GetSite(99999)
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}
