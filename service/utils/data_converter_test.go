/*
 * @module service/utils/data_converter_test
 * @description 数据转换工具单元测试
 */

package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToDecimal 测试定点小数转换：数字、数字字符串、nil 与非法值
func TestToDecimal(t *testing.T) {
	d, err := ToDecimal("score", "85.50")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("85.5")))

	d, err = ToDecimal("score", 92.25)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(decimal.RequireFromString("92.25")))

	d, err = ToDecimal("score", nil)
	require.NoError(t, err)
	assert.Nil(t, d, "nil 应该保持为 NULL")

	d, err = ToDecimal("score", "")
	require.NoError(t, err)
	assert.Nil(t, d, "空字符串应该保持为 NULL")

	_, err = ToDecimal("score", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score")
}

// TestToInt 测试整数转换与默认值
func TestToInt(t *testing.T) {
	n, err := ToInt("count", "42", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = ToInt("count", nil, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n, "nil 应该返回默认值")

	_, err = ToInt("count", "many", 0)
	require.Error(t, err)

	p, err := ToIntPtr("count", nil)
	require.NoError(t, err)
	assert.Nil(t, p, "ToIntPtr 的 nil 应该保持为 NULL")

	p, err = ToIntPtr("count", 5)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 5, *p)
}

// TestParseDate 测试两种日期格式与非法输入
func TestParseDate(t *testing.T) {
	d, err := ParseDate("inspectionDate", "2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("inspectionDate", "2026-01-10T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("inspectionDate", "10/01/2026")
	require.Error(t, err)

	p, err := ParseDatePtr("plannedDate", nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

// TestValidationError 测试校验错误的识别与字段明细
func TestValidationError(t *testing.T) {
	err := NewValidationError("字段校验失败", "name 不能为空", "date 不合法")

	vErr, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "字段校验失败", vErr.Message)
	assert.Len(t, vErr.Fields, 2)

	_, ok = IsValidationError(assert.AnError)
	assert.False(t, ok)
}
