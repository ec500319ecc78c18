/**
 * @module data_converter
 * @description 数据转换工具模块，负责请求载荷中数字字符串、定点小数、日期字段的规范化转换
 * @architecture 工具函数模式，提供静态转换方法集合
 * @documentReference dev_docs/requirements.md
 * @stateFlow 无状态转换：输入 -> 转换逻辑 -> 输出
 * @rules
 *   - 数字字符串必须显式转换，转换失败返回校验错误而非静默归零
 *   - 分数、百分比等定点字段一律走 decimal，禁止浮点
 *   - 日期字段兼容 DATEONLY(2006-01-02) 与 RFC3339 两种写法
 * @dependencies
 *   - github.com/spf13/cast: 基础类型转换
 *   - github.com/shopspring/decimal: 定点小数
 *   - time: 时间处理
 * @refs
 *   - service/inspection/*: 验货写入与查询服务
 *   - service/site/*: 场地服务
 */

package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const dateOnlyLayout = "2006-01-02"

// ToDecimal 将载荷中的数字或数字字符串转换为定点小数，nil 保持为 NULL
func ToDecimal(field string, value interface{}) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}

	raw, err := cast.ToStringE(value)
	if err != nil {
		return nil, fmt.Errorf("字段 %s 无法转换为数字: %v", field, value)
	}
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("字段 %s 无法转换为数字: %q", field, raw)
	}
	return &d, nil
}

// ToInt 将载荷中的数字或数字字符串转换为整数，nil 返回给定默认值
func ToInt(field string, value interface{}, defaultValue int) (int, error) {
	if value == nil {
		return defaultValue, nil
	}

	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("字段 %s 无法转换为整数: %v", field, value)
	}
	return n, nil
}

// ToIntPtr 与 ToInt 类似，但 nil 保持为 NULL 而不是默认值
func ToIntPtr(field string, value interface{}) (*int, error) {
	if value == nil {
		return nil, nil
	}

	n, err := cast.ToIntE(value)
	if err != nil {
		return nil, fmt.Errorf("字段 %s 无法转换为整数: %v", field, value)
	}
	return &n, nil
}

// ParseDate 解析日期字段，先按 2006-01-02 再按 RFC3339 解析
func ParseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("字段 %s 不是合法日期: %q", field, value)
}

// ParseDatePtr 解析可选日期字段，nil 保持为 NULL
func ParseDatePtr(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
