/**
 * @module errors
 * @description 业务错误类型定义，区分校验错误与未找到错误，供控制器映射HTTP状态码
 * @architecture 工具函数模式 - 错误分类
 * @documentReference dev_docs/requirements.md
 * @rules
 *   - 校验错误携带字段级明细，映射 400
 *   - 未找到统一复用 gorm.ErrRecordNotFound，映射 404
 *   - 其余错误视为事务/内部错误，映射 500
 * @dependencies errors, gorm.io/gorm
 * @refs api/controllers/*
 */

package utils

import (
	"errors"

	"gorm.io/gorm"
)

// ValidationError 校验错误，Fields 携带字段级错误信息
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError 创建校验错误
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// IsValidationError 判断是否为校验错误，并取出字段明细
func IsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// IsNotFound 判断是否为记录未找到
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
