package model

import (
	"errors"
	"fmt"
)

// ============================================================================
// 领域错误
// ============================================================================
//
// 业务规则违反在服务层同步抛出，由 handler 统一翻译成 HTTP 状态码：
//   ErrKindNotFound         -> 404  引用的实体不存在
//   ErrKindUnauthorized     -> 403  角色或归属校验未通过
//   ErrKindInvalidOperation -> 409  业务规则/状态流转不允许
//   ErrKindValidation       -> 400  入参不合法
// ============================================================================

type ErrKind int

const (
	ErrKindUnknown ErrKind = iota
	ErrKindNotFound
	ErrKindUnauthorized
	ErrKindInvalidOperation
	ErrKindValidation
)

// DomainError 携带错误分类和可读原因的业务错误
type DomainError struct {
	Kind    ErrKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewNotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: ErrKindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidOperation(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: ErrKindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf 取出错误的分类，非领域错误返回 ErrKindUnknown
func KindOf(err error) ErrKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrKindUnknown
}
