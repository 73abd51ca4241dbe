package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
// Code 供客户端判断错误类型，Message 为用户可见提示，Err 仅写入日志。
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithMessage 复制错误码并替换提示信息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// =========================================
// 错误码定义
// =========================================
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMailError     = 50003 // 邮件发送失败

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeProductNotFound  = 40402 // 商品不存在
	ErrCodeOrderNotFound    = 40403 // 订单不存在
	ErrCodeCategoryNotFound = 40404 // 分类不存在
	ErrCodeReviewNotFound   = 40405 // 评价不存在
	ErrCodeMessageNotFound  = 40406 // 留言不存在
	ErrCodeContentNotFound  = 40407 // 页面/文章/横幅/图片不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000 // 业务错误(通用)
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeSlugDuplicate      = 40004 // slug已存在
	ErrCodeSelfOperation      = 40005 // 不能对自己执行该操作
	ErrCodeReferenced         = 40006 // 被其他记录引用
	ErrCodeVersionConflict    = 40007 // 版本冲突
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrMailError     = New(ErrCodeMailError, "邮件发送失败")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound        = New(ErrCodeNotFound, "资源不存在")
	ErrUserNotFound    = New(ErrCodeUserNotFound, "用户不存在")
	ErrProductNotFound = New(ErrCodeProductNotFound, "商品不存在")
	ErrOrderNotFound   = New(ErrCodeOrderNotFound, "订单不存在")

	// 业务规则
	ErrInvalidOrderStatus = New(ErrCodeInvalidOrderStatus, "订单状态不允许此操作")
	ErrEmailDuplicate     = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrSlugDuplicate      = New(ErrCodeSlugDuplicate, "slug已存在")
	ErrSelfOperation      = New(ErrCodeSelfOperation, "不能对自己的账号执行该操作")
	ErrReferenced         = New(ErrCodeReferenced, "记录正被引用，无法删除")
	ErrVersionConflict    = New(ErrCodeVersionConflict, "数据已被他人修改，请刷新后重试")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HTTPStatus 错误码对应的HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code == ErrCodeForbidden:
		return http.StatusForbidden
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code == ErrCodeEmailDuplicate, code == ErrCodeSlugDuplicate,
		code == ErrCodeReferenced, code == ErrCodeVersionConflict,
		code == ErrCodeDuplicateEntry:
		return http.StatusConflict
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
