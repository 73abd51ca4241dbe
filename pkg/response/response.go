package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
)

// Response 统一响应结构
// Code是业务错误码（0表示成功），HTTP状态码由错误码映射得到
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    normalize(data),
	})
}

// Created 资源创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    normalize(data),
	})
}

// normalize 空切片按无数据处理，nil切片和空切片的响应一致（都省略data）
func normalize(data interface{}) interface{} {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice && v.Len() == 0 {
		return nil
	}
	return data
}

// Error 错误响应（自动处理AppError）
//
//	if err := uc.Execute(ctx, req); err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := Resolve(c, err)
	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// Resolve 提取AppError并记录内部错误，返回可安全展示给用户的错误
func Resolve(c *gin.Context, err error) *apperrors.AppError {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil || appErr.Code >= 50000 {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}

	// 服务端错误细节只写日志
	if appErr.Code >= 50000 {
		return apperrors.New(appErr.Code, "系统繁忙，请稍后再试")
	}
	return appErr
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
