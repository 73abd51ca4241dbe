// Package handler HTTP处理器
//
// 处理器只负责参数绑定和响应转换，业务规则与访问控制在应用层。
package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/gypsumstore/pkg/errors"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// bindJSON 绑定请求体，失败时写入40901响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return false
	}
	return true
}

// respond 有错误时写错误响应，否则写data
func respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}

// respondEmpty 无返回数据的写操作
func respondEmpty(c *gin.Context, err error) {
	respond(c, nil, err)
}
