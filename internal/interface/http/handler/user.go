package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/gypsumstore/internal/application/user"
	"github.com/xiebiao/gypsumstore/internal/interface/http/middleware"
	"github.com/xiebiao/gypsumstore/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	refreshUseCase  *appuser.RefreshUseCase
	logoutUseCase   *appuser.LogoutUseCase
	accounts        *appuser.AccountService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	refreshUseCase *appuser.RefreshUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	accounts *appuser.AccountService,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		refreshUseCase:  refreshUseCase,
		logoutUseCase:   logoutUseCase,
		accounts:        accounts,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建顾客账号，角色固定为USER
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body appuser.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserView} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req appuser.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  验证邮箱密码，返回JWT Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body appuser.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req appuser.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), req)
	respond(c, result, err)
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body appuser.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=appuser.RefreshResponse}
// @Failure      401 {object} response.Response "Token无效或过期"
// @Router       /api/v1/users/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req appuser.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), req)
	respond(c, result, err)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话，当前Access Token与请求体中的Refresh Token加入黑名单
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appuser.LogoutRequest false "待吊销的Refresh Token"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req appuser.LogoutRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	respondEmpty(c, h.logoutUseCase.Execute(c.Request.Context(), middleware.AccessToken(c), req))
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appuser.ChangePasswordRequest true "当前密码与新密码"
// @Success      200 {object} response.Response
// @Failure      401 {object} response.Response "未登录或当前密码错误"
// @Router       /api/v1/users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req appuser.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	respondEmpty(c, h.accounts.ChangePassword(c.Request.Context(), req))
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         后台-用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appuser.UserView}
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.accounts.List(c.Request.Context())
	respond(c, result, err)
}

// SetRole 修改用户角色
// @Summary      修改用户角色
// @Description  管理员不能修改自己的角色
// @Tags         后台-用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Param        request body appuser.SetRoleRequest true "角色"
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      400 {object} response.Response "不能修改自己的角色"
// @Router       /api/v1/admin/users/{id}/role [put]
func (h *UserHandler) SetRole(c *gin.Context) {
	var req appuser.SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.accounts.SetRole(c.Request.Context(), c.Param("id"), req)
	respond(c, result, err)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  历史订单和评价保留，用户关联置空
// @Tags         后台-用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	respondEmpty(c, h.accounts.Delete(c.Request.Context(), c.Param("id")))
}
