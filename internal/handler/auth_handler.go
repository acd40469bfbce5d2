package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/arsongs/internal/middleware"
	"github.com/weiwangfds/arsongs/internal/response"
	"github.com/weiwangfds/arsongs/internal/service/account"
)

// AuthHandler 账户处理器
type AuthHandler struct {
	accounts account.AccountService
}

// NewAuthHandler 创建账户处理器实例
func NewAuthHandler(accounts account.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register 注册
// @Summary 注册账户
// @Description 创建未激活的账户，并向邮箱发送验证码
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=account.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "参数错误或用户名、邮箱已存在"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, account.NewUserInfo(user))
}

// ResendEmailOTP 重新发送验证码
// @Summary 重新发送邮箱验证码
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.EmailRequest true "邮箱"
// @Success 200 {object} response.Response "已发送"
// @Failure 400 {object} response.ErrorResponse "账户已激活或验证码仍有效"
// @Failure 404 {object} response.ErrorResponse "账户不存在"
// @Router /api/v1/auth/resend-email-otp [post]
func (h *AuthHandler) ResendEmailOTP(c *gin.Context) {
	var req account.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.ResendVerificationOTP(c.Request.Context(), req.Email); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "OTP sent to your email", nil)
}

// VerifyEmail 验证邮箱并激活账户
// @Summary 验证邮箱并激活账户
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.VerifyEmailRequest true "邮箱和验证码"
// @Success 200 {object} response.Response "已激活"
// @Failure 400 {object} response.ErrorResponse "验证码错误或过期"
// @Failure 404 {object} response.ErrorResponse "账户不存在"
// @Router /api/v1/auth/verify-email-and-activate-account [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req account.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.VerifyEmail(c.Request.Context(), &req); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Account activated successfully", nil)
}

// RequestPasswordReset 发送重置密码验证码
// @Summary 发送重置密码验证码
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.EmailRequest true "邮箱"
// @Success 200 {object} response.Response "已发送"
// @Failure 400 {object} response.ErrorResponse "验证码仍有效"
// @Failure 404 {object} response.ErrorResponse "账户不存在"
// @Router /api/v1/auth/request-password-change-email-otp [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req account.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "OTP sent to your email", nil)
}

// ResetPassword 使用验证码重置密码
// @Summary 使用验证码重置密码
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.ResetPasswordRequest true "邮箱、验证码和新密码"
// @Success 200 {object} response.Response "密码已修改"
// @Failure 400 {object} response.ErrorResponse "验证码错误或过期"
// @Failure 404 {object} response.ErrorResponse "账户不存在"
// @Router /api/v1/auth/reset-password-with-email [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req account.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.ResetPassword(c.Request.Context(), &req); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Password changed successfully", nil)
}

// Login 用户名密码登录
// @Summary 用户名密码登录
// @Description 返回用户信息和访问令牌，created 表示令牌是否为本次新建
// @Tags 账户
// @Accept json
// @Produce json
// @Param body body account.LoginRequest true "用户名和密码"
// @Success 200 {object} response.Response{data=account.LoginResult} "登录成功"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误，或账户未激活"
// @Router /api/v1/auth/username/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 退出登录
// @Summary 退出登录
// @Description logout_all_devices 为 true 时删除令牌，所有设备都需要重新登录
// @Tags 账户
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body account.LogoutRequest false "退出选项"
// @Success 200 {object} response.Response "已退出"
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req account.LogoutRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if err := h.accounts.Logout(c.Request.Context(), middleware.CurrentUserID(c), req.LogoutAllDevices); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// Me 当前用户信息
// @Summary 当前用户信息
// @Tags 账户
// @Produce json
// @Security TokenAuth
// @Success 200 {object} response.Response{data=account.UserInfo}
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, account.NewUserInfo(middleware.CurrentUser(c)))
}
