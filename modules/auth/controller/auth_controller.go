package controller

import (
	"strings"

	"go-destinations-api/core/constants"
	"go-destinations-api/core/controller"
	"go-destinations-api/core/errors"
	"go-destinations-api/core/utils"
	"go-destinations-api/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthController handles authentication HTTP requests
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (c *AuthController) getClaimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.New(errors.ErrUnauthorized, "User not authenticated")
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.New(errors.ErrUnauthorized, "Invalid token data")
	}

	return claims, nil
}

// GoogleLogin handles GET /auth/google
// @Summary Start Google sign-in
// @Description Returns the Google consent screen URL with a one-time state token
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthURLResponse
// @Router /public/auth/google [get]
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	result, appErr := c.AuthService.GetGoogleAuthURL(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GoogleCallback handles GET /auth/google/callback
// @Summary Complete Google sign-in
// @Tags Auth
// @Produce json
// @Param state query string true "OAuth state token"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")

	result, appErr := c.AuthService.HandleGoogleCallback(ctx.Request().Context(), state, code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Login successful")
}

// Logout handles POST /auth/logout
// @Summary Revoke the current access token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.AppError
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	token := strings.TrimPrefix(ctx.Request().Header.Get("Authorization"), "Bearer ")
	if appErr := c.AuthService.Logout(ctx.Request().Context(), token, claims); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]bool{"success": true}, "Logged out")
}

// Status handles GET /auth/status
// @Summary Current session status
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Failure 401 {object} errors.AppError
// @Router /private/auth/status [get]
func (c *AuthController) Status(ctx echo.Context) error {
	claims, err := c.getClaimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.Status(ctx.Request().Context(), claims)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetUser handles GET /users/:id
// @Summary Public user profile
// @Tags Auth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} errors.AppError
// @Router /public/users/{id} [get]
func (c *AuthController) GetUser(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.AuthService.GetUserProfile(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
