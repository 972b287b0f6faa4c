package controller

import (
	"time"

	"go-destinations-api/core/constants"
	"go-destinations-api/core/controller"
	"go-destinations-api/core/errors"
	"go-destinations-api/core/jobs"
	"go-destinations-api/core/params"
	"go-destinations-api/core/utils"
	"go-destinations-api/modules/destination/dto"
	"go-destinations-api/modules/destination/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DestinationController handles destination HTTP requests
type DestinationController struct {
	controller.BaseController
	DestinationService service.DestinationServiceInterface
	SweepRunner        *jobs.Runner
}

func NewDestinationController(svc service.DestinationServiceInterface, sweepRunner *jobs.Runner) *DestinationController {
	return &DestinationController{
		BaseController:     controller.NewBaseController(),
		DestinationService: svc,
		SweepRunner:        sweepRunner,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *DestinationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "User not authenticated")
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "Invalid token data")
	}

	return claims.UserID, nil
}

// Create handles POST /destinations
// @Summary Create a destination event
// @Description Pin a place on the map and schedule it as an event
// @Tags Destination
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDestinationRequest true "Destination data"
// @Success 200 {object} entity.Destination
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/destinations [post]
func (c *DestinationController) Create(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateDestinationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.DestinationService.Create(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Destination created successfully")
}

// ListMine handles GET /destinations for the authenticated user
// @Summary My event list
// @Description Combined list of events the user organizes or participates in
// @Tags Destination
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.DestinationView
// @Failure 401 {object} errors.AppError
// @Router /private/destinations [get]
func (c *DestinationController) ListMine(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result := c.DestinationService.ListForUser(ctx.Request().Context(), userID)
	return c.SuccessResponse(ctx, result, "Success")
}

// Browse handles GET /destinations (public, paginated)
// @Summary Browse active destinations
// @Tags Destination
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Filter by place name"
// @Success 200 {object} dto.PaginatedDestinationResponse
// @Router /public/destinations [get]
func (c *DestinationController) Browse(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.DestinationService.Browse(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /destinations/:id
// @Summary Destination details
// @Description Single destination with organizer info and participants
// @Tags Destination
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} dto.DestinationDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /public/destinations/{id} [get]
func (c *DestinationController) Get(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid destination ID")
	}

	result, appErr := c.DestinationService.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Cancel handles PATCH /destinations/:id/cancel
// @Summary Cancel a destination event
// @Description Organizer-only; active future events can be cancelled
// @Tags Destination
// @Security BearerAuth
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} entity.Destination
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/destinations/{id}/cancel [patch]
func (c *DestinationController) Cancel(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid destination ID")
	}

	result, appErr := c.DestinationService.Cancel(ctx.Request().Context(), id, requesterID, time.Now())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Destination cancelled successfully")
}

// Delete handles DELETE /destinations/:id
// @Summary Delete a destination event
// @Tags Destination
// @Security BearerAuth
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/destinations/{id} [delete]
func (c *DestinationController) Delete(ctx echo.Context) error {
	requesterID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid destination ID")
	}

	if appErr := c.DestinationService.Delete(ctx.Request().Context(), id, requesterID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]bool{"success": true}, "Destination deleted successfully")
}

// Participate handles POST /destinations/:id/participate
// @Summary Join or mark interest in an event
// @Tags Destination
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Destination ID"
// @Param request body dto.ParticipateRequest true "Participation type"
// @Success 200 {object} dto.ParticipantResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/destinations/{id}/participate [post]
func (c *DestinationController) Participate(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid destination ID")
	}

	var req dto.ParticipateRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.DestinationService.Participate(ctx.Request().Context(), id, userID, req.Type)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participation saved")
}

// Unparticipate handles DELETE /destinations/:id/participate
// @Summary Remove participation from an event
// @Tags Destination
// @Security BearerAuth
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.AppError
// @Router /private/destinations/{id}/participate [delete]
func (c *DestinationController) Unparticipate(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid destination ID")
	}

	if appErr := c.DestinationService.Unparticipate(ctx.Request().Context(), id, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, map[string]bool{"success": true}, "Participation removed")
}

// RunStatusSweep handles POST /jobs/status-sweep, a manual trigger for the
// periodic sweep.
// @Summary Run the status sweep now
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} jobs.Result
// @Router /private/jobs/status-sweep [post]
func (c *DestinationController) RunStatusSweep(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result := c.SweepRunner.Run(ctx.Request().Context())
	return c.SuccessResponse(ctx, result, result.Message)
}

// StatusSweepStatus handles GET /jobs/status-sweep
// @Summary Status sweep job tracking info
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} jobs.Status
// @Router /private/jobs/status-sweep [get]
func (c *DestinationController) StatusSweepStatus(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	return c.SuccessResponse(ctx, c.SweepRunner.Status(), "Success")
}
