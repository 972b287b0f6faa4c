package destination

import (
	"go-destinations-api/core/database"
	"go-destinations-api/core/jobs"
	"go-destinations-api/core/middleware"
	authRepository "go-destinations-api/modules/auth/repository"
	"go-destinations-api/modules/destination/controller"
	"go-destinations-api/modules/destination/job"
	"go-destinations-api/modules/destination/repository"
	"go-destinations-api/modules/destination/router"
	"go-destinations-api/modules/destination/service"

	"github.com/labstack/echo/v4"
)

// Init wires the destination module and returns the status sweep runner
// so the server can hand it to the background worker.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *jobs.Runner {
	destinationRepo := repository.NewDestinationRepository(db)
	authRepo := authRepository.NewAuthRepository(db)

	destinationService := service.NewDestinationService(destinationRepo, authRepo)

	sweeper := job.NewStatusSweeper(destinationRepo)
	sweepRunner := jobs.NewRunner(sweeper)

	destinationController := controller.NewDestinationController(destinationService, sweepRunner)
	router.Setup(e, destinationController, mw)

	return sweepRunner
}
