package main

import (
	"go-destinations-api/core/logger"
	"go-destinations-api/core/server"
)

// @title Destinations API
// @version 1.0
// @description API backend for the destinations app - pin places on a map, schedule events and invite participation

// @contact.name API Support
// @contact.email support@destinations.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5001
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
