package main

import (
	"os"

	"github.com/yigit/atcampus/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/atcampus/internal/server"
)

// @title AtCampus API
// @version 1.0
// @description Research collaboration API for the AtCampus university network
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@atcampus.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}

	logger.Info().Msg("Server stopped gracefully")
}
