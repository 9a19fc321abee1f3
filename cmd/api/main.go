package main

import (
	"os"

	"github.com/demirhan/taportal/internal/pkg/logger"
	"github.com/demirhan/taportal/internal/server"
)

// @title           TA Portal API
// @version         1.0
// @description     Teaching-assistant position and scholarship portal for doctoral students.

// @contact.name   API Support
// @contact.email  support@taportal.local

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
