// File: urbanserve/handlers/handlerBundle.go
package handlers

import (
	"urbanserve/database/repository"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo repository.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	MeHandler       gin.HandlerFunc

	// Catalog
	ServiceTypesHandler gin.HandlerFunc

	// Provider profiles and search
	CreateWorkerProfileHandler gin.HandlerFunc
	CreateTutorProfileHandler  gin.HandlerFunc
	GetWorkerProfileHandler    gin.HandlerFunc
	GetTutorProfileHandler     gin.HandlerFunc
	SearchProvidersHandler     gin.HandlerFunc

	// Bookings
	CreateBookingHandler       gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc

	// Ratings
	CreateRatingHandler gin.HandlerFunc

	// Assistant
	ChatHandler gin.HandlerFunc
}
