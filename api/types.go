package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	projectHandler   projectHandler
	techStackHandler techStackHandler
	skillHandler     skillHandler
	tagHandler       tagHandler
	messageHandler   messageHandler
	blogHandler      blogHandler
	categoryHandler  categoryHandler
	uploadHandler    uploadHandler
	myzoneHandler    myzoneHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"slug"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// MessageResponse is returned by deletes and other actions without a resource body
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted successfully"`
}
