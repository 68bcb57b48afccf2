package api

import (
	"github.com/rpupo63/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps router) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(db.UserRepo(), deps.sessions),
		projectHandler:   newProjectHandler(db.ProjectRepo()),
		techStackHandler: newTechStackHandler(db.TechStackRepo()),
		skillHandler:     newSkillHandler(db.SkillRepo()),
		tagHandler:       newTagHandler(db.TagRepo()),
		messageHandler:   newMessageHandler(db.MessageRepo(), deps.notifier),
		blogHandler:      newBlogHandler(db.BlogRepo()),
		categoryHandler:  newCategoryHandler(db.CategoryRepo()),
		uploadHandler:    newUploadHandler(deps.uploader),
		myzoneHandler:    newMyzoneHandler(db),
		healthHandler:    newHealthHandler(db, deps.startupTime),
	}
}
