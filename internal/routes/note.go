package routes

import (
	"github.com/labstack/echo/v4"

	"service-tracker/internal/controllers"
)

func runNoteRouter(secureGroup *echo.Group, ctrl *controllers.NoteController) {
	secureGroup.GET("/notes", ctrl.GetNotes)
	secureGroup.POST("/notes", ctrl.CreateNote)
	secureGroup.PUT("/notes/:id", ctrl.UpdateNote)
	secureGroup.DELETE("/notes/:id", ctrl.DeleteNote)

	secureGroup.GET("/missing-parts", ctrl.GetMissingParts)
	secureGroup.POST("/missing-parts", ctrl.AddMissingPart)
	secureGroup.DELETE("/missing-parts/:index", ctrl.RemoveMissingPart)
}
