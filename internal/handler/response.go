package handler

import (
	"net/http"

	"pet-adoption-server/internal/util"
)

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}
