package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/naratipk/resto-pin-backend/services"
	"github.com/naratipk/resto-pin-backend/utils"
)

var ErrNoPermission = errors.New("you do not have permission")

// respondServiceError memetakan taksonomi error service ke status HTTP.
// Error tak terklasifikasi -> 500; detail lengkap hanya masuk log server,
// body response di release mode cuma pesan generik.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrSessionInvalid):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("unexpected error: %+v", err)
		if gin.Mode() == gin.ReleaseMode {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
