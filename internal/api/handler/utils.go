package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"myflix/internal/common"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// respondServiceError translates a service error into the wire
// response. Validation failures carry their full violation list;
// internal failures log the detail and return a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *common.ValidationError
	if errors.As(err, &vErr) {
		common.RespondWithValidationErrors(w, vErr.Violations)
		return
	}

	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		common.RespondWithError(w, status, "Internal server error")
		return
	}
	common.RespondWithError(w, status, err.Error())
}
