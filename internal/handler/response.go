package handler

import (
	"net/http"

	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// writeGenericError keeps validation messages but replaces any other failure's
// message with generic, so provider detail stays in the server log.
func writeGenericError(w http.ResponseWriter, err error, generic string) {
	if apperrors.IsValidation(err) {
		writeError(w, err)
		return
	}

	code := apperrors.GetCode(err)
	httputil.WriteErrorWithStatus(w, httputil.StatusFromCode(code), apperrors.New(code, generic))
}
