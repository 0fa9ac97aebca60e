package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAppErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("load vehicle: %w", NewNotFoundError("Vehicle"))
	appErr := GetAppError(err)
	require.Equal(t, http.StatusNotFound, appErr.Code)
	require.Equal(t, "Vehicle not found", appErr.Message)
}

func TestGetAppErrorHidesInternalErrors(t *testing.T) {
	appErr := GetAppError(errors.New("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, appErr.Code)
	require.NotContains(t, appErr.Message, "pq")
}
