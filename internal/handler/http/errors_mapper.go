package http

import (
	"errors"
	"net/http"

	"github.com/bunpo-app/bunpo/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrUserRecordNotFound: http.StatusNotFound,
	store.ErrUserRecordExists:   http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
