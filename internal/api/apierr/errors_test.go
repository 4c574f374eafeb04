package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/model"
)

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&engine.ConfigError{Width: 2, Height: 2, Mines: 9}, http.StatusBadRequest, CodeInvalidConfiguration},
		{fmt.Errorf("%w: off board", model.ErrInvalidLayout), http.StatusBadRequest, CodeInvalidConfiguration},
		{model.ErrInvalidPosition, http.StatusBadRequest, CodeInvalidPosition},
		{fmt.Errorf("loading: %w", model.ErrGameNotFound), http.StatusNotFound, CodeGameNotFound},
		{model.ErrGameOver, http.StatusConflict, CodeGameOver},
		{model.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{fmt.Errorf("%w: psychic", model.ErrUnknownStrategy), http.StatusBadRequest, CodeUnknownStrategy},
		{model.ErrNoMove, http.StatusConflict, CodeNoMove},
		{NewInternalErrorFor("req-1"), http.StatusInternalServerError, CodeInternalError},
		{NewUnauthorizedError(), http.StatusUnauthorized, CodeUnauthorized},
		{NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		WriteError(rr, tc.err)

		assert.Equal(t, tc.status, rr.Code, tc.err.Error())
		assert.Equal(t, tc.status, Status(tc.err))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Error.Code, tc.err.Error())
	}
}

func TestInternalErrorNamesRequest(t *testing.T) {
	assert.Contains(t, NewInternalErrorFor("req-1").Error(), "req-1")
	assert.Equal(t, NewInternalError().Error(), NewInternalErrorFor("").Error())
}
