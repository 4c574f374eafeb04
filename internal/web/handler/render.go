package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/minefield/internal/model"
)

var (
	errInvalidForm = errors.New("invalid form values")
	errNotOwner    = errors.New("only the game's owner can do that")
)

func gamePath(id model.GameID) string {
	return "/games/" + string(id)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirect navigates the browser, using HX-Redirect for htmx requests
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
