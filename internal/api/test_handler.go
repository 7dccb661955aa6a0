package api

import (
	"net/http"

	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/render"
	"github.com/miphreal/drf-tweaks/internal/versioning"
)

// ExceptionParam makes GET /test fail with NotFound.
const ExceptionParam = "exception"

// TestHandler serves GET /test, which echoes the negotiated API version.
type TestHandler struct {
	responder *render.Responder
}

// NewTestHandler creates a TestHandler.
func NewTestHandler(responder *render.Responder) *TestHandler {
	return &TestHandler{responder: responder}
}

func (h *TestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get(ExceptionParam) != "" {
		h.responder.Error(w, r, domain.NewNotFound("test exception"))
		return
	}
	h.responder.Respond(w, r, TestResponse{
		APIVersion:            versioning.FromContext(r.Context()),
		CamelizedDataProperty: "data_value",
	})
}
