package engine

import (
	"net/http"

	"github.com/getmockd/mockdir/pkg/httputil"
)

// handleHealth handles the liveness probe endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteText(w, http.StatusOK, "OK")
}
