package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adhavansuren/EPiC-Grasshopper/internal/design"
)

const maxDocumentBytes = 1 << 20

// handleEstimate decodes a design document, resolves it against the
// database and estimates every assembly concurrently.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "design document is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	document, err := design.ParseJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := document.Resolve(s.db)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	designLife := s.defaultDesignLife
	if document.DesignLife != nil {
		designLife = document.DesignLifeYears()
	}

	start := time.Now()
	estimate, err := asset.EstimateConcurrently(ctx, designLife)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	slog.Info("estimated built asset",
		"asset", asset.Name,
		"assemblies", len(asset.Assemblies),
		"design_life", designLife,
		"duration", time.Since(start))

	writeJSON(w, http.StatusOK, estimate)
}
