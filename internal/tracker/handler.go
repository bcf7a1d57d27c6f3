package tracker

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/yutounun/storetracker/internal/core/logging"
	"github.com/yutounun/storetracker/pkg/iojson"
)

// storeDump is one entry of the Handler response.
type storeDump struct {
	Name string `json:"name"`
	Dump string `json:"dump"`
}

// Handler serves the plain-text dumps of the stores returned by fn as a
// JSON array, in section order. fn is called from the HTTP server's
// goroutines, so it must be safe for concurrent use.
func Handler(fn func() Stores) http.Handler {
	logger := logging.Component("stores-handler")

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		stores := fn()

		out := make([]storeDump, 0, len(stores))
		for _, s := range stores {
			out = append(out, storeDump{Name: s.Name, Dump: Dump(s.Value)})
		}

		writeJSON(w, logger, out)
	})
}

// writeJSON sends v with a 200, or an error payload with a 500 when v
// cannot be marshaled. The status is always set before the body.
func writeJSON(w http.ResponseWriter, logger zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")

	bits, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		if err := iojson.WriteError(w, "marshal response", map[string]any{"error": err.Error()}); err != nil {
			logger.Warn().Err(err).Msg("write error response")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	bits = append(bits, '\n')
	if _, err := w.Write(bits); err != nil {
		logger.Warn().Err(err).Msg("write response")
	}
}
