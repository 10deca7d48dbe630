package metrics

import (
	"net/http"

	"github.com/unrolled/render"
)

var ren = render.New()

// Handler serves the current snapshot as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ren.JSON(w, http.StatusOK, c.metrics.Snapshot()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
