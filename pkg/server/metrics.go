package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
)

var widgetStates = []app.WidgetState{
	app.StateUninitialized,
	app.StateStructureMounted,
	app.StateLoading,
	app.StatePopulated,
	app.StateFailed,
}

var (
	metricSnapshots = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "browserhome",
		Name:      "snapshots_published_total",
		Help:      "Page snapshots published by the update loop.",
	})
	metricWidgetState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "browserhome",
		Name:      "widget_state",
		Help:      "1 for the lifecycle state each widget is currently in.",
	}, []string{"widget", "state"})
)

func recordSnapshot(snap app.Snapshot) {
	metricSnapshots.Inc()
	for _, w := range snap.Widgets {
		for _, st := range widgetStates {
			v := 0.0
			if st.String() == w.State {
				v = 1
			}
			metricWidgetState.WithLabelValues(w.ID, st.String()).Set(v)
		}
	}
}
