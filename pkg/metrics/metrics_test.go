package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered returns the sum of samples (counter, gauge or histogram count) of family name.
func gathered(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("engine"),
				WithSolveBuckets([]float64{1.0, 0.1, 0.5, 0.5}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordTradeEvaluation()

			Convey("Then names carry the namespace and subsystem", func() {
				So(gathered(registry, "test_engine_trade_evaluations_total"), ShouldEqual, 1)
			})
		})

		Convey("When creating with nil labels and registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithConstLabels(nil), WithPrometheusRegistry(registry), WithPrometheusRegistry(nil))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording engine activity", func() {
			m.RecordBlend(10, 2)
			m.RecordLineupSolve("ilp", 3*time.Millisecond)
			m.RecordLineupSolve("greedy", time.Millisecond)
			m.RecordLineupSolve("ilp", time.Millisecond)
			m.RecordWaiverSuggestions(4)
			m.RecordTradeEvaluation()
			m.RecordDraftBoard()
			m.SetRosterVORP(42.5)
			m.SetDuplicateGroups(2)

			Convey("Then every metric reflects it", func() {
				So(gathered(registry, "gridiron_projections_blended_total"), ShouldEqual, 10)
				So(gathered(registry, "gridiron_projections_excluded_total"), ShouldEqual, 2)
				So(gathered(registry, "gridiron_lineup_solves_total"), ShouldEqual, 3)
				So(gathered(registry, "gridiron_lineup_solve_duration_seconds"), ShouldEqual, 3)
				So(gathered(registry, "gridiron_waiver_suggestions_total"), ShouldEqual, 4)
				So(gathered(registry, "gridiron_trade_evaluations_total"), ShouldEqual, 1)
				So(gathered(registry, "gridiron_draft_boards_total"), ShouldEqual, 1)
				So(gathered(registry, "gridiron_roster_vorp"), ShouldEqual, 42.5)
				So(gathered(registry, "gridiron_duplicate_player_groups"), ShouldEqual, 2)
			})
		})

		Convey("When metrics are disabled", func() {
			off := prometheus.NewRegistry()
			d := NewManager(WithPrometheusRegistry(off), WithMetricsEnabled(false))
			d.RecordBlend(5, 5)
			d.RecordLineupSolve("ilp", time.Second)

			Convey("Then nothing is recorded", func() {
				So(gathered(off, "gridiron_projections_blended_total"), ShouldEqual, 0)
				So(gathered(off, "gridiron_lineup_solve_duration_seconds"), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global manager", t, func() {
		before := gathered(GetRegistry(), "gridiron_draft_boards_total")

		So(func() {
			RecordBlend(1, 0)
			RecordLineupSolve("greedy", time.Microsecond)
			RecordWaiverSuggestions(0)
			RecordTradeEvaluation()
			RecordDraftBoard()
			SetRosterVORP(1)
			SetDuplicateGroups(0)
		}, ShouldNotPanic)

		Convey("Then it records on the custom registry", func() {
			So(Global(), ShouldNotBeNil)
			So(gathered(GetRegistry(), "gridiron_draft_boards_total"), ShouldEqual, before+1)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a populated registry", t, func() {
		registry := prometheus.NewRegistry()
		NewManager(WithPrometheusRegistry(registry)).RecordDraftBoard()

		Convey("When writing to a textfile", func() {
			path := filepath.Join(t.TempDir(), "gridiron.prom")
			err := WriteTextfile(registry, path)

			Convey("Then the file holds the exposition", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(strings.Contains(string(data), "gridiron_draft_boards_total 1"), ShouldBeTrue)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(registry, "/non/existent/dir/gridiron.prom")

			Convey("Then a wrapped error is returned", func() {
				So(errors.Is(err, ErrWriteFailed), ShouldBeTrue)
			})
		})
	})
}
