package waiver_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/internal/domain/waiver"
)

func snapshot() (*model.Snapshot, map[string]float64) {
	snap := &model.Snapshot{
		Players: []model.Player{
			{ID: "r1", Name: "Mine Start", Position: model.RB},
			{ID: "r2", Name: "Mine Bench", Position: model.RB},
			{ID: "r3", Name: "Mine Hurt", Position: model.RB},
			{ID: "q0", Name: "Mine QB", Position: model.QB},
			{ID: "f1", Name: "Free One", Position: model.RB},
			{ID: "f2", Name: "Free Two", Position: model.RB},
			{ID: "f3", Name: "Free Three", Position: model.RB},
			{ID: "w1", Name: "Free Wideout", Position: model.WR},
			{ID: "w2", Name: "Free Dud", Position: model.WR},
			{ID: "q1", Name: "Free QB", Position: model.QB},
			{ID: "o1", Name: "Their RB", Position: model.RB},
		},
		Rosters: []model.RosterAssignment{
			{PlayerID: "r1", Status: model.StatusStart, MyTeam: true},
			{PlayerID: "r2", Status: model.StatusBench, MyTeam: true},
			{PlayerID: "r3", Status: model.StatusIR, MyTeam: true},
			{PlayerID: "q0", Status: model.StatusStart, MyTeam: true},
			{PlayerID: "f1", Status: model.StatusFA},
			{PlayerID: "f2", Status: model.StatusFA},
			{PlayerID: "f3", Status: model.StatusFA},
			{PlayerID: "w1", Status: model.StatusFA},
			{PlayerID: "w2", Status: model.StatusFA},
			{PlayerID: "q1", Status: model.StatusFA},
			{PlayerID: "o1", Status: model.StatusStart},
		},
	}
	vorp := map[string]float64{
		"r1": 2, "r2": -1, "r3": -5, "q0": -0.6,
		"f1": 1.5, "f2": 0.4, "f3": -1,
		"w1": 30, "w2": -2,
		"o1": -9,
	}
	return snap, vorp
}

func ids(s []types.WaiverSuggestion) []string {
	out := make([]string, 0, len(s))
	for _, w := range s {
		out = append(out, w.PlayerID)
	}
	return out
}

func TestRanker_Rank(t *testing.T) {
	Convey("Given my roster and a free-agent pool", t, func() {
		snap, vorp := snapshot()

		Convey("When ranking with defaults", func() {
			got := waiver.NewRanker().Rank(snap, vorp)

			Convey("Then only strict improvements are listed, largest first", func() {
				So(ids(got), ShouldResemble, []string{"w1", "f1", "f2", "q1"})
			})

			Convey("Then deltas are measured against my weakest active player", func() {
				So(got[1].VORPDelta, ShouldEqual, 2.5)
				So(got[2].VORPDelta, ShouldAlmostEqual, 1.4, 1e-9)
				So(got[3].VORPDelta, ShouldAlmostEqual, 0.6, 1e-9)
				So(got[0].VORPDelta, ShouldEqual, 30.0)
			})

			Convey("Then bids are rounded and clamped", func() {
				So(got[0].FAABBid, ShouldEqual, 20)
				So(got[1].FAABBid, ShouldEqual, 3)
				So(got[2].FAABBid, ShouldEqual, 1)
				So(got[3].FAABBid, ShouldEqual, 1)
				for _, s := range got {
					So(s.FAABBid, ShouldBeBetweenOrEqual, 1, 20)
				}
			})

			Convey("Then suggestions carry position and rationale", func() {
				So(got[1].Position, ShouldEqual, model.RB)
				So(got[1].Rationale, ShouldContainSubstring, "RB by 2.50")
			})
		})

		Convey("When only the best free agent per position is considered", func() {
			got := waiver.NewRanker(waiver.WithTopN(1)).Rank(snap, vorp)

			Convey("Then lower free agents drop out", func() {
				So(ids(got), ShouldResemble, []string{"w1", "f1", "q1"})
			})
		})

		Convey("When the bid range is narrowed", func() {
			got := waiver.NewRanker(waiver.WithFAABRange(2, 5)).Rank(snap, vorp)

			Convey("Then bids respect it", func() {
				So(got[0].FAABBid, ShouldEqual, 5)
				So(got[3].FAABBid, ShouldEqual, 2)
			})
		})

		Convey("When a free agent's gain is beyond the int range", func() {
			vorp["w1"] = 1e19
			got := waiver.NewRanker().Rank(snap, vorp)

			Convey("Then the bid is clamped to the maximum", func() {
				So(got[0].PlayerID, ShouldEqual, "w1")
				So(got[0].FAABBid, ShouldEqual, waiver.DefaultFAABMax)
			})
		})

		Convey("When VORP is missing entirely", func() {
			got := waiver.NewRanker().Rank(snap, nil)

			Convey("Then nothing improves on zero", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}
