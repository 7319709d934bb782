package trade_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/trade"
)

func TestEvaluator_Evaluate(t *testing.T) {
	Convey("Given two players with different VORP", t, func() {
		vorp := map[string]float64{"a": 5.5, "b": 2.25, "c": 0.1}
		e := trade.NewEvaluator()

		forward := e.Evaluate(vorp, []string{"a"}, []string{"b"})
		backward := e.Evaluate(vorp, []string{"b"}, []string{"a"})

		Convey("Then each direction mirrors the other", func() {
			So(forward.DeltaMy, ShouldEqual, 3.25)
			So(backward.DeltaMy, ShouldEqual, -forward.DeltaMy)
			So(forward.DeltaTheir, ShouldEqual, -forward.DeltaMy)
		})

		Convey("Then fairness is always 100", func() {
			So(forward.Fairness, ShouldEqual, 100.0)
			So(backward.Fairness, ShouldEqual, 100.0)
			So(forward.Rationale, ShouldEqual, "My VORP change 3.25, theirs -3.25. Balanced if near 0.")
		})

		Convey("Then multi-player sides sum independent of order", func() {
			x := e.Evaluate(vorp, []string{"a", "c"}, []string{"b"})
			y := e.Evaluate(vorp, []string{"c", "a"}, []string{"b"})
			So(x.DeltaMy, ShouldEqual, y.DeltaMy)
		})
	})

	Convey("Given players without VORP", t, func() {
		res := trade.NewEvaluator(trade.WithFairnessScale(50)).Evaluate(nil, []string{"x"}, []string{"y", "z"})

		Convey("Then they count as zero", func() {
			So(res.DeltaMy, ShouldEqual, 0.0)
			So(res.Fairness, ShouldEqual, 100.0)
		})
	})
}
