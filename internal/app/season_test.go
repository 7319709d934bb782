package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/testleague"
)

func TestOptimizeWeeks(t *testing.T) {
	Convey("Given a three week league", t, func() {
		snap := testleague.Generate(testleague.WithWeeks(3))
		svc, _ := newService()
		ctx := context.Background()

		Convey("When weeks are repeated and out of order", func() {
			got, err := svc.OptimizeWeeks(ctx, snap, []int{3, 1, 3, 2}, 2)

			Convey("Then each week is solved once in order", func() {
				So(err, ShouldBeNil)
				So(got, ShouldHaveLength, 3)
				for i, wl := range got {
					So(wl.Week, ShouldEqual, i+1)
					So(wl.Lineup.Week, ShouldEqual, i+1)
					So(wl.Lineup.Starters, ShouldHaveLength, 9)
				}
			})

			Convey("Then the result matches solving each week alone", func() {
				So(err, ShouldBeNil)
				for _, wl := range got {
					So(cmp.Diff(wl.Lineup, svc.OptimizeLineup(ctx, snap, svc.DefaultParams(wl.Week))), ShouldBeEmpty)
				}
			})
		})

		Convey("When no weeks are given", func() {
			got, err := svc.OptimizeWeeks(ctx, snap, nil, 4)

			Convey("Then nothing is returned", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeNil)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			got, err := svc.OptimizeWeeks(cctx, snap, []int{1, 2}, 0)

			Convey("Then the cancellation is reported", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(got, ShouldBeNil)
			})
		})
	})
}
