package dedupe_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	dedupe "github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/model"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		So(d.Size(), ShouldEqual, 0)

		Convey("When a key is recorded twice", func() {
			first := d.SeenAndRecord("k1")
			second := d.SeenAndRecord("k1")

			Convey("Then only the second call reports it as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When seeded with keys", func() {
			seeded := dedupe.NewInMemoryDeduper("a", "b")

			Convey("Then seeded keys are already seen", func() {
				So(seeded.Size(), ShouldEqual, 2)
				So(seeded.SeenAndRecord("a"), ShouldBeTrue)
				So(seeded.SeenAndRecord("c"), ShouldBeFalse)
			})
		})
	})
}

func TestNormalizeName(t *testing.T) {
	Convey("NormalizeName folds provider formatting", t, func() {
		cases := map[string]string{
			"Patrick Mahomes II":     "patrick mahomes",
			"Odell Beckham Jr. NYG":  "odell beckham",
			"  A.J.   Brown ":        "aj brown",
			"Amon-Ra St. Brown":      "amon-ra st brown",
			"Ja’Marr Chase":          "ja'marr chase",
			"José Núñez":             "jose nunez",
			"Josh Allen BUF":         "josh allen",
			"49ers D/ST":             "49ers",
			"Kenneth Walker III SEA": "kenneth walker",
			"":                       "",
		}
		for in, want := range cases {
			So(dedupe.NormalizeName(in), ShouldEqual, want)
		}
	})

	Convey("Short non-team trailing tokens are kept", t, func() {
		So(dedupe.NormalizeName("Tank Bigsby Bo"), ShouldEqual, "tank bigsby bo")
	})
}

func TestKey(t *testing.T) {
	Convey("Key is stable across formatting variants", t, func() {
		a := model.Player{ID: "1", Name: "Patrick Mahomes II"}
		b := model.Player{ID: "2", Name: "patrick mahomes KC"}
		c := model.Player{ID: "3", Name: "Josh Allen"}
		So(dedupe.Key(a), ShouldEqual, dedupe.Key(b))
		So(dedupe.Key(a), ShouldNotEqual, dedupe.Key(c))
	})

	Convey("Blank names fall back to the record id", t, func() {
		a := model.Player{ID: "x1", Name: "  "}
		b := model.Player{ID: "x2", Name: ""}
		So(dedupe.Key(a), ShouldEqual, "id:x1")
		So(dedupe.Key(a), ShouldNotEqual, dedupe.Key(b))
	})
}

func TestSameAthlete(t *testing.T) {
	Convey("Given near-identical names", t, func() {
		a := model.Player{ID: "1", Name: "Deebo Samuel", Position: model.WR, Team: "SF"}
		b := model.Player{ID: "2", Name: "Debo Samuel", Position: model.WR, Team: "sf"}

		Convey("Then same team and position match", func() {
			So(dedupe.SameAthlete(a, b), ShouldBeTrue)
		})

		Convey("Then a different team does not", func() {
			b.Team = "WAS"
			So(dedupe.SameAthlete(a, b), ShouldBeFalse)
		})

		Convey("Then a missing team does not", func() {
			a.Team, b.Team = "", ""
			So(dedupe.SameAthlete(a, b), ShouldBeFalse)
		})

		Convey("Then a different position does not", func() {
			b.Position = model.RB
			So(dedupe.SameAthlete(a, b), ShouldBeFalse)
		})
	})
}

func TestGroups(t *testing.T) {
	Convey("Given duplicate records", t, func() {
		cands := []dedupe.Candidate{
			{Player: model.Player{ID: "p3", Name: "Josh Allen BUF", Position: model.QB, Team: "BUF"}, ProjectionRows: 3},
			{Player: model.Player{ID: "p1", Name: "Josh Allen", Position: model.QB, Team: "BUF"}, ProjectionRows: 1},
			{Player: model.Player{ID: "p2", Name: "Josh Allen", Position: model.QB, Team: "BUF", ExternalID: "espn-1"}},
			{Player: model.Player{ID: "p4", Name: "Jalen Hurts", Position: model.QB, Team: "PHI"}},
		}

		groups := dedupe.Groups(cands)

		Convey("Then one cluster is reported, best record first", func() {
			So(groups, ShouldHaveLength, 1)
			So(groups[0], ShouldHaveLength, 3)
			So(groups[0][0].Player.ID, ShouldEqual, "p2")
			So(groups[0][1].Player.ID, ShouldEqual, "p3")
			So(groups[0][2].Player.ID, ShouldEqual, "p1")
		})

		Convey("Then Best agrees with the cluster order", func() {
			So(dedupe.Best(cands).Player.ID, ShouldEqual, "p2")
		})
	})

	Convey("Ties on provider id and rows fall back to the record id", t, func() {
		a := dedupe.Candidate{Player: model.Player{ID: "b"}}
		b := dedupe.Candidate{Player: model.Player{ID: "a"}}
		So(dedupe.Better(b, a), ShouldBeTrue)
		So(dedupe.Best([]dedupe.Candidate{a, b}).Player.ID, ShouldEqual, "a")
	})
}
