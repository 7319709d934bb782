// Package model contains domain models passed between layers.
package model

import "strings"

// Position is a fantasy roster position.
type Position string

// Supported positions.
const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// Positions lists every position in canonical order. Aggregations that group
// by position iterate this slice so results never depend on record order.
var Positions = []Position{QB, RB, WR, TE, K, DST} //nolint:gochecknoglobals // fixed enum table

// ParsePosition normalizes a provider position label. Unknown labels report false.
func ParsePosition(s string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB, true
	case "RB":
		return RB, true
	case "WR":
		return WR, true
	case "TE":
		return TE, true
	case "K", "PK":
		return K, true
	case "DST", "D/ST", "DEF":
		return DST, true
	}
	return "", false
}

// Valid reports whether p is one of the supported positions.
func (p Position) Valid() bool {
	switch p {
	case QB, RB, WR, TE, K, DST:
		return true
	}
	return false
}
