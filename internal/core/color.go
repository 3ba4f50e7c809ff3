package core

// Color is a cell color as a "#RRGGBB" hex string. The zero value is the
// terminal default.
type Color string

// NoColor leaves the terminal default in place.
const NoColor Color = ""
