package anim

import "github.com/zenvertao/2048-game/internal/game"

// NopRenderer draws nothing. Headless hosts use it.
type NopRenderer struct{}

func (NopRenderer) DrawStatic(game.Grid, map[game.Position]bool) {}
func (NopRenderer) DrawSliding([]SlideTile, float64) {}
func (NopRenderer) DrawPops([]PopTile, float64) {}
