// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo is a small game configuration exposed through the console.
//
// It exists to give the hosts something to drive:
//
//	arena.width 120     set the arena width
//	arena.width         print it
//	reset arena.width   back to 100
//	find a              everything with an "a" in its path
//	color_test          print the color grid
package demo

import (
	"fmt"
	"strings"

	"github.com/jeranaias/devconsole/internal/console"
)

// =============================================================================
// ARENA
// =============================================================================

// Arena is the playing field.
type Arena struct {
	Width  float64
	Height float64

	defaults arenaDefaults
}

type arenaDefaults struct {
	width, height float64
}

// NewArena returns an arena at its default size.
func NewArena() *Arena {
	a := &Arena{Width: 100, Height: 100}
	a.defaults = arenaDefaults{width: a.Width, height: a.Height}
	return a
}

// Visit implements console.Visitor.
func (a *Arena) Visit(f func(console.Node), _ console.Sink) {
	f(console.Prop("width", "Arena width", &a.Width, a.defaults.width))
	f(console.Prop("height", "Arena height", &a.Height, a.defaults.height))
}

// =============================================================================
// PADDLE
// =============================================================================

// Paddle is the player's paddle.
type Paddle struct {
	Velocity float64
	Color    string

	defaults paddleDefaults
}

type paddleDefaults struct {
	velocity float64
	color    string
}

// NewPaddle returns a paddle with default settings.
func NewPaddle() *Paddle {
	p := &Paddle{Velocity: 3, Color: "white"}
	p.defaults = paddleDefaults{velocity: p.Velocity, color: p.Color}
	return p
}

// Visit implements console.Visitor.
func (p *Paddle) Visit(f func(console.Node), _ console.Sink) {
	f(console.Prop("velocity", "Paddle velocity", &p.Velocity, p.defaults.velocity))
	f(console.Prop("color", "Paddle color", &p.Color, p.defaults.color))
}

// =============================================================================
// GAME
// =============================================================================

// Game is the root of the demo tree.
type Game struct {
	Arena  *Arena
	Paddle *Paddle
}

// New returns a game with default settings.
func New() *Game {
	return &Game{Arena: NewArena(), Paddle: NewPaddle()}
}

// Visit implements console.Visitor.
func (g *Game) Visit(f func(console.Node), _ console.Sink) {
	f(console.NewAction("color_test", "Test console colors", colorTest))
	f(console.NewAction("greet", "[name]\nSay hello", greet))
	f(console.NewList("arena", "Arena settings", g.Arena))
	f(console.NewList("paddle", "Paddle settings", g.Paddle))
}

// String summarizes the current settings on one line.
func (g *Game) String() string {
	return fmt.Sprintf("%g x %g arena, %s paddle at %g",
		g.Arena.Width, g.Arena.Height, g.Paddle.Color, g.Paddle.Velocity)
}

// =============================================================================
// ACTIONS
// =============================================================================

// Swatch is the glyph colorTest draws for each color.
const Swatch = " ■"

// ColorGrid returns the 27 colors colorTest draws: every combination of
// 0, 0.5 and 1 per channel, brightest first.
func ColorGrid() []console.Color {
	grid := make([]console.Color, 0, 27)
	for r := 2; r >= 0; r-- {
		for g := 2; g >= 0; g-- {
			for b := 2; b >= 0; b-- {
				grid = append(grid, console.Color{float32(r) / 2, float32(g) / 2, float32(b) / 2, 1})
			}
		}
	}
	return grid
}

func colorTest(_ []string, out console.Sink) console.Result {
	for _, c := range ColorGrid() {
		out.WriteColored(c, Swatch)
	}
	out.Write("\n")
	return console.Ok("")
}

func greet(args []string, out console.Sink) console.Result {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		name = "World"
	}
	out.Write("Hello, " + name + "!\n")
	return console.Ok("")
}
