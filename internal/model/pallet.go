package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is a point in the trailer coordinate space, in mm.
// X runs along the length (front to back), Y across the width (left to
// right), Z upward from the floor.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Pallet represents a single cargo unit to be loaded.
type Pallet struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Length         int    `json:"length"` // mm, along trailer X at rotation 0
	Width          int    `json:"width"`  // mm, along trailer Y at rotation 0
	Height         int    `json:"height"` // mm
	TareWeight     int    `json:"tare_weight"`                // kg, the empty pallet
	CargoWeight    int    `json:"cargo_weight"`               // kg
	MaxStackWeight int    `json:"max_stack_weight,omitempty"` // kg a pallet on top may weigh; 0 = no limit
	Stackable      bool   `json:"stackable"`
	Fragile        bool   `json:"fragile"`
	Color          string `json:"color,omitempty"` // display only, never affects placement

	Position Position `json:"position"`
	Rotation int      `json:"rotation"` // degrees, 0 or 90; 90 swaps length and width
}

func NewPallet(typeName string, length, width, height, tare int) *Pallet {
	return &Pallet{
		ID:         uuid.New().String()[:8],
		Type:       typeName,
		Length:     length,
		Width:      width,
		Height:     height,
		TareWeight: tare,
		Stackable:  true,
	}
}

// Validate rejects pallets that could never be loaded: non-positive
// dimensions, negative weights or a rotation other than 0 and 90.
func (p *Pallet) Validate() error {
	if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("pallet %s: dimensions must be positive, got %dx%dx%d", p.ID, p.Length, p.Width, p.Height)
	}
	if p.TareWeight < 0 || p.CargoWeight < 0 || p.MaxStackWeight < 0 {
		return fmt.Errorf("pallet %s: weights must not be negative", p.ID)
	}
	if p.Rotation != 0 && p.Rotation != 90 {
		return fmt.Errorf("pallet %s: rotation must be 0 or 90, got %d", p.ID, p.Rotation)
	}
	return nil
}

// TotalWeight returns tare plus cargo weight in kg.
func (p *Pallet) TotalWeight() int {
	return p.TareWeight + p.CargoWeight
}

// PlacedLength returns the footprint extent along X for the current rotation.
func (p *Pallet) PlacedLength() int {
	if p.Rotation == 90 {
		return p.Width
	}
	return p.Length
}

// PlacedWidth returns the footprint extent along Y for the current rotation.
func (p *Pallet) PlacedWidth() int {
	if p.Rotation == 90 {
		return p.Length
	}
	return p.Width
}

// FootprintArea returns the floor area in mm². Rotation does not change it.
func (p *Pallet) FootprintArea() int64 {
	return int64(p.Length) * int64(p.Width)
}

// Volume returns the box volume in mm³. Rotation does not change it.
func (p *Pallet) Volume() int64 {
	return int64(p.Length) * int64(p.Width) * int64(p.Height)
}

// LoadingMeters returns the trailer length in meters this pallet consumes on
// a standard 2.4 m wide deck. A EUR pallet comes out at 0.4.
func (p *Pallet) LoadingMeters() float64 {
	return float64(p.FootprintArea()) / (2400.0 * 1000.0)
}

// Rotate toggles the footprint between 0 and 90 degrees.
func (p *Pallet) Rotate() {
	if p.Rotation == 0 {
		p.Rotation = 90
	} else {
		p.Rotation = 0
	}
}

// SetPosition moves the pallet without any legality checks.
func (p *Pallet) SetPosition(x, y, z int) {
	p.Position = Position{X: x, Y: y, Z: z}
}

// Bounds returns the min and max corners of the pallet's box at its current
// position and rotation.
func (p *Pallet) Bounds() (min, max Position) {
	min = p.Position
	max = Position{
		X: p.Position.X + p.PlacedLength(),
		Y: p.Position.Y + p.PlacedWidth(),
		Z: p.Position.Z + p.Height,
	}
	return min, max
}

// Corners returns the eight corners of the box, floor level first.
func (p *Pallet) Corners() [8]Position {
	min, max := p.Bounds()
	return [8]Position{
		{min.X, min.Y, min.Z},
		{max.X, min.Y, min.Z},
		{max.X, max.Y, min.Z},
		{min.X, max.Y, min.Z},
		{min.X, min.Y, max.Z},
		{max.X, min.Y, max.Z},
		{max.X, max.Y, max.Z},
		{min.X, max.Y, max.Z},
	}
}

// CollidesWith reports whether the two boxes overlap. Boxes that only touch
// on a face, edge or corner do not collide.
func (p *Pallet) CollidesWith(other *Pallet) bool {
	amin, amax := p.Bounds()
	bmin, bmax := other.Bounds()
	return amin.X < bmax.X && amax.X > bmin.X &&
		amin.Y < bmax.Y && amax.Y > bmin.Y &&
		amin.Z < bmax.Z && amax.Z > bmin.Z
}

// OverlapsFootprint reports whether the floor projections of the two pallets
// overlap, ignoring height. Shared edges do not count.
func (p *Pallet) OverlapsFootprint(other *Pallet) bool {
	amin, amax := p.Bounds()
	bmin, bmax := other.Bounds()
	return amin.X < bmax.X && amax.X > bmin.X &&
		amin.Y < bmax.Y && amax.Y > bmin.Y
}

// Clone returns an independent copy.
func (p *Pallet) Clone() *Pallet {
	c := *p
	return &c
}

func (p *Pallet) String() string {
	return fmt.Sprintf("%s (%s %dx%dx%d mm, %d kg) at (%d,%d,%d) rot %d",
		p.ID, p.Type, p.Length, p.Width, p.Height, p.TotalWeight(),
		p.Position.X, p.Position.Y, p.Position.Z, p.Rotation)
}
