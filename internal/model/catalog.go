package model

import "fmt"

// PalletType describes a standard pallet format.
type PalletType struct {
	Name           string `json:"name"`
	Length         int    `json:"length"`           // mm
	Width          int    `json:"width"`            // mm
	Height         int    `json:"height"`           // mm
	TareWeight     int    `json:"tare_weight"`      // kg
	MaxStackHeight int    `json:"max_stack_height"` // mm, tallest legal stack for this format
	Color          string `json:"color"`
}

// LoadingMeters returns the trailer meters one pallet of this format takes
// on a standard 2.4 m deck.
func (pt PalletType) LoadingMeters() float64 {
	return float64(pt.Length) * float64(pt.Width) / (2400.0 * 1000.0)
}

// Built-in pallet formats.
var PalletTypes = []PalletType{
	{
		Name:           "EUR",
		Length:         1200,
		Width:          800,
		Height:         144,
		TareWeight:     25,
		MaxStackHeight: 2700,
		Color:          "rgba(31, 119, 180, 0.7)",
	},
	{
		Name:           "EUR2",
		Length:         1200,
		Width:          1000,
		Height:         144,
		TareWeight:     30,
		MaxStackHeight: 2700,
		Color:          "rgba(255, 127, 14, 0.7)",
	},
	{
		Name:           "INDUSTRIAL",
		Length:         1200,
		Width:          1200,
		Height:         150,
		TareWeight:     35,
		MaxStackHeight: 2700,
		Color:          "rgba(44, 160, 44, 0.7)",
	},
	{
		Name:           "HALF_EUR",
		Length:         800,
		Width:          600,
		Height:         144,
		TareWeight:     15,
		MaxStackHeight: 2700,
		Color:          "rgba(214, 39, 40, 0.7)",
	},
	{
		Name:           "L10",
		Length:         2400,
		Width:          1200,
		Height:         200,
		TareWeight:     60,
		MaxStackHeight: 2700,
		Color:          "rgba(148, 103, 189, 0.7)",
	},
}

// GetPalletType looks up a built-in format by name.
func GetPalletType(name string) (PalletType, bool) {
	for _, pt := range PalletTypes {
		if pt.Name == name {
			return pt, true
		}
	}
	return PalletType{}, false
}

// PalletTypeNames returns the built-in format names in catalog order.
func PalletTypeNames() []string {
	var names []string
	for _, pt := range PalletTypes {
		names = append(names, pt.Name)
	}
	return names
}

// NewPalletOfType builds an empty pallet of a built-in format, with the
// format's dimensions, tare weight and display color.
func NewPalletOfType(name string) (*Pallet, error) {
	pt, ok := GetPalletType(name)
	if !ok {
		return nil, fmt.Errorf("unknown pallet type %q", name)
	}
	p := NewPallet(pt.Name, pt.Length, pt.Width, pt.Height, pt.TareWeight)
	p.Color = pt.Color
	return p, nil
}
