// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package catalog holds the seeded shop data: haircut styles, bookable
// services, shops, and barbers. The data is fixed at compile time and
// treated as immutable; accessors return copies.
package catalog

import (
	"strings"

	"github.com/fadehaus/fadehaus/internal/recommend"
)

// Service is a bookable service category.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMin int    `json:"duration"`
	PriceUSD    int    `json:"price"`
	Description string `json:"desc"`
}

// Shop is one physical location.
type Shop struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Barber works at exactly one shop.
type Barber struct {
	ID          string   `json:"id"`
	ShopID      string   `json:"shopId"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	Specialties []string `json:"specialties"`
}

var styles = []recommend.Style{
	{
		ID:          "modern-fade",
		Name:        "Modern Fade",
		FaceShapes:  []string{recommend.FaceOval, recommend.FaceSquare},
		Maintenance: "Medium",
		Difficulty:  "Medium",
		Service:     "Skin Fade",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20modern%20skin%20fade%20%2B%20clean%20lineup%2C%20barbershop%20studio%2C%2035mm%20photo%2C%20sharp%20focus%2C%20neutral%20background?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a clean modern skin fade with sharp lineup",
	},
	{
		ID:          "classic-side-part",
		Name:        "Classic Side Part",
		FaceShapes:  []string{recommend.FaceOval, recommend.FaceSquare, recommend.FaceHeart},
		Maintenance: "Low",
		Difficulty:  "Easy",
		Service:     "Haircut & Styling",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20classic%20side%20part%20%2B%20comb%20line%2C%20barbershop%20studio%2C%20soft%20lighting%2C%20editorial%20look?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a classic side part hairstyle with defined part",
	},
	{
		ID:          "textured-crop",
		Name:        "Textured Crop",
		FaceShapes:  []string{recommend.FaceRound, recommend.FaceOval},
		Maintenance: "Medium",
		Difficulty:  "Medium",
		Service:     "Haircut & Styling",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20textured%20crop%20%2B%20short%20sides%2C%20matte%20finish%2C%20studio%20lighting%2C%20high%20detail?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a short textured crop with matte finish",
	},
	{
		ID:          "tight-taper",
		Name:        "Tight Taper",
		FaceShapes:  []string{recommend.FaceRound, recommend.FaceDiamond, recommend.FaceSquare},
		Maintenance: "Low",
		Difficulty:  "Medium",
		Service:     "Haircut & Styling",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20tight%20taper%20%2B%20natural%20neckline%2C%20clean%20barbershop%20studio%2C%20sharp%20detail%2C%20professional%20look?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a tight taper haircut with clean neckline",
	},
	{
		ID:          "low-fade-beard",
		Name:        "Low Fade + Beard",
		FaceShapes:  []string{recommend.FaceOval, recommend.FaceSquare, recommend.FaceRound},
		Maintenance: "Medium",
		Difficulty:  "Medium",
		Service:     "Cut + Beard",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20low%20fade%20%2B%20well-groomed%20full%20beard%2C%20barbershop%20studio%2C%20dramatic%20lighting%2C%20high%20detail?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a low fade blended into a shaped full beard",
	},
	{
		ID:          "buzz-clean",
		Name:        "Buzz & Clean",
		FaceShapes:  []string{recommend.FaceSquare, recommend.FaceDiamond},
		Maintenance: "Very Low",
		Difficulty:  "Easy",
		Service:     "Haircut & Styling",
		Image:       "https://image.pollinations.ai/prompt/portrait%20male%20very%20short%20buzz%20cut%20%2B%20clean%20shaven%2C%20studio%20lighting%2C%20minimal%20background%2C%20sharp%20focus?width=1200&height=800&nologo=true",
		ImageAlt:    "AI image of a very short buzz cut with clean-shaven face",
	},
}

var services = []Service{
	{ID: "fade", Name: "Skin Fade", DurationMin: 45, PriceUSD: 35, Description: "Clean fade with line-up."},
	{ID: "beard", Name: "Beard Trim", DurationMin: 20, PriceUSD: 15, Description: "Beard shape + finish."},
	{ID: "cut+beard", Name: "Cut + Beard", DurationMin: 60, PriceUSD: 45, Description: "Full package."},
	{ID: "lineup", Name: "Line Up", DurationMin: 20, PriceUSD: 12, Description: "Edges and outline only."},
	{ID: "hotshave", Name: "Hot Towel Shave", DurationMin: 30, PriceUSD: 25, Description: "Classic straight razor shave."},
	{ID: "headshave", Name: "Head Shave", DurationMin: 35, PriceUSD: 30, Description: "Clean scalp shave & finish."},
	{ID: "kids", Name: "Kids Cut (Under 12)", DurationMin: 30, PriceUSD: 20, Description: "Gentle, quick, and tidy."},
	{ID: "washstyle", Name: "Shampoo & Style", DurationMin: 25, PriceUSD: 18, Description: "Wash, blow dry, and style."},
	{ID: "design", Name: "Hair Design", DurationMin: 30, PriceUSD: 20, Description: "Custom parts & simple designs."},
	{ID: "deluxe", Name: "Deluxe Package", DurationMin: 75, PriceUSD: 60, Description: "Cut + beard + hot towel + style."},
	// Styling is not directly bookable through the service picker, but the
	// classic styles map to it, so it must resolve for history matching.
	{ID: "styling", Name: "Haircut & Styling", DurationMin: 40, PriceUSD: 30, Description: "Scissor cut, styling, and finish."},
}

var shops = []Shop{
	{ID: "downtown", Name: "Breezy Cutz", Address: "123 Main St"},
	{ID: "midtown", Name: "Brazy Cutz", Address: "456 Oak Ave"},
	{ID: "eastside", Name: "CrossFades", Address: "618 Church St"},
	{ID: "university", Name: "Dapper Cutz", Address: "419 Ogunmefun Ave"},
}

var barbers = []Barber{
	{ID: "ayo", ShopID: "downtown", Name: "Ayo Lawal", Rating: 4.9, Specialties: []string{"Fades", "Line-ups"}},
	{ID: "maria", ShopID: "downtown", Name: "Maria S.", Rating: 4.8, Specialties: []string{"Scissor cuts", "Beards"}},
	{ID: "theo", ShopID: "downtown", Name: "Theo K.", Rating: 4.7, Specialties: []string{"Designs", "Afro"}},
	{ID: "kofi", ShopID: "midtown", Name: "Kofi D.", Rating: 5.0, Specialties: []string{"Afro", "Designs"}},
	{ID: "nana", ShopID: "midtown", Name: "Nana B.", Rating: 4.8, Specialties: []string{"Fades", "Hot shaves"}},
	{ID: "remy", ShopID: "eastside", Name: "Remy P.", Rating: 4.9, Specialties: []string{"Tapers", "Beards"}},
	{ID: "zara", ShopID: "eastside", Name: "Zara Q.", Rating: 4.8, Specialties: []string{"Scissor cuts", "Kids"}},
	{ID: "diego", ShopID: "university", Name: "Diego R.", Rating: 4.9, Specialties: []string{"Fades", "Line-ups"}},
	{ID: "malik", ShopID: "university", Name: "Malik T.", Rating: 4.7, Specialties: []string{"Designs", "Beards"}},
}

// Styles returns the style catalog in seed order.
func Styles() []recommend.Style {
	out := make([]recommend.Style, len(styles))
	copy(out, styles)
	return out
}

// Services returns all bookable services in seed order.
func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Shops returns all shops in seed order.
func Shops() []Shop {
	out := make([]Shop, len(shops))
	copy(out, shops)
	return out
}

// Barbers returns all barbers, optionally filtered by shop ID.
func Barbers(shopID string) []Barber {
	out := make([]Barber, 0, len(barbers))
	for _, b := range barbers {
		if shopID == "" || b.ShopID == shopID {
			out = append(out, b)
		}
	}
	return out
}

// ServiceByID looks up a service by its ID.
func ServiceByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceByName looks up a service by display name, case-insensitively.
func ServiceByName(name string) (Service, bool) {
	for _, s := range services {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Service{}, false
}

// ShopByID looks up a shop by its ID.
func ShopByID(id string) (Shop, bool) {
	for _, s := range shops {
		if s.ID == id {
			return s, true
		}
	}
	return Shop{}, false
}

// BarberByID looks up a barber by its ID.
func BarberByID(id string) (Barber, bool) {
	for _, b := range barbers {
		if b.ID == id {
			return b, true
		}
	}
	return Barber{}, false
}

// StyleByID looks up a style by its ID.
func StyleByID(id string) (recommend.Style, bool) {
	for _, s := range styles {
		if s.ID == id {
			return s, true
		}
	}
	return recommend.Style{}, false
}
