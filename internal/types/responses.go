package types

import "time"

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AdminUserResponse is the admin panel's row: the public projection plus
// registration time and how many systems the user owns.
type AdminUserResponse struct {
	UserResponse
	CreatedAt   time.Time `json:"createdAt"`
	SystemCount int64     `json:"systemCount"`
}

type PlanetResponse struct {
	ID        uint   `json:"id"`
	PlanetID  string `json:"planetId"`
	Important bool   `json:"important"`
	Notes     string `json:"notes"`
}

type SystemResponse struct {
	ID         uint             `json:"id"`
	SystemID   string           `json:"systemId"`
	RecRes     bool             `json:"recRes"`
	LastUpdate time.Time        `json:"lastUpdate"`
	Planets    []PlanetResponse `json:"planets"`
}
