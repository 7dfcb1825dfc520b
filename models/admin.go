package models

import "time"

// Overview is the admin dashboard summary.
type Overview struct {
	Products   int64      `json:"products"`
	Users      int64      `json:"users"`
	Bookings   int64      `json:"bookings"`
	News       int64      `json:"news"`
	Revenue    float64    `json:"revenue"`
	Activities []Activity `json:"activities"`
}

// Activity is one entry of the dashboard's recent activity feed.
type Activity struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// RoleUpdate is the body of PUT /api/admin/users.
type RoleUpdate struct {
	ID   string `json:"id" binding:"required"`
	Role string `json:"role" binding:"required"`
}
