package domain

import (
	"errors"
	"time"
)

var ErrVehicleNotFound = errors.New("vehicle record not found")

// Category identifies one resource area of the portal. Each category maps to
// its own route group and its own storage collection.
type Category string

const (
	CategoryTrucks     Category = "trucks"
	CategoryTaxis      Category = "taxis"
	CategoryCoasters   Category = "coasters"
	CategoryCars       Category = "cars"
	CategoryBodas      Category = "bodas"
	CategoryTyreClinic Category = "tyre_clinic"
	CategoryBattery    Category = "battery"
)

// Categories lists every resource area in registration order.
var Categories = []Category{
	CategoryTrucks,
	CategoryTaxis,
	CategoryCoasters,
	CategoryCars,
	CategoryBodas,
	CategoryTyreClinic,
	CategoryBattery,
}

// Vehicle is one serviced or parked vehicle record within a category.
type Vehicle struct {
	ID         string    `json:"id"`
	Plate      string    `json:"plate"`
	Model      string    `json:"model"`
	OwnerName  string    `json:"owner_name"`
	OwnerPhone string    `json:"owner_phone"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
