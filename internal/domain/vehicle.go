package domain

import (
	"fmt"
	"time"
)

// MaintenanceDateLayout is the dd/mm/yyyy format used on maintenance entries
const MaintenanceDateLayout = "02/01/2006"

type Maintenance struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CostCents   int64     `json:"cost_cents"`
}

type Vehicle struct {
	Plate          string        `json:"plate"`
	Model          string        `json:"model"`
	Year           int           `json:"year"`
	DailyRateCents int64         `json:"daily_rate_cents"`
	Available      bool          `json:"available"`
	Maintenance    []Maintenance `json:"maintenance"`
	Latitude       float64       `json:"latitude"`
	Longitude      float64       `json:"longitude"`
	CreatedOn      time.Time     `json:"created_on"`
}

// Position formats the simulated GPS fix
func (v *Vehicle) Position() string {
	return fmt.Sprintf("Lat: %.6f, Lon: %.6f", v.Latitude, v.Longitude)
}

// Clone returns a copy that does not share the maintenance log
func (v *Vehicle) Clone() *Vehicle {
	cp := *v
	cp.Maintenance = append([]Maintenance(nil), v.Maintenance...)
	return &cp
}

type FleetStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Rented    int `json:"rented"`
}
