package entity

import "time"

// Organization representa un tenant (cuenta cliente) con sus usuarios, ventas y reuniones.
type Organization struct {
	ID          string
	Name        string
	Address     string
	Industry    string
	Description string
	Phone       string
	Email       string
	Website     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
