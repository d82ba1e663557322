package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus estado de una solicitud de alta (checkout o demo).
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Booking solicitud de un cliente potencial creada desde los formularios públicos.
type Booking struct {
	ID          string
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	PackageID   string
	PackageName string
	Status      BookingStatus
	TenantID    string // se llena al aprobar
	CreatedAt   time.Time
}

type bookingTransition struct {
	from, to BookingStatus
}

var bookingTransitions = map[bookingTransition]bool{
	{BookingPending, BookingApproved}: true,
	{BookingPending, BookingRejected}: true,
	{BookingApproved, BookingPending}: true, // revertir: el backend elimina tenant y usuario
	{BookingRejected, BookingPending}: true,
}

// CanTransition informa si la transición de estado está permitida.
func (b Booking) CanTransition(to BookingStatus) bool {
	return bookingTransitions[bookingTransition{b.Status, to}]
}

// Package plan comercial publicado.
type Package struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	BillingCycle string // monthly, yearly
	TrialDays    int
	Modules      []string
	Limits       Limits
}
