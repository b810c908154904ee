package model

import gModel "agenda/shared/model"

// IsClientOf reports whether actor requested the booking.
func IsClientOf(actor gModel.Principal, booking Booking) bool {
	return actor.ID != "" && actor.ID == booking.ClientID
}

// IsProfessionalOf reports whether actor owns the service the booking was made for.
func IsProfessionalOf(actor gModel.Principal, booking Booking) bool {
	return actor.ID != "" && actor.ID == booking.ProfessionalID
}

func HasAdminCapability(actor gModel.Principal) bool {
	return actor.IsAdmin()
}

// CanManage is the capability required to view, cancel or move a booking.
func CanManage(actor gModel.Principal, booking Booking) bool {
	return IsClientOf(actor, booking) || IsProfessionalOf(actor, booking) || HasAdminCapability(actor)
}
