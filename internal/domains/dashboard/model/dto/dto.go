package dto

import (
	"time"

	bookingDto "lodge/internal/domains/booking/model/dto"
)

type UpcomingCheckoutResponse struct {
	BookingCode  string    `json:"booking_code"`
	GuestName    string    `json:"guest_name"`
	RoomNumber   string    `json:"room_number"`
	CheckOutAt   time.Time `json:"check_out_at"`
	Remaining    string    `json:"remaining"`
	DeltaMinutes int64     `json:"delta_minutes"`
}

type OverdueResponse struct {
	BookingCode    string `json:"booking_code"`
	GuestName      string `json:"guest_name"`
	RoomNumber     string `json:"room_number"`
	OverdueMinutes int64  `json:"overdue_minutes"`
}

// FrontDeskResponse is the receptionist view. The admin view extends it.
type FrontDeskResponse struct {
	GeneratedAt       time.Time                  `json:"generated_at"`
	TotalRooms        int                        `json:"total_rooms"`
	OccupancyRate     int                        `json:"occupancy_rate"`
	RoomStatus        map[string]int             `json:"room_status"`
	TodayCheckIns     int                        `json:"today_check_ins"`
	ActiveBookings    int                        `json:"active_bookings"`
	UpcomingCheckouts []UpcomingCheckoutResponse `json:"upcoming_checkouts"`
	Overdue           []OverdueResponse          `json:"overdue"`
	RoomsRefreshedAt  *time.Time                 `json:"rooms_refreshed_at,omitempty"`
	LedgerRefreshedAt *time.Time                 `json:"ledger_refreshed_at,omitempty"`
}

type AdminResponse struct {
	FrontDeskResponse
	TodayRevenue     float64 `json:"today_revenue"`
	YesterdayRevenue float64 `json:"yesterday_revenue"`
	RevenueChange    int     `json:"revenue_change"`
	TotalStaff       int     `json:"total_staff"`
	StaffOnDuty      int     `json:"staff_on_duty"`
}

type GuestResponse struct {
	GeneratedAt time.Time                    `json:"generated_at"`
	Bookings    bookingDto.PartitionResponse `json:"bookings"`
}

func OptionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
