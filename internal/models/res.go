package models

type BookingCreatedResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}

type BookingListResponse struct {
	Bookings []*Booking `json:"bookings"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

func CreatedResponse(bookingID int64) BookingCreatedResponse {
	return BookingCreatedResponse{
		Message:   "Booking created successfully",
		BookingID: bookingID,
	}
}

func ListResponse(bookings []*Booking) BookingListResponse {
	if bookings == nil {
		bookings = []*Booking{}
	}
	return BookingListResponse{Bookings: bookings}
}

func ErrorResponse(err string) ErrorBody {
	return ErrorBody{Error: err}
}
