package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Availability  *AvailabilityHandler
	Providers     *ProviderHandler
	Bookings      *BookingHandler
	Quotes        *QuoteHandler
	Groups        *GroupHandler
	Notifications *NotificationHandler
}
