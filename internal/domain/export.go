package domain

// TripExportRow is a single row in the trips CSV export.
// It is a flat, denormalized view: one row per journal entry, with trip fields
// repeated for every entry on that trip. Trips with no journal entries yield
// one row with empty journal fields.
type TripExportRow struct {
	// Trip fields, repeated for every journal entry on the trip.
	TripID        int
	TripName      string
	Destination   string
	StartDate     string
	EndDate       string
	TotalExpenses float64

	// Journal fields, empty when the trip has no journal entries.
	JournalDate  string
	JournalEntry string
}
