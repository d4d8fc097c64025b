package flights

import "time"

// TravelDates returns a departure daysFromNow calendar days after now and a
// return tripLength days after departure, both at midnight in now's location.
func TravelDates(now time.Time, daysFromNow, tripLength int) (departure, ret time.Time, err error) {
	if daysFromNow < 0 {
		return time.Time{}, time.Time{}, invalid("days_from_now", "days_from_now cannot be negative.")
	}
	if tripLength < 0 {
		return time.Time{}, time.Time{}, invalid("trip_length", "trip_length cannot be negative.")
	}

	y, m, d := now.Date()
	departure = time.Date(y, m, d+daysFromNow, 0, 0, 0, 0, now.Location())
	ret = departure.AddDate(0, 0, tripLength)
	return departure, ret, nil
}
