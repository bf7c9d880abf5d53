package schedule

import (
	"fmt"
	"time"
)

var weekdaysFR = [7]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

var monthsFR = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// WeekdayFR returns the French weekday name.
func WeekdayFR(d time.Weekday) string {
	return weekdaysFR[int(d)]
}

// FormatDateFR renders a date the way the site displays it:
// "Samedi 20 Février 2026".
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%s %d %s %d", WeekdayFR(t.Weekday()), t.Day(), monthsFR[int(t.Month())-1], t.Year())
}
