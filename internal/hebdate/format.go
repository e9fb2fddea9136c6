package hebdate

import (
	"fmt"
	"strconv"

	"github.com/hebcal/gematriya"
)

// hebrewMonths maps month numbers to their Hebrew display names. The table
// is static: months 12/13 always render as Adar I/Adar II, matching the
// display the rest of the system has always produced.
var hebrewMonths = map[int]string{
	1:  "ניסן",
	2:  "אייר",
	3:  "סיון",
	4:  "תמוז",
	5:  "אב",
	6:  "אלול",
	7:  "תשרי",
	8:  "חשון",
	9:  "כסלו",
	10: "טבת",
	11: "שבט",
	12: "אדר א׳",
	13: "אדר ב׳",
}

// hebrewDays maps day-of-month to its traditional letter rendering.
var hebrewDays = map[int]string{
	1: "א׳", 2: "ב׳", 3: "ג׳", 4: "ד׳", 5: "ה׳",
	6: "ו׳", 7: "ז׳", 8: "ח׳", 9: "ט׳", 10: "י׳",
	11: "י״א", 12: "י״ב", 13: "י״ג", 14: "י״ד", 15: "ט״ו",
	16: "ט״ז", 17: "י״ז", 18: "י״ח", 19: "י״ט", 20: "כ׳",
	21: "כ״א", 22: "כ״ב", 23: "כ״ג", 24: "כ״ד", 25: "כ״ה",
	26: "כ״ו", 27: "כ״ז", 28: "כ״ח", 29: "כ״ט", 30: "ל׳",
}

// String renders the date as "{day} {month} {year}" with the day as Hebrew
// letters, the month name from the static table, and the year in gematria,
// e.g. "ט״ו ניסן תשפ״ו". This output is used verbatim as display text by
// downstream consumers. Components outside the tables fall back to digits.
func (d Date) String() string {
	day, ok := hebrewDays[d.day]
	if !ok {
		day = strconv.Itoa(d.day)
	}
	month, ok := hebrewMonths[d.month]
	if !ok {
		month = strconv.Itoa(d.month)
	}
	year := gematriya.Gematriya(d.year)
	return fmt.Sprintf("%s %s %s", day, month, year)
}
