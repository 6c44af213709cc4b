// Command tzinfo prints a zone's adjustment rules and the concrete
// transition times they produce for a given year.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ngrash/go-tzone/tzone"
	"github.com/ngrash/go-tzone/tzstr"
)

var yearFlag = flag.Int("year", time.Now().Year(), "year to resolve transitions for")

const timeLayout = "2006-01-02 15:04:05"

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-year] <tz string>\n", os.Args[0])
		os.Exit(1)
	}

	z, err := tzstr.Parse(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsing zone:", err)
		os.Exit(1)
	}

	fmt.Println("Zone:", z.ID())
	fmt.Println("Base UTC offset:", formatOffset(z.BaseUTCOffset()))
	fmt.Println("Daylight saving:", z.SupportsDaylightSavingTime())

	for i, rule := range z.AdjustmentRules() {
		if *yearFlag < rule.DateStart().Year() || *yearFlag > rule.DateEnd().Year() {
			continue
		}
		fmt.Println()
		fmt.Printf("Rule %d: %s to %s\n", i,
			rule.DateStart().Time().Format("2006-01-02"),
			rule.DateEnd().Time().Format("2006-01-02"))
		fmt.Println("  daylight delta:", rule.DaylightDelta())
		if d := rule.BaseUTCOffsetDelta(); d != 0 {
			fmt.Println("  base offset delta:", d)
		}
		if rule.NoDaylightTransitions() {
			fmt.Println("  daylight from:", rule.DateStart().Time().Format(timeLayout), "UTC")
			fmt.Println("  daylight to:  ", rule.DateEnd().Time().Format(timeLayout), "UTC")
			continue
		}
		printTransitions(rule, *yearFlag)
	}
}

func printTransitions(rule tzone.AdjustmentRule, year int) {
	start := rule.TransitionStart().ResolveYear(year)
	end := rule.TransitionEnd().ResolveYear(year)
	delta := rule.DaylightDelta()

	fmt.Println("  daylight from:", start.Time().Format(timeLayout))
	fmt.Println("  daylight to:  ", end.Time().Format(timeLayout))
	if delta == 0 {
		return
	}

	// the shifted clock skips one window and repeats another
	var skipFrom, skipTo, repFrom, repTo tzone.DateTime
	if delta > 0 {
		skipFrom, skipTo = start, start.Add(delta)
		repFrom, repTo = end.Add(-delta), end
	} else {
		skipFrom, skipTo = end, end.Add(-delta)
		repFrom, repTo = start, start.Add(-delta)
	}
	fmt.Printf("  skipped:  [%s, %s)\n", skipFrom.Time().Format(timeLayout), skipTo.Time().Format(timeLayout))
	fmt.Printf("  repeated: [%s, %s)\n", repFrom.Time().Format(timeLayout), repTo.Time().Format(timeLayout))
}

func formatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d/time.Hour), int(d%time.Hour)/int(time.Minute))
}
