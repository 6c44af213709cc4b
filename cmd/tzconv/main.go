// Command tzconv converts a wall-clock time between two zones given as
// POSIX-style TZ strings or well-known ids, and reports how the source
// reading classifies: daylight, ambiguous or nonexistent.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/ngrash/go-tzone/tzone"
	"github.com/ngrash/go-tzone/tzregistry"
	"github.com/ngrash/go-tzone/tzstr"
)

var (
	fromFlag    = flag.String("from", "UTC", "source zone: TZ string or well-known id")
	toFlag      = flag.String("to", "UTC", "destination zone: TZ string or well-known id")
	lenientFlag = flag.Bool("lenient", false, "convert nonexistent readings as standard time instead of failing")
	verboseFlag = flag.Bool("verbose", false, "enable debug logging")
)

const timeLayout = "2006-01-02T15:04:05"

// wellKnown are a few common zone definitions usable by id.
var wellKnown = tzregistry.TZStringProvider{
	"US/Pacific":   "PST8PDT,M3.2.0,M11.1.0",
	"US/Eastern":   "EST5EDT,M3.2.0,M11.1.0",
	"Europe/CET":   "CET-1CEST,M3.5.0,M10.5.0/3",
	"Australia/SE": "AEST-10AEDT,M10.1.0,M4.1.0/3",
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <time, e.g. %s>\n", os.Args[0], timeLayout)
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelError
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry := tzregistry.New([]tzregistry.Provider{wellKnown}, tzregistry.WithLogger(logger))

	source, err := resolveZone(registry, *fromFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "source zone:", err)
		os.Exit(1)
	}
	dest, err := resolveZone(registry, *toFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "destination zone:", err)
		os.Exit(1)
	}

	wall, err := time.Parse(timeLayout, args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "parsing time:", err)
		os.Exit(1)
	}
	dt := tzone.FromTime(wall.UTC()).WithKind(tzone.Unspecified)

	printClassification(source, dt)

	var converted tzone.DateTime
	if *lenientFlag {
		converted = tzone.ConvertTimeNoCheck(dt, source, dest)
	} else {
		converted, err = tzone.ConvertTime(dt, source, dest)
		var invalidErr *tzone.InvalidTimeError
		if errors.As(err, &invalidErr) {
			fmt.Fprintln(os.Stderr, color.RedString("cannot convert: %v", err))
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "converting:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("%s %s = %s %s\n",
		dt.Time().Format(timeLayout), source.ID(),
		color.GreenString(converted.Time().Format(timeLayout)), dest.ID())
}

// resolveZone tries the registry first and falls back to parsing the
// argument as a TZ string.
func resolveZone(registry *tzregistry.Registry, s string) (*tzone.TimeZone, error) {
	z, err := registry.Lookup(s)
	if err == nil {
		return z, nil
	}
	if !errors.Is(err, tzregistry.ErrZoneNotFound) {
		return nil, err
	}
	return tzstr.Parse(s)
}

func printClassification(z *tzone.TimeZone, dt tzone.DateTime) {
	offset := z.UTCOffset(dt)
	fmt.Printf("offset in %s: %s\n", z.ID(), formatOffset(offset))

	switch {
	case z.IsInvalidTime(dt):
		fmt.Println(color.RedString("this reading does not exist (skipped by spring-forward)"))
	case z.IsAmbiguousTime(dt):
		first, second, err := z.AmbiguousOffsets(dt)
		if err == nil {
			fmt.Println(color.YellowString("this reading occurs twice: %s or %s", formatOffset(first), formatOffset(second)))
		}
	case z.IsDaylightSavingTime(dt):
		fmt.Println("daylight saving is in effect")
	}
}

func formatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d/time.Hour), int(d%time.Hour)/int(time.Minute))
}
