package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/ngrash/go-tzone/tzif"
	"github.com/ngrash/go-tzone/tzstr"
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzinspect <tzif file>")
		os.Exit(1)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}
	f, err := tzif.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}
	fmt.Println("Version:", f.Version)
	if f.TZString == "" {
		fmt.Println("TZ string: <none>")
		return
	}
	fmt.Println("TZ string:", f.TZString)

	z, err := tzstr.Parse(f.TZString)
	if err != nil {
		fmt.Println("parsing tz string:", err)
		os.Exit(1)
	}
	fmt.Println("Base UTC offset:", z.BaseUTCOffset())
	fmt.Println("Daylight saving:", z.SupportsDaylightSavingTime())
}
