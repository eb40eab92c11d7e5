package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVisitorDetail prints a single visitor record in text format.
func printVisitorDetail(v *visitor.Visitor) {
	fmt.Printf("Visitor #%d\n", v.ID)
	fmt.Printf("  Name:       %s\n", v.Name)
	fmt.Printf("  Apartment:  %s\n", v.ApartmentNumber)
	fmt.Printf("  Purpose:    %s\n", v.Purpose)
	if v.PhoneNumber != "" {
		fmt.Printf("  Phone:      %s\n", v.PhoneNumber)
	}
	fmt.Printf("  Checked in: %s\n", v.CheckInTime.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Notified:   %s\n", yesNo(v.Notified))
}

// printVisitorTable prints a list of visitors as a formatted table.
func printVisitorTable(visitors []*visitor.Visitor, total int64) error {
	if len(visitors) == 0 {
		fmt.Println("No visitors recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAPARTMENT\tPURPOSE\tCHECKED IN\tNOTIFIED")
	for _, v := range visitors {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Name, v.ApartmentNumber, v.Purpose,
			v.CheckInTime.Local().Format("2006-01-02 15:04"),
			yesNo(v.Notified),
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	if int64(len(visitors)) < total {
		fmt.Printf("\nShowing %d of %d visitors\n", len(visitors), total)
	}
	return nil
}

// printStats prints aggregate statistics in text format.
func printStats(s *visitor.Stats) {
	fmt.Printf("Total visitors:    %d\n", s.TotalVisitors)
	fmt.Printf("Notified:          %d\n", s.NotifiedVisitors)
	fmt.Printf("Today:             %d\n", s.TodayVisitors)

	if len(s.TopApartments) > 0 {
		fmt.Println("\nTop apartments:")
		for _, a := range s.TopApartments {
			fmt.Printf("  %s: %d\n", a.Apartment, a.Visits)
		}
	}

	if len(s.DailyVisitors) > 0 {
		fmt.Println("\nLast 7 days:")
		for _, d := range s.DailyVisitors {
			fmt.Printf("  %s: %d\n", d.Date, d.Count)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
