package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the slot template generated from the configured clinic hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dateStr, _ := cmd.Flags().GetString("date")

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			date := time.Now()
			if dateStr != "" {
				date, err = time.Parse(domain.DateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", dateStr)
				}
			}

			windows := scheduler.GenerateTimeSlots(date, cfg.Clinic.ClinicHours())

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Slots for %s (%d)\n", date.Format(domain.DateFormat), len(windows))
			for i, window := range windows {
				fmt.Fprintf(w, "%d\t%s-%s\t%s\n", i+1, window.StartTime, window.EndTime, window.Display())
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("date", "", "Date in YYYY-MM-DD (default: today)")

	return cmd
}
