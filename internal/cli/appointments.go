package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	aarogyam "github.com/sagarpathak0/aarogyam-go"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appt"},
	Short:   "Book and manage appointments",
	Long: `Appointment commands.

Examples:
  aarogyactl appointments book --provider 42 --date 2026-09-01 --time 10:30
  aarogyactl appointments list
  aarogyactl appointments reschedule a-17 --date 2026-09-02 --time 11:00
  aarogyactl appointments cancel a-17
  aarogyactl appointments all`,
}

var apptBookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment with a provider",
	RunE:  runApptBook,
}

var apptRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id>",
	Short: "Move an appointment to a new slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runApptReschedule,
}

var apptCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runApptCancel,
}

var apptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your appointments",
	Long: `List your appointments.

With --watch the list refreshes on an interval until interrupted. A slow
refresh that arrives after a newer one is discarded rather than shown.`,
	RunE: runApptList,
}

var apptAllCmd = &cobra.Command{
	Use:   "all",
	Short: "List every appointment (admin)",
	RunE:  runApptAll,
}

func init() {
	apptBookCmd.Flags().String("provider", "", "provider id to book with")
	apptBookCmd.Flags().String("date", "", "appointment date (YYYY-MM-DD)")
	apptBookCmd.Flags().String("time", "", "appointment time (HH:MM)")
	_ = apptBookCmd.MarkFlagRequired("provider")
	_ = apptBookCmd.MarkFlagRequired("date")
	_ = apptBookCmd.MarkFlagRequired("time")

	apptListCmd.Flags().Bool("watch", false, "refresh the list on an interval")
	apptListCmd.Flags().Duration("interval", 5*time.Second, "refresh interval for --watch")

	apptRescheduleCmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	apptRescheduleCmd.Flags().String("time", "", "new time (HH:MM)")
	_ = apptRescheduleCmd.MarkFlagRequired("date")
	_ = apptRescheduleCmd.MarkFlagRequired("time")

	appointmentsCmd.AddCommand(apptBookCmd)
	appointmentsCmd.AddCommand(apptRescheduleCmd)
	appointmentsCmd.AddCommand(apptCancelCmd)
	appointmentsCmd.AddCommand(apptListCmd)
	appointmentsCmd.AddCommand(apptAllCmd)

	rootCmd.AddCommand(appointmentsCmd)
}

func runApptBook(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	provider, _ := cmd.Flags().GetString("provider")
	date, _ := cmd.Flags().GetString("date")
	slot, _ := cmd.Flags().GetString("time")

	result, err := client.Appointments.Book(context.Background(), aarogyam.BookRequest{
		ProviderID: provider,
		Date:       date,
		Time:       slot,
	})
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Appointment booked for %s at %s\n", colorGreen("✓"), date, slot)
	return nil
}

func runApptReschedule(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	slot, _ := cmd.Flags().GetString("time")

	result, err := client.Appointments.Reschedule(context.Background(), args[0], date, slot)
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Appointment %s moved to %s at %s\n", colorGreen("✓"), args[0], date, slot)
	return nil
}

func runApptCancel(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	result, err := client.Appointments.Cancel(context.Background(), args[0])
	if err != nil {
		printError(err)
		return err
	}

	if jsonOut {
		return printJSON(result)
	}

	fmt.Printf("%s Appointment cancelled: %s\n", colorGreen("✓"), args[0])
	return nil
}

func runApptList(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAuth(store); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		interval, _ := cmd.Flags().GetDuration("interval")
		return watchAppointments(client, interval)
	}

	appts, err := client.Appointments.List(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	return renderAppointments(appts, false)
}

// watchAppointments refreshes the list on a ticker until interrupted.
// Each refresh takes a fetch token; a slow response that lands after a
// newer refresh has begun is dropped instead of rendered out of order.
func watchAppointments(client *aarogyam.Client, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gate := &aarogyam.FetchGate{}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh := func() {
		token := gate.Begin()
		go func() {
			appts, err := client.Appointments.List(ctx)
			gate.Apply(token, func() {
				if err != nil {
					if ctx.Err() == nil {
						printError(err)
					}
					return
				}
				fmt.Printf("\n%s %s\n", colorYellow("refreshed"), time.Now().Format("15:04:05"))
				_ = renderAppointments(appts, false)
			})
		}()
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}

func runApptAll(cmd *cobra.Command, args []string) error {
	client, store, err := getClient()
	if err != nil {
		return err
	}
	if err := requireAdmin(store); err != nil {
		return err
	}

	appts, err := client.Appointments.All(context.Background())
	if err != nil {
		printError(err)
		return err
	}

	return renderAppointments(appts, true)
}

func renderAppointments(appts []aarogyam.Appointment, withPatient bool) error {
	if jsonOut {
		return printJSON(map[string]interface{}{
			"appointments": appts,
			"count":        len(appts),
		})
	}

	if len(appts) == 0 {
		fmt.Println("No appointments found")
		return nil
	}

	w := newTable()
	if withPatient {
		printTableHeader(w, "ID", "PATIENT", "PROVIDER", "DATE", "TIME")
		for _, a := range appts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(a.ID, 12), a.UserName, a.ProviderName, a.Date, a.Time)
		}
	} else {
		printTableHeader(w, "ID", "PROVIDER", "DATE", "TIME")
		for _, a := range appts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(a.ID, 12), a.ProviderName, a.Date, a.Time)
		}
	}
	return w.Flush()
}
