package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var bookReq core.BookingRequest

var bookCmd = &cobra.Command{
	Use:          "book",
	Short:        "Request an interview",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			b, err := a.Bookings().Create(ctx, bookReq)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTitle(out, "Interview requested")
			printField(out, "booking", b.ID)
			printField(out, "when", b.PreferredDate+" "+b.PreferredTime)
			printField(out, "status", b.Status)
			return nil
		})
	},
}

var bookingsCmd = &cobra.Command{
	Use:          "bookings [session]",
	Short:        "List interview requests",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			var session string
			if len(args) == 1 {
				session = args[0]
			}
			list, err := a.Bookings().List(ctx, session)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No bookings.")
				return nil
			}
			for _, b := range list {
				fmt.Fprintf(out, "%s  %s %s  %-24s %s  %s\n",
					ui.DescStyle.Render(b.ID), b.PreferredDate, b.PreferredTime, b.Name, b.Email, b.Status)
			}
			return nil
		})
	},
}

func init() {
	f := bookCmd.Flags()
	f.StringVar(&bookReq.SessionID, "session", "cli-local", "session the booking belongs to")
	f.StringVar(&bookReq.Name, "name", "", "full name")
	f.StringVar(&bookReq.Email, "email", "", "contact email")
	f.StringVar(&bookReq.PreferredDate, "date", "", "preferred date, YYYY-MM-DD")
	f.StringVar(&bookReq.PreferredTime, "time", "", "preferred time, HH:MM")
	f.StringVar(&bookReq.Notes, "notes", "", "anything the interviewer should know")
	for _, name := range []string{"name", "email", "date", "time"} {
		_ = bookCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(bookCmd, bookingsCmd)
}
