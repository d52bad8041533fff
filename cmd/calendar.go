package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/macbridge/internal/calendar"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage calendars, events and reminders",
	}

	cmd.AddCommand(newListCalendarsCmd())
	cmd.AddCommand(newListEventsCmd())
	cmd.AddCommand(newCreateEventCmd())
	cmd.AddCommand(newUpdateEventCmd())
	cmd.AddCommand(newDeleteEventCmd())
	cmd.AddCommand(newListReminderListsCmd())
	cmd.AddCommand(newListRemindersCmd())
	cmd.AddCommand(newCreateReminderCmd())
	cmd.AddCommand(newCompleteReminderCmd())
	cmd.AddCommand(newUpdateReminderCmd())
	cmd.AddCommand(newDeleteReminderCmd())
	return cmd
}

func newListCalendarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-calendars",
		Short: "List all calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				cals, err := client.ListCalendars(cmd.Context())
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"calendars": cals,
					"count":     len(cals),
				}, nil
			})
		},
	}
}

func newListEventsCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
		days     int
		calName  string
	)

	cmd := &cobra.Command{
		Use:   "list-events",
		Short: "List events in a date range (default: the next 7 days)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				now := time.Now()
				start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
				if startStr != "" {
					var err error
					if start, err = calendar.ParseTime(startStr); err != nil {
						return nil, err
					}
				}
				end := start.AddDate(0, 0, days)
				if endStr != "" {
					var err error
					if end, err = calendar.ParseTime(endStr); err != nil {
						return nil, err
					}
				}

				var calendars []string
				if calName != "" {
					calendars = []string{calName}
				}

				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				events, err := client.ListEvents(cmd.Context(), start, end, calendars)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"events": events,
					"count":  len(events),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "range start (RFC3339 or YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&endStr, "end", "", "range end (overrides --days)")
	cmd.Flags().IntVar(&days, "days", 7, "number of days from start")
	cmd.Flags().StringVar(&calName, "calendar", "", "restrict to one calendar by name")
	return cmd
}

func newCreateEventCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
		duration int
		calName  string
		location string
		notes    string
		url      string
		allDay   bool
	)

	cmd := &cobra.Command{
		Use:   "create-event <title>",
		Short: "Create a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				start, err := calendar.ParseTime(startStr)
				if err != nil {
					return nil, err
				}
				end := start.Add(time.Duration(duration) * time.Minute)
				if endStr != "" {
					if end, err = calendar.ParseTime(endStr); err != nil {
						return nil, err
					}
				}
				if calName == "" {
					calName = sctx.Config().DefaultCalendar
				}

				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				rec, err := client.CreateEvent(cmd.Context(), calendar.EventInput{
					Title:    args[0],
					Start:    start,
					End:      end,
					Calendar: calName,
					Location: location,
					Notes:    notes,
					URL:      url,
					AllDay:   allDay,
				})
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message": fmt.Sprintf("Created event '%s'", rec.Title),
					"event":   rec,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start time (RFC3339 or YYYY-MM-DDTHH:MM:SS local)")
	cmd.Flags().StringVar(&endStr, "end", "", "end time (default: start plus --duration)")
	cmd.Flags().IntVar(&duration, "duration", 60, "duration in minutes when no --end is given")
	cmd.Flags().StringVar(&calName, "calendar", "", "calendar name (default: the default calendar)")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	cmd.Flags().StringVar(&notes, "notes", "", "event notes")
	cmd.Flags().StringVar(&url, "url", "", "event URL")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "create an all-day event")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newUpdateEventCmd() *cobra.Command {
	var (
		title    string
		startStr string
		endStr   string
		location string
		notes    string
		future   bool
	)

	cmd := &cobra.Command{
		Use:   "update-event <event-id>",
		Short: "Update fields of an existing event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				upd := calendar.EventUpdate{FutureEvents: future}
				if cmd.Flags().Changed("title") {
					upd.Title = &title
				}
				if startStr != "" {
					t, err := calendar.ParseTime(startStr)
					if err != nil {
						return nil, err
					}
					upd.Start = &t
				}
				if endStr != "" {
					t, err := calendar.ParseTime(endStr)
					if err != nil {
						return nil, err
					}
					upd.End = &t
				}
				if cmd.Flags().Changed("location") {
					upd.Location = &location
				}
				if cmd.Flags().Changed("notes") {
					upd.Notes = &notes
				}

				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				rec, err := client.UpdateEvent(cmd.Context(), args[0], upd)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message": fmt.Sprintf("Updated event '%s'", rec.Title),
					"event":   rec,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&startStr, "start", "", "new start time")
	cmd.Flags().StringVar(&endStr, "end", "", "new end time")
	cmd.Flags().StringVar(&location, "location", "", "new location")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	cmd.Flags().BoolVar(&future, "future", false, "apply to this and all future occurrences")
	return cmd
}

func newDeleteEventCmd() *cobra.Command {
	var future bool

	cmd := &cobra.Command{
		Use:   "delete-event <event-id>",
		Short: "Delete an event by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				if err := client.DeleteEvent(cmd.Context(), args[0], future); err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message": fmt.Sprintf("Deleted event '%s'", args[0]),
				}, nil
			})
		},
	}

	cmd.Flags().BoolVar(&future, "future", false, "delete this and all future occurrences")
	return cmd
}

func newListReminderListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-reminder-lists",
		Short: "List all reminder lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				lists, err := client.ListReminderLists(cmd.Context())
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"lists": lists,
					"count": len(lists),
				}, nil
			})
		},
	}
}

func newListRemindersCmd() *cobra.Command {
	var (
		listName         string
		includeCompleted bool
	)

	cmd := &cobra.Command{
		Use:   "list-reminders",
		Short: "List reminders, excluding completed ones by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				reminders, err := client.ListReminders(cmd.Context(), listName, includeCompleted)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"reminders": reminders,
					"count":     len(reminders),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&listName, "list", "", "restrict to one reminder list by name")
	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "include completed reminders")
	return cmd
}

func newCreateReminderCmd() *cobra.Command {
	var (
		dueStr   string
		listName string
		notes    string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "create-reminder <title>",
		Short: "Create a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				if listName == "" {
					listName = sctx.Config().DefaultReminderList
				}
				in := calendar.ReminderInput{
					Title:    args[0],
					List:     listName,
					Notes:    notes,
					Priority: priority,
				}
				if dueStr != "" {
					due, err := calendar.ParseTime(dueStr)
					if err != nil {
						return nil, err
					}
					in.Due = &due
				}

				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				rec, err := client.CreateReminder(cmd.Context(), in)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message":  fmt.Sprintf("Created reminder '%s'", rec.Title),
					"reminder": rec,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&dueStr, "due", "", "due date (RFC3339, YYYY-MM-DDTHH:MM:SS local or YYYY-MM-DD)")
	cmd.Flags().StringVar(&listName, "list", "", "reminder list name (default: the default list)")
	cmd.Flags().StringVar(&notes, "notes", "", "reminder notes")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority: 0 none, 1 high, 5 medium, 9 low")
	return cmd
}

func newCompleteReminderCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "complete-reminder <reminder-id>",
		Short: "Mark a reminder completed, or reopen it with --undo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				res, err := client.CompleteReminder(cmd.Context(), args[0], !undo)
				if err != nil {
					return nil, err
				}
				verb := "Completed"
				if undo {
					verb = "Reopened"
				}
				return map[string]interface{}{
					"message":  fmt.Sprintf("%s reminder '%s'", verb, res.Title),
					"reminder": res,
				}, nil
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "reopen instead of completing")
	return cmd
}

func newUpdateReminderCmd() *cobra.Command {
	var (
		title    string
		dueStr   string
		notes    string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "update-reminder <reminder-id>",
		Short: "Update fields of an existing reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				var upd calendar.ReminderUpdate
				if cmd.Flags().Changed("title") {
					upd.Title = &title
				}
				if dueStr != "" {
					due, err := calendar.ParseTime(dueStr)
					if err != nil {
						return nil, err
					}
					upd.Due = &due
				}
				if cmd.Flags().Changed("notes") {
					upd.Notes = &notes
				}
				if cmd.Flags().Changed("priority") {
					upd.Priority = &priority
				}

				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				rec, err := client.UpdateReminder(cmd.Context(), args[0], upd)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message":  fmt.Sprintf("Updated reminder '%s'", rec.Title),
					"reminder": rec,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&dueStr, "due", "", "new due date")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	cmd.Flags().IntVar(&priority, "priority", 0, "new priority: 0 none, 1 high, 5 medium, 9 low")
	return cmd
}

func newDeleteReminderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-reminder <reminder-id>",
		Short: "Delete a reminder by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Calendar()
				if err != nil {
					return nil, err
				}
				if err := client.DeleteReminder(cmd.Context(), args[0]); err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"message": fmt.Sprintf("Deleted reminder '%s'", args[0]),
				}, nil
			})
		},
	}
}
