package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/macbridge/internal/calendar"
	"github.com/teemow/macbridge/internal/server"
	"github.com/teemow/macbridge/internal/tools/common"
)

// RegisterCalendarTools registers all calendar and reminder tools with
// the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.Context, readOnly bool) error {
	if err := registerEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}
	if err := registerReminderTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register reminder tools: %w", err)
	}
	return nil
}

func textResult(v interface{}) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

// registerEventTools registers calendar and event management tools.
func registerEventTools(s *mcpserver.MCPServer, sc *server.Context, readOnly bool) error {
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars with their identifiers and sources"),
	)

	s.AddTool(listCalendarsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cals, err := client.ListCalendars(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(cals), nil
	})

	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List events in a date range. Without a range, lists the next 7 days."),
		mcp.WithString("start",
			mcp.Description("Range start (RFC3339 or YYYY-MM-DD, default: today)"),
		),
		mcp.WithString("end",
			mcp.Description("Range end (RFC3339 or YYYY-MM-DD, overrides days)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days from start (default: 7)"),
		),
		mcp.WithString("calendar",
			mcp.Description("Restrict to one calendar by name (exact, case-sensitive)"),
		),
	)

	s.AddTool(listEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		start := startOfToday()
		if v := common.StringArg(args, "start"); v != "" {
			var err error
			if start, err = calendar.ParseTime(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		end := start.AddDate(0, 0, common.IntArg(args, "days", 7))
		if v := common.StringArg(args, "end"); v != "" {
			var err error
			if end, err = calendar.ParseTime(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		var calendars []string
		if v := common.StringArg(args, "calendar"); v != "" {
			calendars = []string{v}
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		events, err := client.ListEvents(ctx, start, end, calendars)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(events), nil
	})

	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a calendar event"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 or YYYY-MM-DDTHH:MM:SS local)"),
		),
		mcp.WithString("end",
			mcp.Description("End time (default: start plus duration_minutes)"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Duration in minutes when no end is given (default: 60)"),
		),
		mcp.WithString("calendar",
			mcp.Description("Calendar name (default: the default calendar)"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("notes",
			mcp.Description("Event notes"),
		),
		mcp.WithString("url",
			mcp.Description("Event URL"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Create an all-day event"),
		),
	)

	s.AddTool(createEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		startStr := common.StringArg(args, "start")
		if startStr == "" {
			return mcp.NewToolResultError("start is required"), nil
		}
		start, err := calendar.ParseTime(startStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end := start.Add(time.Duration(common.IntArg(args, "duration_minutes", 60)) * time.Minute)
		if v := common.StringArg(args, "end"); v != "" {
			if end, err = calendar.ParseTime(v); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rec, err := client.CreateEvent(ctx, calendar.EventInput{
			Title:    title,
			Start:    start,
			End:      end,
			Calendar: common.StringArg(args, "calendar"),
			Location: common.StringArg(args, "location"),
			Notes:    common.StringArg(args, "notes"),
			URL:      common.StringArg(args, "url"),
			AllDay:   common.BoolArg(args, "all_day"),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(rec), nil
	})

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update fields of an existing event. Omitted fields are unchanged."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Identifier of the event to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("start",
			mcp.Description("New start time"),
		),
		mcp.WithString("end",
			mcp.Description("New end time"),
		),
		mcp.WithString("location",
			mcp.Description("New location"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes"),
		),
		mcp.WithBoolean("future_events",
			mcp.Description("Apply to this and all future occurrences of a recurring event"),
		),
	)

	s.AddTool(updateEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		eventID := common.StringArg(args, "event_id")
		if eventID == "" {
			return mcp.NewToolResultError("event_id is required"), nil
		}

		upd := calendar.EventUpdate{FutureEvents: common.BoolArg(args, "future_events")}
		if v, ok := args["title"].(string); ok {
			upd.Title = &v
		}
		if v := common.StringArg(args, "start"); v != "" {
			t, err := calendar.ParseTime(v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			upd.Start = &t
		}
		if v := common.StringArg(args, "end"); v != "" {
			t, err := calendar.ParseTime(v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			upd.End = &t
		}
		if v, ok := args["location"].(string); ok {
			upd.Location = &v
		}
		if v, ok := args["notes"].(string); ok {
			upd.Notes = &v
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rec, err := client.UpdateEvent(ctx, eventID, upd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(rec), nil
	})

	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete an event by identifier"),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Identifier of the event to delete"),
		),
		mcp.WithBoolean("future_events",
			mcp.Description("Delete this and all future occurrences of a recurring event"),
		),
	)

	s.AddTool(deleteEventTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		eventID := common.StringArg(args, "event_id")
		if eventID == "" {
			return mcp.NewToolResultError("event_id is required"), nil
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.DeleteEvent(ctx, eventID, common.BoolArg(args, "future_events")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted event '%s'", eventID)), nil
	})

	return nil
}

// registerReminderTools registers reminder management tools.
func registerReminderTools(s *mcpserver.MCPServer, sc *server.Context, readOnly bool) error {
	listListsTool := mcp.NewTool("reminders_list_lists",
		mcp.WithDescription("List all reminder lists"),
	)

	s.AddTool(listListsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		lists, err := client.ListReminderLists(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(lists), nil
	})

	listRemindersTool := mcp.NewTool("reminders_list",
		mcp.WithDescription("List reminders, excluding completed ones by default"),
		mcp.WithString("list",
			mcp.Description("Restrict to one reminder list by name (exact, case-sensitive)"),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed reminders"),
		),
	)

	s.AddTool(listRemindersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reminders, err := client.ListReminders(ctx,
			common.StringArg(args, "list"),
			common.BoolArg(args, "include_completed"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(reminders), nil
	})

	if readOnly {
		return nil
	}

	createReminderTool := mcp.NewTool("reminders_create",
		mcp.WithDescription("Create a reminder"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Reminder title"),
		),
		mcp.WithString("due",
			mcp.Description("Due date (RFC3339, YYYY-MM-DDTHH:MM:SS local or YYYY-MM-DD)"),
		),
		mcp.WithString("list",
			mcp.Description("Reminder list name (default: the default list)"),
		),
		mcp.WithString("notes",
			mcp.Description("Reminder notes"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0 none, 1 high, 5 medium, 9 low"),
		),
	)

	s.AddTool(createReminderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		in := calendar.ReminderInput{
			Title:    title,
			List:     common.StringArg(args, "list"),
			Notes:    common.StringArg(args, "notes"),
			Priority: common.IntArg(args, "priority", 0),
		}
		if v := common.StringArg(args, "due"); v != "" {
			due, err := calendar.ParseTime(v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			in.Due = &due
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rec, err := client.CreateReminder(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(rec), nil
	})

	completeReminderTool := mcp.NewTool("reminders_complete",
		mcp.WithDescription("Mark a reminder completed, or reopen it with undo"),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("Identifier of the reminder"),
		),
		mcp.WithBoolean("undo",
			mcp.Description("Reopen instead of completing"),
		),
	)

	s.AddTool(completeReminderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		reminderID := common.StringArg(args, "reminder_id")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := client.CompleteReminder(ctx, reminderID, !common.BoolArg(args, "undo"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(res), nil
	})

	updateReminderTool := mcp.NewTool("reminders_update",
		mcp.WithDescription("Update fields of an existing reminder. Omitted fields are unchanged."),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("Identifier of the reminder to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("due",
			mcp.Description("New due date"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0 none, 1 high, 5 medium, 9 low"),
		),
	)

	s.AddTool(updateReminderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		reminderID := common.StringArg(args, "reminder_id")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}

		var upd calendar.ReminderUpdate
		if v, ok := args["title"].(string); ok {
			upd.Title = &v
		}
		if v := common.StringArg(args, "due"); v != "" {
			due, err := calendar.ParseTime(v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			upd.Due = &due
		}
		if v, ok := args["notes"].(string); ok {
			upd.Notes = &v
		}
		if _, ok := args["priority"]; ok {
			p := common.IntArg(args, "priority", 0)
			upd.Priority = &p
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rec, err := client.UpdateReminder(ctx, reminderID, upd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(rec), nil
	})

	deleteReminderTool := mcp.NewTool("reminders_delete",
		mcp.WithDescription("Delete a reminder by identifier"),
		mcp.WithString("reminder_id",
			mcp.Required(),
			mcp.Description("Identifier of the reminder to delete"),
		),
	)

	s.AddTool(deleteReminderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		reminderID := common.StringArg(args, "reminder_id")
		if reminderID == "" {
			return mcp.NewToolResultError("reminder_id is required"), nil
		}

		client, err := sc.Calendar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.DeleteReminder(ctx, reminderID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted reminder '%s'", reminderID)), nil
	})

	return nil
}

// startOfToday returns local midnight of the current day.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
