package notes_tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/macbridge/internal/server"
	"github.com/teemow/macbridge/internal/tools/common"
)

// RegisterNotesTools registers all Notes tools with the MCP server.
func RegisterNotesTools(s *mcpserver.MCPServer, sc *server.Context, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

func textResult(v interface{}) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.Context) {
	listAccountsTool := mcp.NewTool("notes_list_accounts",
		mcp.WithDescription("List all Notes accounts"),
	)

	s.AddTool(listAccountsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		accounts, err := client.ListAccounts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(accounts), nil
	})

	listFoldersTool := mcp.NewTool("notes_list_folders",
		mcp.WithDescription("List all folders of all accounts with their note counts"),
	)

	s.AddTool(listFoldersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		folders, err := client.ListFolders(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(folders), nil
	})

	listNotesTool := mcp.NewTool("notes_list",
		mcp.WithDescription("List note titles, optionally scoped to an account or folder"),
		mcp.WithString("account",
			mcp.Description("Account name (exact, case-sensitive)"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder name (exact, case-sensitive). Without an account the first account containing the folder wins."),
		),
	)

	s.AddTool(listNotesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		titles, err := client.ListNotes(ctx,
			common.StringArg(args, "account"),
			common.StringArg(args, "folder"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(titles), nil
	})

	readNoteTool := mcp.NewTool("notes_read",
		mcp.WithDescription("Read a note by title. Without an account, accounts are searched in order and the first match wins."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title (exact, case-sensitive)"),
		),
		mcp.WithString("account",
			mcp.Description("Account name"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder name"),
		),
		mcp.WithBoolean("plaintext",
			mcp.Description("Return plain text instead of the HTML body"),
		),
	)

	s.AddTool(readNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		note, err := client.Read(ctx, title,
			common.StringArg(args, "account"),
			common.StringArg(args, "folder"),
			common.BoolArg(args, "plaintext"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(note), nil
	})

	searchTool := mcp.NewTool("notes_search",
		mcp.WithDescription("Search note titles and bodies across all accounts (case-insensitive)"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
	)

	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		query := common.StringArg(args, "query")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		matches, err := client.Search(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(matches), nil
	})

	countTool := mcp.NewTool("notes_count",
		mcp.WithDescription("Count notes per account"),
	)

	s.AddTool(countTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := client.Count(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(result), nil
	})
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.Context) {
	createNoteTool := mcp.NewTool("notes_create",
		mcp.WithDescription("Create a note. Without an account the note lands in the first account's default folder."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title"),
		),
		mcp.WithString("body",
			mcp.Description("Note body (single line)"),
		),
		mcp.WithString("account",
			mcp.Description("Account name"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder name"),
		),
	)

	s.AddTool(createNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msg, err := client.Create(ctx, title,
			common.StringArg(args, "body"),
			common.StringArg(args, "account"),
			common.StringArg(args, "folder"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(msg), nil
	})

	appendNoteTool := mcp.NewTool("notes_append",
		mcp.WithDescription("Append text to an existing note"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title (exact, case-sensitive)"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to append (single line)"),
		),
		mcp.WithString("account",
			mcp.Description("Account name"),
		),
	)

	s.AddTool(appendNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		text := common.StringArg(args, "text")
		if title == "" || text == "" {
			return mcp.NewToolResultError("title and text are required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msg, err := client.Append(ctx, title, text, common.StringArg(args, "account"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(msg), nil
	})

	deleteNoteTool := mcp.NewTool("notes_delete",
		mcp.WithDescription("Delete a note by title"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Note title (exact, case-sensitive)"),
		),
		mcp.WithString("account",
			mcp.Description("Account name"),
		),
		mcp.WithString("folder",
			mcp.Description("Folder name"),
		),
	)

	s.AddTool(deleteNoteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title := common.StringArg(args, "title")
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msg, err := client.Delete(ctx, title,
			common.StringArg(args, "account"),
			common.StringArg(args, "folder"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(msg), nil
	})

	createFolderTool := mcp.NewTool("notes_create_folder",
		mcp.WithDescription("Create a folder, in the first account when none is given"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name"),
		),
		mcp.WithString("account",
			mcp.Description("Account name"),
		),
	)

	s.AddTool(createFolderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		name := common.StringArg(args, "name")
		if name == "" {
			return mcp.NewToolResultError("name is required"), nil
		}

		client, err := sc.Notes()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msg, err := client.CreateFolder(ctx, name, common.StringArg(args, "account"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(msg), nil
	})
}
