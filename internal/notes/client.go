package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/logging"
	"github.com/teemow/macbridge/internal/osascript"
	"github.com/teemow/macbridge/internal/scope"
)

// Note is a single note's content as returned by a read.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

// AccountCount is one account's note count.
type AccountCount struct {
	Account string `json:"account"`
	Notes   int    `json:"notes"`
}

// CountResult is the per-account note census.
type CountResult struct {
	Total    int            `json:"total"`
	Accounts []AccountCount `json:"accounts"`
}

// Client provides access to the Notes application through its
// automation surface. Item lookups without an explicit account cascade
// over accounts in enumeration order and stop at the first match;
// results are never merged across accounts.
//
// There is no explicit grant step for automation; the host prompts on
// the first real interaction.
type Client struct {
	runner osascript.Runner
}

// NewClient returns a client over the given script runner.
func NewClient(runner osascript.Runner) *Client {
	return &Client{runner: runner}
}

func opLogger(op string) *slog.Logger {
	return logging.WithOperation(logging.WithService(slog.Default(), "notes"), op)
}

// Containers enumerates every folder of every account in one store
// round-trip, implementing scope.Lister.
func (c *Client) Containers(ctx context.Context, kind scope.Kind) ([]scope.Handle, error) {
	out, err := c.runner.Run(ctx, containersScript)
	if err != nil {
		return nil, err
	}
	var handles []scope.Handle
	for _, line := range decodeLines(out) {
		account, folder, ok := splitRecord(line)
		if !ok {
			continue
		}
		handles = append(handles, scope.Handle{Account: account, Container: folder})
	}
	return handles, nil
}

// accountsOf reduces handles to their accounts, preserving enumeration
// order and dropping duplicates.
func accountsOf(handles []scope.Handle) []string {
	seen := make(map[string]bool)
	var accounts []string
	for _, h := range handles {
		if !seen[h.Account] {
			seen[h.Account] = true
			accounts = append(accounts, h.Account)
		}
	}
	return accounts
}

// ListAccounts returns the names of all Notes accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, listAccountsScript)
	if err != nil {
		return nil, err
	}
	if err := sentinelErr("list-accounts", out); err != nil {
		return nil, err
	}
	return decodeLines(out), nil
}

// ListFolders returns "account > folder (N notes)" lines for every
// folder of every account.
func (c *Client) ListFolders(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, listFoldersScript)
	if err != nil {
		return nil, err
	}
	if err := sentinelErr("list-folders", out); err != nil {
		return nil, err
	}
	return decodeLines(out), nil
}

// ListNotes lists note titles, optionally filtered by account and
// folder. Scoped listings return bare titles; unscoped listings prefix
// each title with its account.
func (c *Client) ListNotes(ctx context.Context, account, folder string) ([]string, error) {
	const op = "list-notes"
	for field, v := range map[string]string{"account": account, "folder": folder} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return nil, err
		}
	}

	switch {
	case account != "" && folder != "":
		out, err := c.runner.Run(ctx, listNotesInFolderScript(account, folder))
		if err != nil {
			return nil, err
		}
		if err := sentinelErr(op, out); err != nil {
			return nil, err
		}
		return decodeLines(out), nil

	case account != "":
		out, err := c.runner.Run(ctx, listNotesInAccountScript(account))
		if err != nil {
			return nil, err
		}
		if err := sentinelErr(op, out); err != nil {
			return nil, err
		}
		return decodeLines(out), nil

	case folder != "":
		handles, err := scope.Resolve(ctx, c, scope.Notes, scope.Selector{Container: folder})
		if err != nil {
			return nil, err
		}
		var all []string
		for _, h := range handles {
			out, err := c.runner.Run(ctx, listNotesInFolderScript(h.Account, folder))
			if err != nil {
				return nil, err
			}
			if sentinelErr(op, out) != nil {
				// Folder vanished between resolution and query.
				continue
			}
			for _, title := range decodeLines(out) {
				all = append(all, h.Account+recordSep+title)
			}
		}
		return all, nil

	default:
		out, err := c.runner.Run(ctx, listAllNotesScript)
		if err != nil {
			return nil, err
		}
		if err := sentinelErr(op, out); err != nil {
			return nil, err
		}
		return decodeLines(out), nil
	}
}

// Create makes a new note. With no account the note lands in the
// default folder of the first account; with a folder but no account the
// first account containing the folder wins. The returned message names
// the chosen account when the caller did not pick one.
func (c *Client) Create(ctx context.Context, title, body, account, folder string) (string, error) {
	const op = "create"
	for field, v := range map[string]string{
		"title": title, "body": body, "account": account, "folder": folder,
	} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return "", err
		}
	}

	switch {
	case account != "" && folder != "":
		out, err := c.runner.Run(ctx, createNoteInFolderScript(account, folder, title, body))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created note '%s'", title), nil

	case account != "":
		out, err := c.runner.Run(ctx, createNoteDefaultFolderScript(account, title, body))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created note '%s'", title), nil

	case folder != "":
		handles, err := scope.Resolve(ctx, c, scope.Notes, scope.Selector{Container: folder})
		if err != nil {
			return "", err
		}
		h := handles[0]
		out, err := c.runner.Run(ctx, createNoteInFolderScript(h.Account, folder, title, body))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created note '%s' in %s", title, h.Account), nil

	default:
		out, err := c.runner.Run(ctx, createNoteFirstAccountScript(title, body))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		opLogger(op).Debug("created in first account", logging.Account(out))
		return fmt.Sprintf("Created note '%s' in %s", title, out), nil
	}
}

// Read returns a note's content by title. Without an account the
// lookup cascades over accounts (or over accounts containing the given
// folder) in enumeration order; the first match wins.
func (c *Client) Read(ctx context.Context, title, account, folder string, plaintext bool) (*Note, error) {
	const op = "read"
	for field, v := range map[string]string{
		"title": title, "account": account, "folder": folder,
	} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return nil, err
		}
	}

	format := "html"
	if plaintext {
		format = "plaintext"
	}

	if account != "" {
		var script string
		if folder != "" {
			script = readNoteInFolderScript(account, folder, title, plaintext)
		} else {
			script = readNoteInAccountScript(account, title, plaintext)
		}
		out, err := c.runner.Run(ctx, script)
		if err != nil {
			return nil, err
		}
		if err := sentinelErr(op, out); err != nil {
			return nil, err
		}
		return &Note{Title: title, Content: out, Format: format}, nil
	}

	handles, err := scope.Resolve(ctx, c, scope.Notes, scope.Selector{Container: folder})
	if err != nil {
		return nil, err
	}
	logger := opLogger(op)
	if folder != "" {
		for _, h := range handles {
			out, err := c.runner.Run(ctx, readNoteInFolderScript(h.Account, folder, title, plaintext))
			if err != nil {
				return nil, err
			}
			if sentinelErr(op, out) != nil {
				logging.WithAccount(logger, h.Account).Debug("no match, trying next account")
				continue
			}
			return &Note{Title: title, Content: out, Format: format}, nil
		}
	} else {
		for _, a := range accountsOf(handles) {
			out, err := c.runner.Run(ctx, readNoteInAccountScript(a, title, plaintext))
			if err != nil {
				return nil, err
			}
			if sentinelErr(op, out) != nil {
				logging.WithAccount(logger, a).Debug("no match, trying next account")
				continue
			}
			return &Note{Title: title, Content: out, Format: format}, nil
		}
	}
	logger.Debug("cascade exhausted")
	return nil, errs.Newf(errs.KindItemNotFound, op, "Note '%s' not found", title)
}

// Search matches query against note names and plaintext bodies across
// all accounts, returning "account > title" lines. Matching is
// case-insensitive.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	const op = "search"
	if err := checkScriptSafe(op, "query", query); err != nil {
		return nil, err
	}
	out, err := c.runner.Run(ctx, searchNotesScript(query))
	if err != nil {
		return nil, err
	}
	if err := sentinelErr(op, out); err != nil {
		return nil, err
	}
	return decodeLines(out), nil
}

// Delete removes a note by title, cascading over accounts when none is
// given. The returned message names the account the note was found in
// when the caller did not pick one.
func (c *Client) Delete(ctx context.Context, title, account, folder string) (string, error) {
	const op = "delete"
	for field, v := range map[string]string{
		"title": title, "account": account, "folder": folder,
	} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return "", err
		}
	}

	if account != "" {
		var script string
		if folder != "" {
			script = deleteNoteInFolderScript(account, folder, title)
		} else {
			script = deleteNoteInAccountScript(account, title)
		}
		out, err := c.runner.Run(ctx, script)
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted note '%s'", title), nil
	}

	handles, err := scope.Resolve(ctx, c, scope.Notes, scope.Selector{Container: folder})
	if err != nil {
		return "", err
	}
	if folder != "" {
		for _, h := range handles {
			out, err := c.runner.Run(ctx, deleteNoteInFolderScript(h.Account, folder, title))
			if err != nil {
				return "", err
			}
			if sentinelErr(op, out) != nil {
				continue
			}
			return fmt.Sprintf("Deleted note '%s' from %s", title, h.Account), nil
		}
	} else {
		for _, a := range accountsOf(handles) {
			out, err := c.runner.Run(ctx, deleteNoteInAccountScript(a, title))
			if err != nil {
				return "", err
			}
			if sentinelErr(op, out) != nil {
				continue
			}
			return fmt.Sprintf("Deleted note '%s' from %s", title, a), nil
		}
	}
	return "", errs.Newf(errs.KindItemNotFound, op, "Note '%s' not found", title)
}

// CreateFolder makes a new folder, in the first account when none is
// given.
func (c *Client) CreateFolder(ctx context.Context, name, account string) (string, error) {
	const op = "create-folder"
	for field, v := range map[string]string{"name": name, "account": account} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return "", err
		}
	}

	if account != "" {
		out, err := c.runner.Run(ctx, createFolderScript(account, name))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created folder '%s' in %s", name, account), nil
	}

	out, err := c.runner.Run(ctx, createFolderFirstAccountScript(name))
	if err != nil {
		return "", err
	}
	if err := sentinelErr(op, out); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created folder '%s' in %s", name, out), nil
}

// Append adds text to the end of an existing note's body, cascading
// over accounts when none is given. The text joins the body with an
// HTML line break since note bodies are HTML.
func (c *Client) Append(ctx context.Context, title, text, account string) (string, error) {
	const op = "append"
	for field, v := range map[string]string{
		"title": title, "text": text, "account": account,
	} {
		if err := checkScriptSafe(op, field, v); err != nil {
			return "", err
		}
	}

	if account != "" {
		out, err := c.runner.Run(ctx, appendNoteInAccountScript(account, title, text))
		if err != nil {
			return "", err
		}
		if err := sentinelErr(op, out); err != nil {
			return "", err
		}
		return fmt.Sprintf("Appended to note '%s'", title), nil
	}

	handles, err := scope.Resolve(ctx, c, scope.Notes, scope.Selector{})
	if err != nil {
		return "", err
	}
	for _, a := range accountsOf(handles) {
		out, err := c.runner.Run(ctx, appendNoteInAccountScript(a, title, text))
		if err != nil {
			return "", err
		}
		if sentinelErr(op, out) != nil {
			continue
		}
		return fmt.Sprintf("Appended to note '%s' in %s", title, a), nil
	}
	return "", errs.Newf(errs.KindItemNotFound, op, "Note '%s' not found", title)
}

// Count returns the note count per account and the total.
func (c *Client) Count(ctx context.Context) (*CountResult, error) {
	const op = "count"
	out, err := c.runner.Run(ctx, countScript)
	if err != nil {
		return nil, err
	}
	if err := sentinelErr(op, out); err != nil {
		return nil, err
	}

	result := &CountResult{}
	for _, line := range decodeLines(out) {
		account, rest, ok := splitRecord(line)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, errs.Newf(errs.KindNativeFailure, op,
				"unexpected count line %q", line)
		}
		result.Accounts = append(result.Accounts, AccountCount{Account: account, Notes: n})
		result.Total += n
	}
	return result, nil
}
