package notes

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/scope"
)

type fakeRunner struct {
	handler func(script string) (string, error)
	scripts []string
}

func (f *fakeRunner) Run(ctx context.Context, script string) (string, error) {
	f.scripts = append(f.scripts, script)
	return f.handler(script)
}

func TestDecodeLines(t *testing.T) {
	out := "  Shopping list \n\n\nMeeting notes\n"
	assert.Equal(t, []string{"Shopping list", "Meeting notes"}, decodeLines(out))
	assert.Nil(t, decodeLines("   \n \n"))
}

func TestSplitRecord(t *testing.T) {
	account, rest, ok := splitRecord("iCloud > Shopping")
	require.True(t, ok)
	assert.Equal(t, "iCloud", account)
	assert.Equal(t, "Shopping", rest)

	// A title containing the separator stays ambiguous; the first
	// occurrence wins.
	account, rest, ok = splitRecord("iCloud > a > b")
	require.True(t, ok)
	assert.Equal(t, "iCloud", account)
	assert.Equal(t, "a > b", rest)

	_, _, ok = splitRecord("no separator here")
	assert.False(t, ok)
}

func TestSentinelErr(t *testing.T) {
	assert.NoError(t, sentinelErr("read", "regular output"))

	err := sentinelErr("read", "ERROR: Can’t get note 1")
	require.Error(t, err)
	assert.Equal(t, errs.KindNativeFailure, errs.KindOf(err))
	assert.Equal(t, "ERROR: Can’t get note 1", err.Error())
}

func TestContainers(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		return "A > Inbox\nB > Inbox\nB > Work\n", nil
	}}
	c := NewClient(r)

	handles, err := c.Containers(context.Background(), scope.Notes)
	require.NoError(t, err)
	assert.Equal(t, []scope.Handle{
		{Account: "A", Container: "Inbox"},
		{Account: "B", Container: "Inbox"},
		{Account: "B", Container: "Work"},
	}, handles)
}

func TestListAccounts(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		return "iCloud\nOn My Mac\n", nil
	}}
	c := NewClient(r)

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"iCloud", "On My Mac"}, accounts)
}

func TestListNotesScopedSurfacesSentinel(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		return "ERROR: Can’t get account \"Nope\"", nil
	}}
	c := NewClient(r)

	_, err := c.ListNotes(context.Background(), "Nope", "")
	require.Error(t, err)
	assert.Equal(t, errs.KindNativeFailure, errs.KindOf(err))
	assert.Contains(t, err.Error(), "ERROR:")
}

func TestListNotesByFolderAggregatesAcrossAccounts(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		switch {
		case script == containersScript:
			return "A > Inbox\nB > Inbox\n", nil
		case strings.Contains(script, `account "A"`):
			return "groceries\n", nil
		case strings.Contains(script, `account "B"`):
			return "standup\n", nil
		}
		return "", nil
	}}
	c := NewClient(r)

	notesList, err := c.ListNotes(context.Background(), "", "Inbox")
	require.NoError(t, err)
	assert.Equal(t, []string{"A > groceries", "B > standup"}, notesList)
}

func TestListNotesUnknownFolder(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		return "A > Inbox\n", nil
	}}
	c := NewClient(r)

	_, err := c.ListNotes(context.Background(), "", "Missing")
	require.Error(t, err)
	assert.Equal(t, errs.KindScopeNotFound, errs.KindOf(err))
	assert.Equal(t, "Folder 'Missing' not found", err.Error())
}

func TestReadCascadeFirstMatchWins(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		switch {
		case script == containersScript:
			return "A > Notes\nB > Notes\n", nil
		case strings.Contains(script, `account "A"`):
			return "ERROR: Can’t get note", nil
		case strings.Contains(script, `account "B"`):
			return "<div>milk</div>", nil
		}
		return "", nil
	}}
	c := NewClient(r)

	note, err := c.Read(context.Background(), "Shopping", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", note.Title)
	assert.Equal(t, "<div>milk</div>", note.Content)
	assert.Equal(t, "html", note.Format)
}

func TestReadCascadeLogsSkippedAccounts(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := &fakeRunner{handler: func(script string) (string, error) {
		switch {
		case script == containersScript:
			return "A > Notes\nB > Notes\n", nil
		case strings.Contains(script, `account "A"`):
			return "ERROR: Can’t get note", nil
		}
		return "found it", nil
	}}
	c := NewClient(r)

	_, err := c.Read(context.Background(), "Shopping", "", "", false)
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"service=notes", "operation=read", "account=A"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "account=B")
}

func TestReadExhaustedCascade(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		if script == containersScript {
			return "A > Notes\n", nil
		}
		return "ERROR: Can’t get note", nil
	}}
	c := NewClient(r)

	_, err := c.Read(context.Background(), "Missing", "", "", false)
	require.Error(t, err)
	assert.Equal(t, errs.KindItemNotFound, errs.KindOf(err))
	assert.Equal(t, "Note 'Missing' not found", err.Error())
}

func TestReadPlaintextFormat(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		assert.Contains(t, script, "plaintext of targetNote")
		return "milk", nil
	}}
	c := NewClient(r)

	note, err := c.Read(context.Background(), "Shopping", "iCloud", "", true)
	require.NoError(t, err)
	assert.Equal(t, "plaintext", note.Format)
	assert.Equal(t, "milk", note.Content)
}

func TestSearch(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		assert.Contains(t, script, `set searchQuery to "milk"`)
		return "A > Remember\n", nil
	}}
	c := NewClient(r)

	results, err := c.Search(context.Background(), "milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"A > Remember"}, results)
}

func TestCreateUnscopedNamesChosenAccount(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		assert.Contains(t, script, "first account")
		return "iCloud", nil
	}}
	c := NewClient(r)

	msg, err := c.Create(context.Background(), "Todo", "buy milk", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Created note 'Todo' in iCloud", msg)
}

func TestCreateRejectsMultilineBody(t *testing.T) {
	c := NewClient(&fakeRunner{handler: func(string) (string, error) {
		t.Fatal("runner must not be reached")
		return "", nil
	}})

	_, err := c.Create(context.Background(), "Todo", "a\nb", "", "")
	require.Error(t, err)
	assert.Equal(t, errs.KindInjectionRejected, errs.KindOf(err))
}

func TestDeleteCascadeReportsAccount(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		switch {
		case script == containersScript:
			return "A > Notes\nB > Notes\n", nil
		case strings.Contains(script, `account "A"`):
			return "ERROR: Can’t get note", nil
		}
		return "OK", nil
	}}
	c := NewClient(r)

	msg, err := c.Delete(context.Background(), "Old", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Deleted note 'Old' from B", msg)
}

func TestAppend(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		assert.Contains(t, script, `"<br>" & "more"`)
		return "OK", nil
	}}
	c := NewClient(r)

	msg, err := c.Append(context.Background(), "Todo", "more", "iCloud")
	require.NoError(t, err)
	assert.Equal(t, "Appended to note 'Todo'", msg)
}

func TestCount(t *testing.T) {
	r := &fakeRunner{handler: func(script string) (string, error) {
		return "iCloud > 42\nOn My Mac > 3\n", nil
	}}
	c := NewClient(r)

	result, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, result.Total)
	assert.Equal(t, []AccountCount{
		{Account: "iCloud", Notes: 42},
		{Account: "On My Mac", Notes: 3},
	}, result.Accounts)
}
