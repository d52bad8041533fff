package notes

import "fmt"

// AppleScript builders for the Notes automation surface. Every
// caller-supplied value passes through Escape here and nowhere else;
// these builders are the module's only interpolation points.
//
// List-producing scripts separate records with linefeed, never commas,
// because titles and bodies can legitimately contain commas. Targeted
// scripts wrap the body in try/on error and report failures through the
// "ERROR: " sentinel on the single returned line.

const listAccountsScript = `tell application "Notes"
	set accountList to ""
	repeat with a in accounts
		set accountList to accountList & name of a & linefeed
	end repeat
	return accountList
end tell`

// containersScript enumerates every folder of every account as
// "account > folder" lines, one store round-trip.
const containersScript = `tell application "Notes"
	set folderList to ""
	repeat with a in accounts
		set accountName to name of a
		repeat with f in folders of a
			set folderList to folderList & accountName & " > " & name of f & linefeed
		end repeat
	end repeat
	return folderList
end tell`

const listFoldersScript = `tell application "Notes"
	set folderList to ""
	repeat with a in accounts
		set accountName to name of a
		repeat with f in folders of a
			set folderList to folderList & accountName & " > " & name of f & " (" & (count of notes in f) & " notes)" & linefeed
		end repeat
	end repeat
	return folderList
end tell`

const listAllNotesScript = `tell application "Notes"
	set noteList to ""
	repeat with a in accounts
		set accountName to name of a
		repeat with n in notes of a
			set noteList to noteList & accountName & " > " & name of n & linefeed
		end repeat
	end repeat
	return noteList
end tell`

const countScript = `tell application "Notes"
	set countList to ""
	repeat with a in accounts
		set countList to countList & name of a & " > " & (count of notes of a) & linefeed
	end repeat
	return countList
end tell`

func listNotesInAccountScript(account string) string {
	return fmt.Sprintf(`tell application "Notes"
	set noteList to ""
	try
		set targetAccount to account "%s"
		repeat with n in notes of targetAccount
			set noteList to noteList & name of n & linefeed
		end repeat
	on error errMsg
		return "ERROR: " & errMsg
	end try
	return noteList
end tell`, Escape(account))
}

func listNotesInFolderScript(account, folder string) string {
	return fmt.Sprintf(`tell application "Notes"
	set noteList to ""
	try
		set targetAccount to account "%s"
		set targetFolder to folder "%s" of targetAccount
		repeat with n in notes of targetFolder
			set noteList to noteList & name of n & linefeed
		end repeat
	on error errMsg
		return "ERROR: " & errMsg
	end try
	return noteList
end tell`, Escape(account), Escape(folder))
}

// contentProperty selects which note property a read returns. The body
// property is HTML; plaintext is the rendered text.
func contentProperty(plaintext bool) string {
	if plaintext {
		return "plaintext"
	}
	return "body"
}

func readNoteInAccountScript(account, title string, plaintext bool) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetNote to first note of targetAccount whose name is "%s"
		return %s of targetNote
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(title), contentProperty(plaintext))
}

func readNoteInFolderScript(account, folder, title string, plaintext bool) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetFolder to folder "%s" of targetAccount
		set targetNote to first note of targetFolder whose name is "%s"
		return %s of targetNote
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(folder), Escape(title), contentProperty(plaintext))
}

func createNoteInFolderScript(account, folder, title, body string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetFolder to folder "%s" of targetAccount
		make new note at targetFolder with properties {name:"%s", body:"%s"}
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(folder), Escape(title), Escape(body))
}

func createNoteDefaultFolderScript(account, title, body string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set defaultFolder to default folder of targetAccount
		make new note at defaultFolder with properties {name:"%s", body:"%s"}
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(title), Escape(body))
}

// createNoteFirstAccountScript creates in the default folder of the
// first account and returns that account's name on success.
func createNoteFirstAccountScript(title, body string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to first account
		set defaultFolder to default folder of targetAccount
		make new note at defaultFolder with properties {name:"%s", body:"%s"}
		return name of targetAccount
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(title), Escape(body))
}

func deleteNoteInAccountScript(account, title string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetNote to first note of targetAccount whose name is "%s"
		delete targetNote
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(title))
}

func deleteNoteInFolderScript(account, folder, title string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetFolder to folder "%s" of targetAccount
		set targetNote to first note of targetFolder whose name is "%s"
		delete targetNote
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(folder), Escape(title))
}

func createFolderScript(account, name string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		make new folder at targetAccount with properties {name:"%s"}
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(name))
}

// createFolderFirstAccountScript creates in the first account and
// returns that account's name on success.
func createFolderFirstAccountScript(name string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to first account
		make new folder at targetAccount with properties {name:"%s"}
		return name of targetAccount
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(name))
}

func appendNoteInAccountScript(account, title, text string) string {
	return fmt.Sprintf(`tell application "Notes"
	try
		set targetAccount to account "%s"
		set targetNote to first note of targetAccount whose name is "%s"
		set currentBody to body of targetNote
		set body of targetNote to currentBody & "<br>" & "%s"
		return "OK"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell`, Escape(account), Escape(title), Escape(text))
}

// searchNotesScript matches query against note names and plaintext
// bodies. AppleScript string comparison is case-insensitive by default,
// so no explicit lowercasing is needed.
func searchNotesScript(query string) string {
	return fmt.Sprintf(`tell application "Notes"
	set matchingNotes to ""
	set searchQuery to "%s"
	repeat with a in accounts
		set accountName to name of a
		repeat with n in notes of a
			try
				if (plaintext of n contains searchQuery) or (name of n contains searchQuery) then
					set matchingNotes to matchingNotes & accountName & " > " & name of n & linefeed
				end if
			end try
		end repeat
	end repeat
	return matchingNotes
end tell`, Escape(query))
}
