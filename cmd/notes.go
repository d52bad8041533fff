package cmd

import (
	"github.com/spf13/cobra"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes in the Notes application",
	}

	cmd.AddCommand(newNotesListAccountsCmd())
	cmd.AddCommand(newNotesListFoldersCmd())
	cmd.AddCommand(newNotesListNotesCmd())
	cmd.AddCommand(newNotesCreateCmd())
	cmd.AddCommand(newNotesReadCmd())
	cmd.AddCommand(newNotesSearchCmd())
	cmd.AddCommand(newNotesDeleteCmd())
	cmd.AddCommand(newNotesCreateFolderCmd())
	cmd.AddCommand(newNotesAppendCmd())
	cmd.AddCommand(newNotesCountCmd())
	return cmd
}

// notesAccount resolves the effective account: the flag when given,
// otherwise the configured default.
func notesAccount(account string) string {
	if account == "" {
		return sctx.Config().DefaultAccount
	}
	return account
}

func newNotesListAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-accounts",
		Short: "List all Notes accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				accounts, err := client.ListAccounts(cmd.Context())
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"accounts": accounts,
					"count":    len(accounts),
				}, nil
			})
		},
	}
}

func newNotesListFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-folders",
		Short: "List all folders of all accounts with their note counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				folders, err := client.ListFolders(cmd.Context())
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"folders": folders,
					"count":   len(folders),
				}, nil
			})
		},
	}
}

func newNotesListNotesCmd() *cobra.Command {
	var (
		account string
		folder  string
	)

	cmd := &cobra.Command{
		Use:   "list-notes",
		Short: "List note titles, optionally scoped to an account or folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				titles, err := client.ListNotes(cmd.Context(), notesAccount(account), folder)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"notes": titles,
					"count": len(titles),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account name (exact, case-sensitive)")
	cmd.Flags().StringVar(&folder, "folder", "", "folder name (exact, case-sensitive)")
	return cmd
}

func newNotesCreateCmd() *cobra.Command {
	var (
		title   string
		body    string
		account string
		folder  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				msg, err := client.Create(cmd.Context(), title, body, notesAccount(account), folder)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"message": msg}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&body, "body", "", "note body (single line)")
	cmd.Flags().StringVar(&account, "account", "", "account name")
	cmd.Flags().StringVar(&folder, "folder", "", "folder name")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesReadCmd() *cobra.Command {
	var (
		title     string
		account   string
		folder    string
		plaintext bool
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read a note by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				note, err := client.Read(cmd.Context(), title, notesAccount(account), folder, plaintext)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"title":   note.Title,
					"content": note.Content,
					"format":  note.Format,
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title (exact, case-sensitive)")
	cmd.Flags().StringVar(&account, "account", "", "account name")
	cmd.Flags().StringVar(&folder, "folder", "", "folder name")
	cmd.Flags().BoolVar(&plaintext, "plaintext", false, "return plain text instead of the HTML body")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesSearchCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search note titles and bodies across all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				matches, err := client.Search(cmd.Context(), query)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"notes": matches,
					"count": len(matches),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "text to search for")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newNotesDeleteCmd() *cobra.Command {
	var (
		title   string
		account string
		folder  string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a note by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				msg, err := client.Delete(cmd.Context(), title, notesAccount(account), folder)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"message": msg}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title (exact, case-sensitive)")
	cmd.Flags().StringVar(&account, "account", "", "account name")
	cmd.Flags().StringVar(&folder, "folder", "", "folder name")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newNotesCreateFolderCmd() *cobra.Command {
	var (
		name    string
		account string
	)

	cmd := &cobra.Command{
		Use:   "create-folder",
		Short: "Create a folder, in the first account when none is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				msg, err := client.CreateFolder(cmd.Context(), name, notesAccount(account))
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"message": msg}, nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "folder name")
	cmd.Flags().StringVar(&account, "account", "", "account name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newNotesAppendCmd() *cobra.Command {
	var (
		title   string
		text    string
		account string
	)

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append text to an existing note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				msg, err := client.Append(cmd.Context(), title, text, notesAccount(account))
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"message": msg}, nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title (exact, case-sensitive)")
	cmd.Flags().StringVar(&text, "text", "", "text to append (single line)")
	cmd.Flags().StringVar(&account, "account", "", "account name")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newNotesCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count notes per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, func() (map[string]interface{}, error) {
				client, err := sctx.Notes()
				if err != nil {
					return nil, err
				}
				result, err := client.Count(cmd.Context())
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"total":    result.Total,
					"accounts": result.Accounts,
				}, nil
			})
		},
	}
}
