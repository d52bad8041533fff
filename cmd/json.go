package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// runOp executes an operation and prints its single JSON result
// document to stdout: the payload with "success": true, or
// {"success": false, "error": ...} when the operation failed. The
// error is returned so the process exits 1.
func runOp(cmd *cobra.Command, fn func() (map[string]interface{}, error)) error {
	payload, err := fn()
	if err != nil {
		printJSON(cmd, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return err
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["success"] = true
	printJSON(cmd, payload)
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) {
	out, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), `{"success":false,"error":%q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}
