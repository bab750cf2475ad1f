package main

import (
	"fmt"
	"os"

	"feedesk/cmd/feedeskctl/auditcmd"
	"feedesk/cmd/feedeskctl/auth"
	"feedesk/cmd/feedeskctl/payments"
	"feedesk/cmd/feedeskctl/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	auditcmd.InitAudit(rootCmd)
	payments.InitPayments(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
