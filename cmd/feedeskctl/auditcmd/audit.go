package auditcmd

import (
	"fmt"

	"feedesk/cmd/feedeskctl/config"
	"feedesk/cmd/feedeskctl/output"
	"feedesk/internal/models"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

func InitAudit(rootCmd *cobra.Command) {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail (Admin only)",
	}

	auditCmd.AddCommand(
		listAuditCmd(),
		showAuditCmd(),
		deleteAuditCmd(),
	)

	rootCmd.AddCommand(auditCmd)
}

func listAuditCmd() *cobra.Command {
	var filter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			entries, err := c.ListAudit(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), entries)
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{
					e.ID, actorName(e), role(e), e.Module, e.Action, e.RecordID, e.IPAddress, e.CreatedAt.Local().Format(timeLayout),
				})
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "User", "Role", "Module", "Action", "Record", "IP", "Date"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "match module, action, role or user id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	return cmd
}

func showAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one entry with its field changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			d, err := c.GetAudit(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s by %s (%s) at %s\n",
				d.Action, d.Module, d.RecordID, actorName(d.AuditLog), role(d.AuditLog), d.CreatedAt.Local().Format(timeLayout))
			fmt.Fprintf(out, "IP: %s  User agent: %s\n", d.IPAddress, d.UserAgent)

			rows := make([][]interface{}, 0, len(d.Fields))
			for _, f := range d.Fields {
				mark := ""
				if f.Changed {
					mark = "*"
				}
				rows = append(rows, []interface{}{mark, f.Field, f.Old, f.New})
			}
			output.RenderTable(out, []string{"", "Field", "Old", "New"}, rows)
			return nil
		},
	}
}

func deleteAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Permanently delete an audit entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			deleted, err := c.DeleteAudit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted audit entry %s (%s %s %s)\n",
				deleted.ID, deleted.Action, deleted.Module, deleted.RecordID)
			return nil
		},
	}
}

func actorName(e models.AuditLog) string {
	if e.User == nil {
		return "System"
	}
	return fmt.Sprintf("%s <%s>", e.User.Name, e.User.Email)
}

func role(e models.AuditLog) string {
	if e.Role == nil {
		return "N/A"
	}
	return string(*e.Role)
}
