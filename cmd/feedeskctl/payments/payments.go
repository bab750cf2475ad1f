package payments

import (
	"fmt"
	"strconv"
	"strings"

	"feedesk/cmd/feedeskctl/config"
	"feedesk/cmd/feedeskctl/output"

	"github.com/spf13/cobra"
)

func InitPayments(rootCmd *cobra.Command) {
	paymentsCmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage payments",
	}

	paymentsCmd.AddCommand(
		listPaymentsCmd(),
		updatePaymentCmd(),
		deletePaymentCmd(),
	)

	rootCmd.AddCommand(paymentsCmd)
}

func listPaymentsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			payments, err := c.ListPayments(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), payments)
			}

			rows := make([][]interface{}, 0, len(payments))
			for _, p := range payments {
				student := p.StudentID
				if p.Student != nil {
					student = p.Student.Name
				}
				rows = append(rows, []interface{}{
					p.ID, p.InvoiceNumber, student, p.FeeType, p.PaymentMethod,
					strconv.FormatFloat(p.Amount, 'f', 2, 64), p.Status,
				})
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "Invoice", "Student", "Fee", "Method", "Amount", "Status"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func updatePaymentCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update payment fields",
		Long:  "Update payment fields, e.g. --set status=APPROVED --set amount=1500.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseSets(sets)
			if err != nil {
				return err
			}
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			p, res, err := c.UpdatePayment(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Payment %s updated (status %s, amount %s)\n",
				p.ID, p.Status, strconv.FormatFloat(p.Amount, 'f', 2, 64))
			output.Warnings(out, res.Warnings)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value to change (repeatable)")
	return cmd
}

func deletePaymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.NewClient()
			if err != nil {
				return err
			}
			res, err := c.DeletePayment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Payment %s deleted\n", args[0])
			output.Warnings(out, res.Warnings)
			return nil
		},
	}
}

// parseSets turns field=value pairs into a JSON patch body. amount is sent as
// a number, everything else as a string.
func parseSets(sets []string) (map[string]interface{}, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("at least one --set field=value is required")
	}
	fields := make(map[string]interface{}, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want field=value", s)
		}
		if k == "amount" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("amount must be a number: %w", err)
			}
			fields[k] = n
			continue
		}
		fields[k] = v
	}
	return fields, nil
}
