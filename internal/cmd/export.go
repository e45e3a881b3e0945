package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/charmbracelet/roster/internal/customer"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const exportTimeLayout = "Jan 2, 2006, 03:04 PM"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print customers",
	Long:  `Print the customers matching a search, in the order of a sort, as text, JSON or YAML`,
	Example: heredoc.Doc(`
		# Print the ten best scored customers
		roster export --sort score:desc --limit 10

		# Export every customer named alice as JSON
		roster export --search alice --format json
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sortFlag, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		s, err := customer.ParseSort(sortFlag)
		if err != nil {
			return err
		}
		if limit < 0 {
			return fmt.Errorf("limit must not be negative, got %d", limit)
		}

		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		d, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		records := customer.ComputeView(d, search, s)
		matched := len(records)
		if limit > 0 && limit < len(records) {
			records = records[:limit]
		}
		return formatCustomers(cmd.OutOrStdout(), records, matched, d.Len(), format)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("search", "s", "", "Only customers whose name, email or phone contain this text")
	exportCmd.Flags().String("sort", "", "Sort by field[:asc|desc] (name, email, phone, score, last_message, added_by)")
	exportCmd.Flags().IntP("limit", "n", 0, "Print at most this many customers")
	exportCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}

func formatCustomers(w io.Writer, records []customer.Record, matched, total int, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return formatCustomersJSON(w, records)
	case "yaml":
		return formatCustomersYAML(w, records)
	case "text":
		return formatCustomersText(w, records, matched, total)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func formatCustomersJSON(w io.Writer, records []customer.Record) error {
	if records == nil {
		records = []customer.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatCustomersYAML(w io.Writer, records []customer.Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func formatCustomersText(w io.Writer, records []customer.Record, matched, total int) error {
	p := message.NewPrinter(language.English)
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No customers found.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Email", "Phone", "Score", "Last message", "Added by")
	for _, r := range records {
		t.Row(
			strconv.Itoa(r.ID),
			r.Name,
			r.Email,
			r.Phone,
			strconv.Itoa(r.Score),
			r.LastMessageAt.Local().Format(exportTimeLayout),
			r.AddedBy,
		)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	_, err := p.Fprintf(w, "%d of %d matching customers (%d total)\n", len(records), matched, total)
	return err
}
