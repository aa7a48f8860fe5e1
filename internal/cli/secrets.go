package cli

import (
	"fmt"
	"strings"

	"countdown-cli/internal/document"
	"countdown-cli/internal/format"
	"countdown-cli/internal/model"

	"github.com/spf13/cobra"
)

const masked = "********"

func newSecretsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Read and write the network and Adafruit IO credentials",
	}
	cmd.AddCommand(newSecretsGetCmd(app))
	cmd.AddCommand(newSecretsSetCmd(app))
	return cmd
}

func secretFieldNames() string {
	names := make([]string, 0, len(model.SecretFields()))
	for _, f := range model.SecretFields() {
		names = append(names, f.String())
	}
	return strings.Join(names, "|")
}

func parseSecretField(s string) (model.SecretField, error) {
	f, ok := model.ParseSecretField(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("unknown secrets field: %q (expected %s)", s, secretFieldNames())
	}
	return f, nil
}

func secretValue(s model.Secrets, f model.SecretField, reveal bool) string {
	v := s.Get(f)
	if f.Sensitive() && !reveal && v != "" {
		return masked
	}
	return v
}

func newSecretsGetCmd(app *App) *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "get [field]",
		Short: "Print the secrets (password and aio_key are masked unless --reveal)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sec := s.doc.Secrets()
			if len(args) == 1 {
				f, err := parseSecretField(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{Data: map[string]any{
					"field": f.String(),
					"value": secretValue(sec, f, reveal),
				}})
			}
			out := map[string]any{}
			for _, f := range model.SecretFields() {
				out[f.String()] = secretValue(sec, f, reveal)
			}
			if sec.ScreenWidth != nil {
				out["screen_width"] = *sec.ScreenWidth
			}
			if sec.ScreenHeight != nil {
				out["screen_height"] = *sec.ScreenHeight
			}
			return writeOut(cmd, app, format.Envelope{Data: out})
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print sensitive values in clear text")
	return cmd
}

func newSecretsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one secrets field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseSecretField(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return edit(cmd, app, func(doc *document.Document) (bool, error) {
				if doc.Secrets().Get(f) == args[1] {
					return false, nil
				}
				doc.SetSecret(f, args[1])
				return true, nil
			})
		},
	}
}
