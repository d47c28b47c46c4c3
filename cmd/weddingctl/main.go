// Command weddingctl inspects and maintains the guest sheets through the
// site's /api routes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/backup"
	"github.com/AlexTLDR/wedding/internal/config"
	"github.com/AlexTLDR/wedding/internal/export"
	"github.com/AlexTLDR/wedding/internal/logger"
	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/requests"
	"github.com/AlexTLDR/wedding/internal/utils"
)

func main() {
	_ = godotenv.Overload()

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err := newRootCmd(log).Execute(); err != nil {
		os.Exit(1)
	}
}

type cli struct {
	apiURL string
	region string
	log    zerolog.Logger
}

func (c *cli) api() *apiclient.Client {
	return apiclient.New(c.apiURL, &http.Client{Timeout: 30 * time.Second})
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	c := &cli{log: log}

	defaultURL := os.Getenv("BASE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	defaultRegion := os.Getenv("PHONE_REGION")
	if defaultRegion == "" {
		defaultRegion = utils.DefaultPhoneRegion
	}

	root := &cobra.Command{
		Use:          "weddingctl",
		Short:        "Manage the wedding guest sheets",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api", defaultURL, "base URL of the wedding site")
	root.PersistentFlags().StringVar(&c.region, "region", defaultRegion, "default phone region")

	guests := &cobra.Command{Use: "guests", Short: "Guest list commands"}
	guests.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the guest list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.api().ListGuests(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEMAIL\tRSVP")
			for _, g := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Name, orDash(models.DisplayEmail(g.Email)), orDash(g.RSVP))
			}
			return tw.Flush()
		},
	})

	reqs := &cobra.Command{Use: "requests", Short: "Guest request commands"}
	reqs.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print pending guest requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.api().ListGuestRequests(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE\tRSVP")
			for _, r := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Email, orDash(r.Phone), orDash(r.RSVP))
			}
			return tw.Flush()
		},
	})
	reqs.AddCommand(&cobra.Command{
		Use:   "promote <name>",
		Short: "Move a guest request onto the guest list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := c.api()
			r, err := findRequest(cmd.Context(), api, args[0])
			if err != nil {
				return err
			}
			svc := requests.New(api, c.region, logger.Component(c.log, "requests"))
			if err := svc.Promote(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s added to guest list!\n", r.Name)
			return nil
		},
	})

	exp := &cobra.Command{
		Use:       "export <csv|xlsx> <file>",
		Short:     "Export the guest list as CSV or every sheet as a workbook",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"csv", "xlsx"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.export(cmd.Context(), args[0], args[1])
		},
	}

	bk := &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of every sheet to the backup bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client, err := backup.NewS3Client(cmd.Context(), cfg.Backup)
			if err != nil {
				return err
			}
			key, err := backup.New(c.api(), client, cfg.Backup, logger.Component(c.log, "backup")).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", key)
			return nil
		},
	}

	root.AddCommand(guests, reqs, exp, bk)
	return root
}

func (c *cli) export(ctx context.Context, format, path string) error {
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unknown format %q, want csv or xlsx", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	api := c.api()
	if format == "csv" {
		list, err := api.ListGuests(ctx)
		if err != nil {
			return err
		}
		if err := export.WriteGuestsCSV(f, list); err != nil {
			return err
		}
	} else {
		snap, err := export.Collect(ctx, api)
		if err != nil {
			return err
		}
		if err := export.WriteWorkbook(f, snap); err != nil {
			return err
		}
	}
	return f.Close()
}

func findRequest(ctx context.Context, api *apiclient.Client, name string) (models.GuestRequest, error) {
	list, err := api.ListGuestRequests(ctx)
	if err != nil {
		return models.GuestRequest{}, err
	}
	for _, r := range list {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return models.GuestRequest{}, fmt.Errorf("no guest request named %q", name)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
