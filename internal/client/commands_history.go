package client

import (
	"fmt"
	"strconv"

	"github.com/MKhiriev/sheet-viz/models"
	"github.com/spf13/cobra"
)

func (a *App) chartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "chart history",
	}
	cmd.AddCommand(a.chartRecordCommand(), a.chartListCommand(), a.chartCountCommand())
	return cmd
}

func (a *App) chartRecordCommand() *cobra.Command {
	var entry models.ChartHistoryEntry
	var dimension string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "save a chart configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry.Dimension = models.Dimension(dimension)
			if err := a.server.RecordChart(cmd.Context(), entry); err != nil {
				return fmt.Errorf("record chart: %w", err)
			}
			return a.printText("Chart history saved")
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&entry.FileID, "file-id", "", "file id")
	flags.StringVar(&entry.ChartType, "type", "", "chart type (bar, line, scatter...)")
	flags.StringVar(&dimension, "dimension", string(models.Dimension2D), "1D, 2D, 3D or 2D3D")
	flags.StringVarP(&entry.XAxis, "x-axis", "x", "", "x axis column")
	flags.StringVarP(&entry.YAxis, "y-axis", "y", "", "y axis column")
	flags.StringVarP(&entry.ZAxis, "z-axis", "z", "", "z axis column")
	_ = cmd.MarkFlagRequired("file-id")
	_ = cmd.MarkFlagRequired("x-axis")

	return cmd
}

func (a *App) chartListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved charts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.server.ChartHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("chart history: %w", err)
			}
			return a.printJSON(entries)
		},
	}
}

func (a *App) chartCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "count saved charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, err := a.server.ChartCount(cmd.Context())
			if err != nil {
				return fmt.Errorf("chart count: %w", err)
			}
			return a.printText(strconv.FormatInt(count, 10))
		},
	}
}

func (a *App) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "list past uploads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.server.UploadHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("upload history: %w", err)
			}
			return a.printJSON(entries)
		},
	}
}

func (a *App) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "admin views (admin token required)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "overview",
			Short: "per-user file usage",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				overview, err := a.server.AdminOverview(cmd.Context())
				if err != nil {
					return fmt.Errorf("admin overview: %w", err)
				}
				return a.printJSON(overview)
			},
		},
		&cobra.Command{
			Use:   "files <user-id>",
			Short: "list the files of a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", args[0], err)
				}
				files, err := a.server.AdminUserFiles(cmd.Context(), userID)
				if err != nil {
					return fmt.Errorf("admin user files: %w", err)
				}
				return a.printJSON(files)
			},
		},
	)

	return cmd
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print client build info and the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverVersion, err := a.server.ServerVersion(cmd.Context())
			if err != nil {
				a.logger.Warn().Err(err).Msg("server version unavailable")
				serverVersion = "N/A"
			}

			return a.printJSON(map[string]string{
				"buildVersion":  a.buildInfo.BuildVersion(),
				"buildDate":     a.buildInfo.BuildDate(),
				"buildCommit":   a.buildInfo.BuildCommit(),
				"serverVersion": serverVersion,
			})
		},
	}
}
