package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *App) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "upload an .xlsx, .xls or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			resp, err := a.server.UploadFile(cmd.Context(), filepath.Base(args[0]), content)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			return a.printJSON(resp)
		},
	}
}

func (a *App) filesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "list uploaded files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := a.server.ListFiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list files: %w", err)
			}
			return a.printJSON(files)
		},
	}
}

func (a *App) rowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <file-id>",
		Short: "print the parsed rows of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.server.FileData(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("file data: %w", err)
			}
			return a.printJSON(rows)
		},
	}
}

func (a *App) downloadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "download the original file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.server.DownloadFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			path := output
			if path == "" {
				path = filepath.Base(file.FileName)
			}
			if err = os.WriteFile(path, file.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			return a.printText(path)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: the original file name)")

	return cmd
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file-id>",
		Short: "delete a file and its parsed data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.server.DeleteFile(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			return a.printText("File and parsed data deleted")
		},
	}
}

func (a *App) insightsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insights <file-id>",
		Short: "print per-column statistics of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.server.Insights(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("insights: %w", err)
			}
			for _, line := range lines {
				if err = a.printText(line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
