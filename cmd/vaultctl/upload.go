package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mangavault/internal/uploader"
)

func newUploadCmd(cfg *cliConfig) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image with a name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("not logged in; run: vaultctl login")
			}

			transport := uploader.NewHTTPTransport(cfg.ServerURL, cfg.Token)

			var uploadErr error
			session := uploader.NewSession(transport, uploader.Callbacks{
				OnBegin: func() {
					fmt.Println("Uploading...")
				},
				OnComplete: func(result *uploader.Result) {
					fmt.Println("Upload Complete!")
					fmt.Printf("  %s -> %s\n", result.FileName, result.URL)
				},
				OnError: func(err error) {
					uploadErr = err
				},
			})

			if err := session.SelectFile(args[0]); err != nil {
				return err
			}

			meta := uploader.Metadata{ImageName: name, Description: description}
			if err := session.Submit(context.Background(), meta); err != nil {
				return err
			}
			session.Wait()

			if uploadErr != nil {
				return fmt.Errorf("Upload Error: %w", uploadErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "image name (5-50 characters)")
	cmd.Flags().StringVar(&description, "description", "", "image description (10-200 characters)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}
