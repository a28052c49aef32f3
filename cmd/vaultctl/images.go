package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImagesCmd(cfg *cliConfig) *cobra.Command {
	var mine bool
	var search string

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List gallery images",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := ""
			if mine {
				if cfg.UserID == "" {
					return fmt.Errorf("not logged in; run: vaultctl login")
				}
				userID = cfg.UserID
			}

			images, err := newAPIClient(cfg).listImages(context.Background(), userID, search)
			if err != nil {
				return err
			}

			if len(images) == 0 {
				fmt.Println("No images found.")
				return nil
			}

			for _, img := range images {
				fmt.Printf("%-6d %-30s %-20s %s\n", img.ID, img.ImageName, img.UploaderName, img.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "only my uploads")
	cmd.Flags().StringVar(&search, "search", "", "filter by uploader name or email")

	return cmd
}

func newShowCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one image's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client := newAPIClient(cfg)

			img, err := client.getImage(ctx, args[0])
			if err != nil {
				return err
			}

			// lazy resolution, same as the detail modal
			fullName, err := client.uploaderName(ctx, img.UserID)
			if err != nil {
				fullName = "Unknown"
			}

			fmt.Printf("Name:        %s\n", img.ImageName)
			fmt.Printf("Description: %s\n", img.Description)
			fmt.Printf("Uploaded By: %s\n", fullName)
			fmt.Printf("Created At:  %s\n", img.CreatedAt.Format("2006-01-02"))
			fmt.Printf("URL:         %s\n", img.ImageURL)
			return nil
		},
	}

	return cmd
}

func newDeleteCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("not logged in; run: vaultctl login")
			}
			if err := newAPIClient(cfg).deleteImage(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted image %s\n", args[0])
			return nil
		},
	}

	return cmd
}
