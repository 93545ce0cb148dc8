package app

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/ingest"
	"github.com/blackwell-systems/optibridge/internal/workflow"
)

func newUploadCmd() *cobra.Command {
	var (
		providerFlag  string
		copyURL       bool
		fromClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Process and upload an image without the TUI",
		Long: `Processes an image through the daemon and uploads it to the chosen
provider, printing the resulting URL. With --from-clipboard the daemon
reads the current clipboard image instead of a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var cand ingest.Candidate
			switch {
			case fromClipboard && len(args) > 0:
				return fmt.Errorf("give either a file or --from-clipboard, not both")
			case fromClipboard:
				cand = ingest.FromClipboard()
			case len(args) == 1:
				var err error
				cand, err = ingest.FromPath(args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("need an image file or --from-clipboard")
			}

			provider := cfg.DefaultProvider()
			if providerFlag != "" {
				provider = backend.Provider(providerFlag)
				if !provider.Valid() {
					return fmt.Errorf("unknown provider %q (want cloudinary or r2)", providerFlag)
				}
			}

			// Same machine the TUI drives, run to completion inline.
			machine := workflow.New()
			token, err := machine.Begin(cand)
			if err != nil {
				return err
			}

			var img *backend.ProcessedImage
			if cand.Source == ingest.SourceClipboard {
				img, err = client.ProcessFromClipboard()
			} else {
				img, err = client.ProcessFromPath(cand.Path)
			}
			machine.FinishProcess(token, img, err)
			if err != nil {
				return fmt.Errorf("processing %s: %w", cand.DisplayName, err)
			}
			slog.Debug("processed", "temp_id", img.TempID, "size", img.SizeInfo)
			ok("Processed %s (%s)", cand.DisplayName, img.SizeInfo)

			if err := machine.SetProvider(provider); err != nil {
				return err
			}
			token, err = machine.BeginUpload()
			if err != nil {
				return err
			}
			res, err := client.Upload(machine.Image().TempID, machine.Provider())
			machine.FinishUpload(token, res, err)
			if err != nil {
				return fmt.Errorf("uploading to %s: %w", provider.Label(), err)
			}
			ok("Uploaded to %s", provider.Label())
			fmt.Println(res.URL)

			if copyURL || cfg.Defaults.CopyOnComplete {
				if err := clipboard.WriteAll(res.URL); err != nil {
					warn("could not copy URL: %v", err)
				} else {
					ok("URL copied to clipboard")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerFlag, "provider", "p", "", "Destination provider: cloudinary or r2 (default from config)")
	cmd.Flags().BoolVar(&copyURL, "copy", false, "Copy the resulting URL to the clipboard (always on when defaults.copy_on_complete is set)")
	cmd.Flags().BoolVar(&fromClipboard, "from-clipboard", false, "Process the current clipboard image")
	return cmd
}
