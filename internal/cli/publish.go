package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artificial-intelligence-first/aao-skeleton/internal/usecase"
)

func publishCmd(flags *rootFlags) *cobra.Command {
	var workspace string
	var skill string
	var id string
	var channel string
	var generateID bool
	var format string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a content-publishing payload to Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ws, err := loadWorkspace(workspace, flags)
			if err != nil {
				return err
			}
			defer ws.close()

			req := usecase.PublishRequest{Skill: skill, ID: id, Channel: channel, GenerateID: generateID}
			if err := usecase.ValidatePublishRequest(req); err != nil {
				return err
			}

			pub, err := ws.openPublisher(cmd.Context())
			if err != nil {
				return err
			}

			uc := usecase.NewPublishContent(pub, ws.cfg.Publishing.Channel, usecase.WithLogger(ws.log))
			res, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "%s %s to %s (%d receiver(s))\n",
				styles.OK.Render("Published"), res.Payload.ID, res.Payload.Channel, res.Receivers)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Skill the payload is addressed to (required)")
	cmd.Flags().StringVar(&id, "id", "", "Content identifier")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Redis channel (defaults to publishing.channel)")
	cmd.Flags().BoolVar(&generateID, "generate-id", false, "Generate a UUID when --id is empty")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	_ = cmd.MarkFlagRequired("skill")
	return cmd
}
