package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"programming-quiz/internal/config"
	"programming-quiz/internal/domain"
	"programming-quiz/internal/infra/logger"
	"programming-quiz/internal/wire"
)

// NewGenerateCmd prints one batch in the generation function's response format.
func NewGenerateCmd(configPath *string) *cobra.Command {
	var (
		difficulty string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of questions and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			log := logger.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)

			st, err := buildStack(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer st.Close()

			questions, err := st.service.Generate(cmd.Context(), domain.GenerationRequest{Difficulty: difficulty, Count: count})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(wire.FromDomain(questions))
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", domain.DefaultDifficulty, "question difficulty")
	cmd.Flags().IntVar(&count, "count", domain.DefaultCount, "number of questions")
	return cmd
}
