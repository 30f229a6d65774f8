package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentpath/assist/internal/answer"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask the assistant a question from the command line",
	Long:  `Runs one full answer-pipeline turn against the configured knowledge base and prints the structured answer.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Bool("json", false, "output the structured answer as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, _, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ans := engine.Generate(context.Background(), answer.Request{
		Message:   question,
		SessionID: "cli",
	})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}

	fmt.Println(ans.AnswerText)
	fmt.Println()
	fmt.Printf("Confidence: %s (%d/100)\n", ans.ConfidenceLabel, ans.ConfidenceScore)
	if len(ans.Provenance) > 0 {
		fmt.Println("Sources:")
		for _, p := range ans.Provenance {
			fmt.Printf("  - %s (%s)\n", p.Title, p.Link)
		}
	}
	if len(ans.SuggestedNextSteps) > 0 {
		fmt.Println("Next steps:")
		for _, step := range ans.SuggestedNextSteps {
			fmt.Printf("  - %s\n", step)
		}
	}
	if ans.UIActions.TalkToHuman {
		fmt.Println("This question would be escalated to a human agent.")
	}
	return nil
}
