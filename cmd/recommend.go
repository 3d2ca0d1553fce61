package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/engine"
	"github.com/resumi/job-discovery/internal/logger"
	"github.com/resumi/job-discovery/internal/profile"
)

const (
	PromptShowExplanations = "Show explanations"
	PromptDumpToFile       = "Dump recommendations to file"
	PromptSourceReport     = "Report by source"
	PromptExit             = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowExplanations, PromptSourceReport, PromptDumpToFile, PromptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Extract a profile from a resume and rank collected jobs against it",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("resume", "r", "", "path to a plain-text resume file")
	recommendCmd.Flags().IntP("top", "t", 10, "number of recommendations to print")
	recommendCmd.Flags().BoolP("no-prompt", "y", false, "print the ranking and exit without the action prompt")

	if err := recommendCmd.MarkFlagRequired("resume"); err != nil {
		log.Fatalf("marking resume flag required: %v", err)
	}
}

func recommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting job-discovery", zap.String("version", version))

	eng, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	resumePath := cmd.Flag("resume").Value.String()
	text, err := os.ReadFile(resumePath)
	if err != nil {
		logger.Fatal("reading resume file", zap.String("path", resumePath), zap.Error(err))
	}

	sess, err := eng.ExtractProfile(ctx, string(text))
	if err != nil {
		var parseErr *profile.ParseError
		if errors.As(err, &parseErr) {
			logger.Fatal("resume could not be parsed",
				zap.String("reason", parseErr.Reason),
				zap.String("hint", "provide a plain-text resume listing skills and experience"),
			)
		}
		logger.Fatal("extracting profile", zap.Error(err))
	}

	printProfile(sess.Profile)

	report, err := eng.CollectAndMatch(ctx, sess.Profile)
	if err != nil {
		logger.Fatal("collecting and matching", zap.Error(err))
	}

	top, err := cmd.Flags().GetInt("top")
	if err != nil || top <= 0 {
		top = 10
	}
	printReport(report, top)

	if len(report.Recommendations) == 0 {
		return
	}

	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, report, top, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, report *engine.Report, top int, logger *zap.Logger) error {
	switch action {
	case PromptShowExplanations:
		printExplanations(report, top)
		return nil
	case PromptSourceReport:
		pretty, _ := json.MarshalIndent(reportBySource(report), "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(report)
		if err != nil {
			return fmt.Errorf("dump recommendations to file: %w", err)
		}
		logger.Info("dumped recommendations", zap.String("filename", filename))
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printProfile(p *profile.Profile) {
	fmt.Printf("Profile %s\n", p.ID)
	fmt.Printf("  role:       %s (%s)\n", p.PrimaryRole, p.SeniorityName)
	fmt.Printf("  skills:     %v\n", p.Skills)
	fmt.Printf("  tools:      %v\n", p.Tools)
	if p.ExperienceYears > 0 {
		fmt.Printf("  experience: %.0f years\n", p.ExperienceYears)
	}
	if len(p.LocationMentions) > 0 {
		fmt.Printf("  locations:  %v\n", p.LocationMentions)
	}
	fmt.Println()
}

func printReport(report *engine.Report, top int) {
	fmt.Printf("Collected %d jobs, %d above the match floor", report.JobsCollected, report.JobsMatched)
	if report.FromCache {
		fmt.Print(" (from cache)")
	}
	fmt.Println()

	for _, f := range report.Failures {
		fmt.Printf("  source %s failed: %s\n", f.Source, f.Kind)
	}

	if len(report.Recommendations) == 0 {
		fmt.Println("\nNo matching jobs this round.")
		for _, s := range report.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return
	}

	fmt.Println()
	for i, rec := range report.Recommendations {
		if i >= top {
			break
		}
		fmt.Printf("%2d. [%.2f] %s at %s (%s, %s)\n     %s\n",
			i+1, rec.Score, rec.Job.Title, rec.Job.Company,
			rec.Job.Location.Raw, rec.Job.Source, rec.Job.ApplyURL,
		)
	}
}

func printExplanations(report *engine.Report, top int) {
	for i, rec := range report.Recommendations {
		if i >= top {
			break
		}
		fmt.Printf("%2d. %s at %s\n     %s\n", i+1, rec.Job.Title, rec.Job.Company, rec.Explanation.Text)
		if len(rec.Explanation.SkillGaps) > 0 {
			fmt.Printf("     gaps: %v\n", rec.Explanation.SkillGaps)
		}
	}
}

func reportBySource(report *engine.Report) map[string]int {
	counts := make(map[string]int)
	for _, rec := range report.Recommendations {
		counts[string(rec.Job.Source)]++
	}
	return counts
}

func dumpToTmpFile(report *engine.Report) (string, error) {
	f, err := os.CreateTemp("", app+"-recommendations-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", err
	}
	return f.Name(), nil
}
