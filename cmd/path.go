package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/tutor"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Generate and list learning paths",
}

var pathGenerateCmd = &cobra.Command{
	Use:   "generate <request>",
	Short: "Generate a learning path for a request, e.g. \"I want to learn Go\"",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		hours, _ := cmd.Flags().GetFloat64("hours")
		language, _ := cmd.Flags().GetString("language")
		age, _ := cmd.Flags().GetString("age-group")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		log := logger.FromEnv("off")
		defer log.Sync()

		ctx := cmd.Context()
		svc, err := newService(ctx, s, log)
		if err != nil {
			return err
		}

		p, err := svc.GenerateLearningPath(ctx, tutor.PathRequest{
			Username: user,
			Prompt:   strings.Join(args, " "),
			Preferences: tutor.Preferences{
				Role:        role,
				HoursPerDay: hours,
				Language:    language,
				AgeGroup:    age,
			},
		})
		if err != nil {
			return explain(err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printPath(cmd.OutOrStdout(), p)
		return nil
	},
}

var pathListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored learning paths, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := tutor.NewService(tutor.Options{Quizzes: s.QuizRepo(), Results: s.ResultRepo(), Paths: s.PathRepo()})
		paths, err := svc.LearningPaths(cmd.Context(), user, limit)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			cmd.Println("No learning paths found.")
			return nil
		}
		for _, p := range paths {
			cmd.Printf("%s  %-19s  %s (%d topics)\n",
				p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04:05"), p.Path.Name, len(p.Path.Topics))
		}
		return nil
	},
}

func init() {
	pathGenerateCmd.Flags().StringP("user", "u", defaultUser(), "Learner username")
	pathGenerateCmd.Flags().String("role", "Student", "Learner role")
	pathGenerateCmd.Flags().Float64("hours", 5, "Daily study hours")
	pathGenerateCmd.Flags().String("language", "English", "Plan language")
	pathGenerateCmd.Flags().String("age-group", "Under 18", "Target audience")
	pathGenerateCmd.Flags().Bool("json", false, "Print JSON output")

	pathListCmd.Flags().StringP("user", "u", defaultUser(), "Learner username")
	pathListCmd.Flags().IntP("limit", "n", 20, "Number of paths to show")

	pathCmd.AddCommand(pathGenerateCmd)
	pathCmd.AddCommand(pathListCmd)
}
