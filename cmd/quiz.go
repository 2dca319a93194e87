package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/intent"
	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/tutor"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate, take and review quizzes",
}

var quizGenerateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a new quiz",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		types, _ := cmd.Flags().GetStringSlice("types")
		timeLimit, _ := cmd.Flags().GetInt("time-limit")
		showAnswers, _ := cmd.Flags().GetBool("answers")
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

		quiz, err := svc.GenerateQuiz(ctx, tutor.QuizRequest{
			Username:      user,
			Topic:         strings.Join(args, " "),
			Difficulty:    difficulty,
			QuestionCount: count,
			QuestionTypes: types,
			TimeLimit:     timeLimit,
		})
		if err != nil {
			return explain(err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			if showAnswers {
				return printJSON(out, quiz)
			}
			return printJSON(out, quiz.Public())
		}
		printQuiz(out, quiz, showAnswers)
		fmt.Fprintf(out, "\nSubmit with: aitutor quiz submit %s --user %s \"A, B, ...\"\n", quiz.ID, user)
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit <quiz-id> <answers>",
	Short: "Submit answers for a quiz",
	Long:  "Submit answers in question order, e.g. \"A, C, True, photosynthesis\" or \"1. A 2. C\".",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
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

		stored, err := svc.GetQuiz(ctx, args[0])
		if err != nil {
			return err
		}
		n := len(stored.Quiz.Questions)
		answers, ok := intent.ParseAnswers(strings.Join(args[1:], " "), n)
		if !ok {
			return fmt.Errorf("expected %d answers separated by commas or newlines", n)
		}

		res, err := svc.SubmitQuiz(ctx, tutor.Submission{Username: user, QuizID: args[0], Answers: answers})
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	},
}

var quizHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List graded submissions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := tutor.NewService(tutor.Options{
			Quizzes: s.QuizRepo(),
			Results: s.ResultRepo(),
			Paths:   s.PathRepo(),
		})
		history, err := svc.QuizHistory(cmd.Context(), user, limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(history) == 0 {
			fmt.Println("No quiz results found.")
			return nil
		}

		fmt.Printf("%-19s  %-32s  %-7s  %s\n", "Submitted", "Quiz", "Score", "Correct")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range history {
			fmt.Printf("%-19s  %-32s  %6.1f%%  %d/%d\n",
				r.SubmittedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(r.QuizTitle, 32),
				r.ScorePercentage,
				r.CorrectCount, r.TotalQuestions,
			)
		}
		return nil
	},
}

var quizStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz performance analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := tutor.NewService(tutor.Options{
			Quizzes: s.QuizRepo(),
			Results: s.ResultRepo(),
			Paths:   s.PathRepo(),
		})
		a, err := svc.QuizAnalytics(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("query analytics: %w", err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), a)
		}
		if a.TotalQuizzes == 0 {
			fmt.Println("No quiz results found.")
			return nil
		}

		fmt.Printf("Quizzes taken:     %d\n", a.TotalQuizzes)
		fmt.Printf("Average score:     %.2f%%\n", a.AverageScore)
		fmt.Printf("Best score:        %.2f%%\n", a.BestScore)
		fmt.Printf("Questions answered: %d\n", a.TotalQuestionsAnswered)
		fmt.Printf("Accuracy:          %.2f%%\n", a.AccuracyRate)

		fmt.Println()
		fmt.Printf("%-32s  %8s  %8s  %8s\n", "Quiz", "Attempts", "Average", "Best")
		fmt.Println(strings.Repeat("─", 64))
		for title, st := range a.SubjectPerformance {
			fmt.Printf("%-32s  %8d  %7.1f%%  %7.1f%%\n", truncate(title, 32), st.Attempts, st.AverageScore, st.BestScore)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{quizGenerateCmd, quizSubmitCmd, quizHistoryCmd, quizStatsCmd} {
		c.Flags().StringP("user", "u", defaultUser(), "Learner username")
	}
	for _, c := range []*cobra.Command{quizGenerateCmd, quizSubmitCmd, quizStatsCmd} {
		c.Flags().Bool("json", false, "Print JSON output")
	}

	quizGenerateCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard")
	quizGenerateCmd.Flags().IntP("count", "n", 5, "Number of questions (max 20)")
	quizGenerateCmd.Flags().StringSlice("types", nil, "Question types: mcq, true_false, short_answer (default all)")
	quizGenerateCmd.Flags().Int("time-limit", 10, "Time limit in minutes")
	quizGenerateCmd.Flags().Bool("answers", false, "Show the answer key")

	quizHistoryCmd.Flags().IntP("limit", "n", 20, "Number of results to show")

	quizCmd.AddCommand(quizGenerateCmd)
	quizCmd.AddCommand(quizSubmitCmd)
	quizCmd.AddCommand(quizHistoryCmd)
	quizCmd.AddCommand(quizStatsCmd)
}
