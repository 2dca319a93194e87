package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/intent"
	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask for a quiz in plain language, or answer one",
	Long: `Ask for a quiz in plain language ("quiz me on 5 hard algebra questions"),
or answer an open quiz with --quiz <id> ("A, C, True").`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		quizID, _ := cmd.Flags().GetString("quiz")
		message := strings.Join(args, " ")

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
		out := cmd.OutOrStdout()

		if quizID != "" {
			stored, err := svc.GetQuiz(ctx, quizID)
			if err != nil {
				return err
			}
			answers, ok := intent.ParseAnswers(message, len(stored.Quiz.Questions))
			if !ok {
				return fmt.Errorf("couldn't read %d answers from %q", len(stored.Quiz.Questions), message)
			}
			res, err := svc.SubmitQuiz(ctx, tutor.Submission{Username: user, QuizID: quizID, Answers: answers})
			if err != nil {
				return err
			}
			printResult(out, res)
			return nil
		}

		req, ok := intent.DetectQuizRequest(message)
		if !ok {
			return errors.New(`no quiz request found; try "quiz me on <topic>" or "make a quiz about <topic>"`)
		}
		quiz, err := svc.GenerateQuiz(ctx, tutor.QuizRequest{
			Username:      user,
			Topic:         req.Topic,
			Difficulty:    req.Difficulty,
			QuestionCount: req.QuestionCount,
		})
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(out, "Here's your %s quiz! Answer each question and I'll calculate your score at the end.\n\n", quiz.Topic)
		printQuiz(out, quiz, false)
		fmt.Fprintf(out, "\nAnswer with: aitutor chat --quiz %s \"A, B, ...\"\n", quiz.ID)
		return nil
	},
}

func init() {
	chatCmd.Flags().StringP("user", "u", defaultUser(), "Learner username")
	chatCmd.Flags().String("quiz", "", "Answer the quiz with this ID")
}
