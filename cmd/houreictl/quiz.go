package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hourei/hourei-backend/internal/model"
	"github.com/hourei/hourei-backend/internal/quiz"
)

func init() {
	var category, difficulty, mode string
	var showAnswer bool

	quizCmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate a fill-in-the-blank question",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := quiz.NewGenerator(quiz.DefaultBank())
			question, err := generator.Generate(quiz.Options{
				Category:   category,
				Difficulty: model.QuizDifficulty(difficulty),
				Mode:       quiz.Mode(mode),
			})
			if err != nil {
				return err
			}
			if err := quiz.EnsureValid(question); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s\n\n%s\n\n", question.Prompt, question.MaskedText)
			for i, choice := range question.Choices {
				fmt.Fprintf(os.Stdout, "  %d. %s\n", i+1, choice)
			}
			if showAnswer {
				fmt.Fprintf(os.Stdout, "\nanswer: %d. %s\n", question.AnswerIndex+1, question.Choices[question.AnswerIndex])
				if question.Explanation != "" {
					fmt.Fprintf(os.Stdout, "%s\n", question.Explanation)
				}
			}
			return nil
		},
	}
	quizCmd.Flags().StringVarP(&category, "category", "c", "", "Bank category filter")
	quizCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "normal", "easy, normal or hard")
	quizCmd.Flags().StringVarP(&mode, "mode", "m", "mixed", "manual, auto or mixed")
	quizCmd.Flags().BoolVar(&showAnswer, "answer", false, "Print the answer and explanation")
	rootCmd.AddCommand(quizCmd)
}
