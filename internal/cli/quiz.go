package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/accessguide/accessguide-backend/internal/quiz/bank"
	"github.com/accessguide/accessguide-backend/internal/quiz/domain"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("quit")

func quizCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "quiz",
		Short: "Take the accessibility quiz in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			quiz, err := loadQuiz(cmd, file)
			if err != nil {
				return err
			}
			err = runQuiz(quiz, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
				fmt.Fprintln(cmd.OutOrStdout(), "\nbye")
				return nil
			}
			return err
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "YAML question bank (defaults to the built-in one)")
	return c
}

func loadQuiz(cmd *cobra.Command, file string) (*domain.Quiz, error) {
	if file == "" {
		return bank.Default()
	}
	data, err := readInput(cmd, file)
	if err != nil {
		return nil, err
	}
	return bank.Parse(data)
}

func runQuiz(quiz *domain.Quiz, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	readLine := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.TrimSpace(sc.Text())
		if strings.EqualFold(line, "q") {
			return "", errQuit
		}
		return line, nil
	}

	sess := domain.NewSession("cli", time.Now())
	for {
		for q := quiz.Current(sess); q != nil; q = quiz.Current(sess) {
			fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", sess.Index+1, quiz.Len(), q.Prompt)
			for i, opt := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
			}

			for {
				fmt.Fprint(out, "answer (q to quit): ")
				line, err := readLine()
				if err != nil {
					return err
				}
				n, err := strconv.Atoi(line)
				if err == nil {
					err = quiz.Select(sess, n-1)
				}
				if err != nil {
					fmt.Fprintf(out, "enter a number from 1 to %d\n", len(q.Options))
					continue
				}
				break
			}
			if err := quiz.Confirm(sess); err != nil {
				return err
			}
		}

		res, err := quiz.Result(sess)
		if err != nil {
			return err
		}
		printResult(out, quiz, res)

		fmt.Fprint(out, "\nplay again? (y/n): ")
		line, err := readLine()
		if err != nil {
			return err
		}
		if !strings.EqualFold(line, "y") {
			return nil
		}
		quiz.Reset(sess)
	}
}

func printResult(out io.Writer, quiz *domain.Quiz, res *domain.Result) {
	fmt.Fprintf(out, "\nScore: %d/%d (%.0f%%) - %s\n%s\n\n", res.Score, res.Total, res.Percentage, res.Tier, res.Message)
	for i, a := range res.Answers {
		mark := "x"
		if a.IsCorrect {
			mark = "ok"
		}
		q := quiz.Questions[i]
		fmt.Fprintf(out, "[%s] %s\n", mark, a.Prompt)
		if !a.IsCorrect {
			fmt.Fprintf(out, "     correct answer: %s\n", q.Options[a.Correct])
		}
		if a.Explanation != "" {
			fmt.Fprintf(out, "     %s\n", a.Explanation)
		}
	}
}
