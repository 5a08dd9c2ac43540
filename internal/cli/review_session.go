// Package cli provides the interactive terminal frontends.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mfurukawa/tango/internal/collection"
	"github.com/mfurukawa/tango/internal/review"
	"github.com/mfurukawa/tango/internal/session"
)

// SessionManager is the part of the session manager the CLI uses.
type SessionManager interface {
	StartSession(ctx context.Context, ownerID, collectionID int64, maxCards int) (*session.Session, error)
	RecordAnswer(ctx context.Context, ownerID, sessionID, cardID int64, grade review.Grade, responseTimeMs int) (*session.AnswerResult, error)
}

// Session is one interactive step. Returning errEnd stops the loop.
type Session interface {
	Session(ctx context.Context) error
}

var (
	errEnd = errors.New("end")

	// errQuit signals the learner chose to stop early.
	errQuit = errors.New("quit")
)

// ReviewSessionCLI runs one study session interactively: it shows each card's
// term, reveals the meaning and asks the learner to grade their own recall.
type ReviewSessionCLI struct {
	manager SessionManager
	items   map[int64]collection.Item
	ownerID int64
	sess    *session.Session
	cursor  int

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	nowFunc      func() time.Time
}

// NewReviewSessionCLI starts a session and prepares the interactive loop.
func NewReviewSessionCLI(
	ctx context.Context,
	manager SessionManager,
	collections collection.Repository,
	ownerID, collectionID int64,
	maxCards int,
) (*ReviewSessionCLI, error) {
	sess, err := manager.StartSession(ctx, ownerID, collectionID, maxCards)
	if err != nil {
		return nil, fmt.Errorf("manager.StartSession() > %w", err)
	}

	items, err := collections.FindItems(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("collections.FindItems() > %w", err)
	}
	itemMap := make(map[int64]collection.Item, len(items))
	for _, item := range items {
		itemMap[item.ID] = item
	}

	return &ReviewSessionCLI{
		manager:      manager,
		items:        itemMap,
		ownerID:      ownerID,
		sess:         sess,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		nowFunc:      time.Now,
	}, nil
}

// Run drives Session until the cards run out or the context is cancelled.
func (cli *ReviewSessionCLI) Run(ctx context.Context, sess Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := sess.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// getNextCard returns the next unanswered card or nil when the session is done.
func (cli *ReviewSessionCLI) getNextCard() *session.Card {
	for cli.cursor < len(cli.sess.Cards) {
		card := &cli.sess.Cards[cli.cursor]
		if !card.Answered() {
			return card
		}
		cli.cursor++
	}
	return nil
}

func (cli *ReviewSessionCLI) Session(ctx context.Context) error {
	currentCard := cli.getNextCard()
	if currentCard == nil {
		fmt.Println("Session complete!")
		return errEnd
	}

	item, ok := cli.items[currentCard.ItemID]
	if !ok {
		return fmt.Errorf("no item found for card %d", currentCard.ID)
	}

	fmt.Printf("\nCard %d of %d\n", currentCard.Position, cli.sess.TotalCards)
	_, _ = cli.bold.Printf("%s\n", item.Term)
	fmt.Print("Press Enter to reveal the meaning...")

	askedAt := cli.nowFunc()
	if _, err := cli.stdinReader.ReadString('\n'); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	fmt.Printf(`The meaning of %s is "%s"`,
		cli.bold.Sprintf("%s", item.Term),
		cli.italic.Sprintf("%s", item.Meaning),
	)
	fmt.Println()

	grade, err := cli.promptGrade()
	if err != nil {
		if errors.Is(err, errQuit) {
			fmt.Println("Leaving the session. Unanswered cards stay available.")
			return errEnd
		}
		return err
	}
	responseTimeMs := int(cli.nowFunc().Sub(askedAt).Milliseconds())

	result, err := cli.manager.RecordAnswer(ctx,
		cli.ownerID, cli.sess.ID, currentCard.ID, grade, responseTimeMs)
	if err != nil {
		return fmt.Errorf("manager.RecordAnswer() > %w", err)
	}
	cli.sess.Cards[cli.cursor] = result.Card
	cli.cursor++

	if grade.Passing() {
		fmt.Print("✅ ")
		color.Green("Next review in %d day(s)", *result.Card.ResultIntervalDays)
	} else {
		fmt.Print("❌ ")
		color.Red("Back to the start, next review in %d day(s)", *result.Card.ResultIntervalDays)
	}
	fmt.Printf("Progress: %d/%d\n", result.AnsweredCount, result.TotalCards)

	if result.Completed {
		fmt.Println("Session complete!")
		return errEnd
	}
	return nil
}

func (cli *ReviewSessionCLI) promptGrade() (review.Grade, error) {
	for {
		fmt.Print("How well did you recall? [0=blackout 1=incorrect 2=hard 3=good 4=easy, q=quit]: ")
		input, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("error reading input: %w", err)
		}

		grade, err := parseGrade(input)
		if err != nil {
			if errors.Is(err, errQuit) {
				return 0, err
			}
			fmt.Println(err)
			continue
		}
		return grade, nil
	}
}

// parseGrade converts learner input into a grade. "q" quits.
func parseGrade(input string) (review.Grade, error) {
	trimmed := strings.TrimSpace(input)
	if strings.EqualFold(trimmed, "q") {
		return 0, errQuit
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("please enter a number between 0 and 4, or q to quit")
	}
	grade := review.Grade(n)
	if !grade.Valid() {
		return 0, fmt.Errorf("please enter a number between 0 and 4, or q to quit")
	}
	return grade, nil
}
