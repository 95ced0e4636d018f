package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxtraditionis/vox/pkg/chat"
	"github.com/voxtraditionis/vox/pkg/controllers"
	"github.com/voxtraditionis/vox/pkg/prompt"
)

var (
	userStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	botStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type uiText struct {
	you         string
	bot         string
	ask         string
	confirmLang string
	noSessions  string
	disclaimer  string
}

var texts = map[string]uiText{
	"en": {
		you:         "You",
		bot:         "Vox Traditionis",
		ask:         "Ask a question (or /help):",
		confirmLang: "Changing language will start the chat resource anew. Continue? [y/N] ",
		noSessions:  "No saved sessions.",
		disclaimer:  "Answers based on Pre-Vatican II (pre-1962) Catholic texts. Secular queries answered normally.",
	},
	"fr": {
		you:         "Vous",
		bot:         "Vox Traditionis",
		ask:         "Posez votre question (ou /help) :",
		confirmLang: "Changer de langue recommencera la conversation. Continuer ? [y/N] ",
		noSessions:  "Aucune session enregistrée.",
		disclaimer:  "Réponses basées sur la doctrine catholique pré-Vatican II (avant 1962).",
	},
}

func textsFor(language string) uiText {
	return texts[prompt.ParseLanguage(language)]
}

// runOnce sends a single prompt and exits, for scripted use.
func runOnce(ctx context.Context, controller *controllers.SessionController, text string) error {
	streamed := false
	err := controller.Send(ctx, text, func(fragment string) {
		streamed = true
		fmt.Print(fragment)
	})
	if err == nil && !streamed {
		if session, ok := controller.ActiveSession(); ok {
			if last, ok := chat.LastMessage(session); ok && last.IsModel() {
				fmt.Print(last.Content)
			}
		}
	}
	fmt.Println()
	return err
}

// runRepl is the interactive chat loop. Input stays line-oriented on
// purpose; anything beyond labels and dimming is out of scope here.
func runRepl(ctx context.Context, controller *controllers.SessionController) error {
	t := textsFor(controller.Language())
	fmt.Println(botStyle.Render(t.bot))
	fmt.Println(faintStyle.Render(t.disclaimer))
	fmt.Println(faintStyle.Render(t.ask))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print(userStyle.Render(textsFor(controller.Language()).you) + " > ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, controller, scanner, line); quit {
				return nil
			}
			continue
		}

		sendLine(ctx, controller, line)
	}
}

func sendLine(ctx context.Context, controller *controllers.SessionController, line string) {
	fmt.Print(botStyle.Render(textsFor(controller.Language()).bot) + " > ")
	streamed := false
	err := controller.Send(ctx, line, func(fragment string) {
		streamed = true
		fmt.Print(fragment)
	})
	switch {
	case err != nil:
		fmt.Print(faintStyle.Render(err.Error()))
	case !streamed:
		// Nothing streamed means the attempt failed and a replacement
		// error message ended the transcript; show it.
		if session, ok := controller.ActiveSession(); ok {
			if last, ok := chat.LastMessage(session); ok && last.IsModel() {
				fmt.Print(last.Content)
			}
		}
	}
	fmt.Println()
}

func runCommand(ctx context.Context, controller *controllers.SessionController, scanner *bufio.Scanner, line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	t := textsFor(controller.Language())

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Println(faintStyle.Render("/new  /sessions  /select <n>  /delete <n>  /lang <en|fr>  /history  /quit"))

	case "/new":
		controller.NewSession(ctx)

	case "/sessions":
		sessions := controller.Sessions()
		if len(sessions) == 0 {
			fmt.Println(faintStyle.Render(t.noSessions))
			return false
		}
		for i, s := range sessions {
			marker := " "
			if s.ID == controller.ActiveID() {
				marker = "*"
			}
			fmt.Printf("%s %2d. %s (%s, %d messages)\n", marker, i+1, s.Title, s.Language, chat.MessageCount(s))
		}

	case "/select":
		if s, ok := sessionArg(controller, args); ok {
			if err := controller.SelectSession(ctx, s.ID); err != nil {
				fmt.Println(faintStyle.Render(err.Error()))
			} else {
				printHistory(s)
			}
		}

	case "/delete":
		if s, ok := sessionArg(controller, args); ok {
			if err := controller.DeleteSession(s.ID); err != nil {
				fmt.Println(faintStyle.Render(err.Error()))
			}
		}

	case "/lang":
		if len(args) != 1 {
			fmt.Println(faintStyle.Render("usage: /lang <en|fr>"))
			return false
		}
		newLang := prompt.ParseLanguage(args[0])
		if newLang == controller.Language() {
			return false
		}
		if session, ok := controller.ActiveSession(); ok && !chat.IsEmpty(session) {
			fmt.Print(t.confirmLang)
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				return false
			}
		}
		controller.ChangeLanguage(ctx, newLang)

	case "/history":
		if session, ok := controller.ActiveSession(); ok {
			printHistory(session)
		}

	default:
		fmt.Println(faintStyle.Render("unknown command: " + cmd))
	}
	return false
}

func sessionArg(controller *controllers.SessionController, args []string) (chat.Session, bool) {
	sessions := controller.Sessions()
	if len(args) != 1 {
		fmt.Println(faintStyle.Render("expected a session number"))
		return chat.Session{}, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(sessions) {
		fmt.Println(faintStyle.Render("no session numbered " + args[0]))
		return chat.Session{}, false
	}
	return sessions[n-1], true
}

func printHistory(session chat.Session) {
	t := textsFor(session.Language)
	for _, m := range session.Messages {
		label := userStyle.Render(t.you)
		if m.IsModel() {
			label = botStyle.Render(t.bot)
		}
		fmt.Printf("%s > %s\n", label, m.Content)
	}
}
