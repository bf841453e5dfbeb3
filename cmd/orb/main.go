// File: cmd/orb/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/nexsuite/chatorb/internal/config"
	"github.com/nexsuite/chatorb/internal/domain"
	"github.com/nexsuite/chatorb/internal/render"
	"github.com/nexsuite/chatorb/internal/services"
	"github.com/nexsuite/chatorb/internal/services/api"
	"github.com/nexsuite/chatorb/internal/services/pagecontext"
	"github.com/nexsuite/chatorb/internal/services/session"
	"github.com/nexsuite/chatorb/internal/services/telemetry"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("orb")

	client, err := api.NewClient(&api.Config{
		BaseURL:    cfg.BackendBaseURL,
		TenantID:   cfg.TenantID,
		Timeout:    cfg.RequestTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	}, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize backend client: %v", err)
	}

	store, err := session.NewStore(client, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize store: %v", err)
	}
	resolver := pagecontext.NewResolver()
	recorder := telemetry.NewRecorder(client, logger)

	exchange, err := session.NewExchange(store, client, recorder, resolver, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize exchange: %v", err)
	}
	policy, err := session.NewAutoSelect(store, resolver, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize auto-select policy: %v", err)
	}
	shell, err := session.NewShell(store, exchange, policy, resolver, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize shell: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer recorder.Flush()

	app := &app{
		shell:    shell,
		store:    store,
		resolver: resolver,
		path:     "/",
	}
	app.run(ctx)
}

type app struct {
	shell    *session.Shell
	store    *session.Store
	resolver *pagecontext.Resolver
	path     string
}

func (a *app) run(ctx context.Context) {
	fmt.Println("Assistant orb. Type :help for commands, anything else to chat.")

	scanner := bufio.NewScanner(os.Stdin)
	a.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := a.command(ctx, strings.TrimSpace(line)); quit {
				return
			}
		} else {
			a.chat(ctx, line)
		}
		if notice := a.shell.Notice(); notice != "" {
			fmt.Printf("! %s\n", notice)
			a.shell.ClearNotice()
		}
		a.prompt()
	}
}

func (a *app) prompt() {
	pc := a.resolver.Resolve(a.path)
	state := "closed"
	if a.shell.IsOpen() {
		state = "open"
	}
	fmt.Printf("[%s | %s] > ", pc.PageName, state)
}

func (a *app) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":help":
		fmt.Println(`:open        open the widget on the current page
:close       close the widget (state is kept)
:page PATH   navigate, e.g. :page /crm
:list        toggle the conversation list view
:select N    switch to conversation N from the list
:new         start a fresh conversation
:delete N    delete conversation N from the list
:export FILE write the active thread as HTML
:quit        exit`)
	case ":open":
		a.shell.Open(ctx, a.path)
		a.show(ctx)
	case ":close":
		a.shell.Close()
	case ":page":
		if arg != "" {
			a.path = arg
		}
		pc := a.resolver.Resolve(a.path)
		fmt.Printf("%s — %s\n", pc.PageName, pc.Description)
		for _, s := range pc.Suggestions {
			fmt.Printf("  • %s\n", s)
		}
	case ":list":
		a.shell.ToggleConversationList()
		a.show(ctx)
	case ":select":
		a.selectByOrdinal(ctx, arg)
	case ":new":
		if _, err := a.shell.NewConversation(ctx, a.path); err == nil {
			fmt.Println("Started a new conversation.")
		}
	case ":delete":
		a.deleteByOrdinal(ctx, arg)
	case ":export":
		a.export(arg)
	case ":quit", ":q":
		return true
	default:
		fmt.Println("Unknown command; :help lists them.")
	}
	return false
}

func (a *app) chat(ctx context.Context, line string) {
	if !a.shell.IsOpen() {
		a.shell.Open(ctx, a.path)
	}
	a.shell.SetDraft(line)
	if !a.shell.CanSend() {
		return
	}
	fmt.Println("assistant is typing…")
	if err := a.shell.Send(ctx, a.path); err != nil {
		return
	}
	a.printThread()
}

func (a *app) show(ctx context.Context) {
	if !a.shell.IsOpen() {
		return
	}
	if a.shell.ShowConversationList() {
		a.printConversations(ctx)
		return
	}
	a.printThread()
}

func (a *app) printThread() {
	messages := a.store.Messages()
	if len(messages) == 0 {
		fmt.Println("(empty conversation)")
		return
	}
	for _, m := range messages {
		switch m.Role {
		case domain.RoleUser:
			fmt.Printf("you> %s\n", m.Content)
		case domain.RoleAssistant:
			fmt.Printf("orb> %s\n", m.Content)
		}
	}
}

func (a *app) printConversations(ctx context.Context) {
	conversations, err := a.store.Conversations(ctx)
	if err != nil && len(conversations) == 0 {
		fmt.Println("Failed to load conversations")
		return
	}
	active := a.store.ActiveID()
	for i, c := range conversations {
		marker := " "
		if c.ID == active {
			marker = "*"
		}
		fmt.Printf("%s %2d. %s (%d messages)\n", marker, i+1, c.Title, c.MessageCount)
	}
}

func (a *app) selectByOrdinal(ctx context.Context, arg string) {
	c, ok := a.conversationAt(arg)
	if !ok {
		return
	}
	if err := a.store.Select(ctx, c.ID); err != nil {
		fmt.Println("Failed to switch conversation")
		return
	}
	a.printThread()
}

func (a *app) deleteByOrdinal(ctx context.Context, arg string) {
	c, ok := a.conversationAt(arg)
	if !ok {
		return
	}
	if err := a.shell.DeleteConversation(ctx, c.ID); err == nil {
		fmt.Printf("Deleted %q\n", c.Title)
	}
}

func (a *app) conversationAt(arg string) (domain.Conversation, bool) {
	n, err := strconv.Atoi(arg)
	conversations := a.store.CachedConversations()
	if err != nil || n < 1 || n > len(conversations) {
		fmt.Println("Pick a conversation number from :list")
		return domain.Conversation{}, false
	}
	return conversations[n-1], true
}

func (a *app) export(path string) {
	if path == "" {
		fmt.Println("Usage: :export FILE")
		return
	}
	active := a.store.ActiveID()
	if active == "" {
		fmt.Println("No active conversation to export")
		return
	}
	var conversation domain.Conversation
	for _, c := range a.store.CachedConversations() {
		if c.ID == active {
			conversation = c
			break
		}
	}
	html, err := render.Transcript(conversation, a.store.Messages())
	if err != nil {
		fmt.Println("Failed to render transcript")
		return
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		fmt.Printf("Failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("Wrote %s\n", path)
}
