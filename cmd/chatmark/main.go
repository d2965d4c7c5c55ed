package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dfell/chatmark/internal/ui"
	"github.com/gdamore/tcell/v2"
)

var (
	streamDemo = flag.Bool("stream", false, "replay the last demo message as a simulated stream")
	logFile    = flag.String("log", "", "write logs to this file instead of discarding them")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `chatmark - Markdown chat transcript viewer

USAGE:
    chatmark [OPTIONS] [FILE...]

Each FILE becomes one transcript message. Without files, a built-in demo
conversation is shown.

OPTIONS:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	// The screen owns stdout; logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(nullWriter{})
	}

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app := ui.NewApp()

	messages := demoMessages()
	if flag.NArg() > 0 {
		messages = nil
		for _, path := range flag.Args() {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
				os.Exit(1)
			}
			messages = append(messages, ui.Message{Role: ui.RoleAssistant, Source: string(data)})
		}
	}

	var streamed string
	if *streamDemo && len(messages) > 0 {
		streamed = messages[len(messages)-1].Source
		messages = messages[:len(messages)-1]
	}
	for _, msg := range messages {
		app.Append(msg)
	}

	if streamed != "" {
		go replayStream(app, streamed)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// replayStream feeds source to the app in word-sized chunks, the way a
// response arrives from a model API.
func replayStream(app *ui.App, source string) {
	time.Sleep(300 * time.Millisecond)
	app.PostStreamStart()
	words := strings.SplitAfter(source, " ")
	for _, word := range words {
		app.PostStreamChunk(word, false)
		time.Sleep(40 * time.Millisecond)
	}
	app.PostStreamChunk("", true)
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

func demoMessages() []ui.Message {
	return []ui.Message{
		{Role: ui.RoleUser, Source: "How do I read a file in Go?"},
		{Role: ui.RoleAssistant, Source: `# Reading files in Go

Use ` + "`os.ReadFile`" + ` for small files:

` + "```go\ndata, err := os.ReadFile(\"config.json\")\nif err != nil {\n\tlog.Fatal(err)\n}\n```" + `

Key points:

- It reads the **whole file** into memory
- It returns the contents and an *error*
- No need to close anything

> For large files, prefer streaming with a bufio.Scanner.

See [the os package docs](https://pkg.go.dev/os) for details.`},
		{Role: ui.RoleUser, Source: "And how do I write one?"},
		{Role: ui.RoleAssistant, Source: `Use ` + "`os.WriteFile`" + `:

` + "```go\nerr := os.WriteFile(\"out.txt\", data, 0644)\n```" + `

Steps:

1. Prepare the bytes
2. Pick a permission mode
3. Check the returned error`},
	}
}
